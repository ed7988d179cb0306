// Package openapi exports compiled JSON Schema documents as OpenAPI 3.0
// component schemas. Conversion happens on the plain mapping form; loading and
// validation go through kin-openapi.
package openapi
