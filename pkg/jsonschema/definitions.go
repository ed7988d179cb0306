package jsonschema

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
)

// Definitions is the name-keyed registry of compiled schemas for one root
// compilation. Nested compilations write into a child scope that sees every
// ancestor entry; the caller merges the scope back once the nested call
// returns. The pending set is shared by all scopes of a compilation and holds
// the schemas currently being compiled.
type Definitions struct {
	parent  *Definitions
	entries map[string]Fragment
	owners  map[string]*descriptor.Schema
	pending map[string]*descriptor.Schema
}

// NewDefinitions returns an empty registry.
func NewDefinitions() *Definitions {
	return &Definitions{
		entries: make(map[string]Fragment),
		owners:  make(map[string]*descriptor.Schema),
		pending: make(map[string]*descriptor.Schema),
	}
}

func (d *Definitions) scope() *Definitions {
	return &Definitions{
		parent:  d,
		entries: make(map[string]Fragment),
		owners:  make(map[string]*descriptor.Schema),
		pending: d.pending,
	}
}

// Lookup returns the fragment compiled under name in this scope or above.
func (d *Definitions) Lookup(name string) (Fragment, bool) {
	for scope := d; scope != nil; scope = scope.parent {
		if fragment, ok := scope.entries[name]; ok {
			return fragment, true
		}
	}
	return nil, false
}

// Has reports whether name is compiled or being compiled.
func (d *Definitions) Has(name string) bool {
	_, ok := d.owner(name)
	return ok
}

func (d *Definitions) owner(name string) (*descriptor.Schema, bool) {
	for scope := d; scope != nil; scope = scope.parent {
		if owner, ok := scope.owners[name]; ok {
			return owner, true
		}
	}
	owner, ok := d.pending[name]
	return owner, ok
}

// claim checks that name is free or already held by owner.
func (d *Definitions) claim(name string, owner *descriptor.Schema) error {
	existing, ok := d.owner(name)
	if ok && existing != owner.Origin() {
		return fmt.Errorf("%w: %s", ErrNameCollision, name)
	}
	return nil
}

func (d *Definitions) begin(name string, owner *descriptor.Schema) {
	d.pending[name] = owner.Origin()
}

func (d *Definitions) done(name string) {
	delete(d.pending, name)
}

// Put stores fragment under name. A second insert for the same schema keeps
// the first fragment; a different schema under a used name is a collision.
func (d *Definitions) Put(name string, owner *descriptor.Schema, fragment Fragment) error {
	if err := d.claim(name, owner); err != nil {
		return err
	}
	if _, ok := d.Lookup(name); ok {
		return nil
	}
	d.entries[name] = fragment
	d.owners[name] = owner.Origin()
	return nil
}

// Merge copies every entry of child into d.
func (d *Definitions) Merge(child *Definitions) error {
	if child == nil {
		return nil
	}
	for _, name := range child.Names() {
		if err := d.Put(name, child.owners[name], child.entries[name]); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the names stored in this scope, sorted.
func (d *Definitions) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries stored in this scope.
func (d *Definitions) Len() int {
	return len(d.entries)
}

// Map returns the entries of this scope as a plain mapping.
func (d *Definitions) Map() map[string]Fragment {
	out := make(map[string]Fragment, len(d.entries))
	for name, fragment := range d.entries {
		out[name] = fragment
	}
	return out
}
