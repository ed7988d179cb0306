package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Normalize round-trips value through encoding/json so typed maps, slices and
// numbers compare equal to decoded golden files.
func Normalize(t *testing.T, value any) any {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	return out
}

// AssertJSONEqual fails the test when want and got encode to different JSON
// values.
func AssertJSONEqual(t *testing.T, want, got any) {
	t.Helper()

	if diff := cmp.Diff(Normalize(t, want), Normalize(t, got)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

// AssertGolden compares value with the JSON golden at path. With
// UPDATE_GOLDENS set the golden is rewritten instead.
func AssertGolden(t *testing.T, path string, value any) {
	t.Helper()

	if WriteGolden(t, path, value) {
		return
	}
	var want any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	if diff := cmp.Diff(want, Normalize(t, value)); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set and
// reports whether it did.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustDecodeJSON decodes raw JSON into a generic value.
func MustDecodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return out
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
