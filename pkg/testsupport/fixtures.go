// Package testsupport holds fixtures shared by the portal's package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-krishi-portal/remote"
	"github.com/goliatone/go-krishi-portal/remote/memory"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// WriteFile writes content to name inside a per-test directory and returns
// the full path. The directory is removed when the test ends.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// SeedFile writes seed as a JSON seed file and returns its path.
func SeedFile(t *testing.T, seed memory.Seed) string {
	t.Helper()

	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal seed: %v", err)
	}
	return WriteFile(t, "seed.json", data)
}

// NewBackend returns an in-process backend loaded with the bundled seed.
func NewBackend(t *testing.T, admins ...remote.Principal) *memory.Backend {
	t.Helper()

	b := memory.New(memory.WithAdmins(admins...))
	b.Seed(memory.DefaultSeed())
	return b
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}
