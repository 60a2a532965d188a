// Package testutil provides fixtures shared by confkit tests: sample
// configuration writers and a scripted stand-in for the fetch collaborator.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteConfigFile writes a configuration fixture under dir and returns its
// path.
func WriteConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}
