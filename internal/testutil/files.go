package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions asserts filesystem state below a base directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

func (fa *FileAssertions) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(fa.baseDir, rel)
}

// AssertFileExists validates that a regular file exists.
func (fa *FileAssertions) AssertFileExists(rel string) *FileAssertions {
	fa.t.Helper()
	stat, err := os.Stat(fa.path(rel))
	switch {
	case err != nil:
		fa.t.Errorf("Expected file to exist: %s", fa.path(rel))
	case stat.IsDir():
		fa.t.Errorf("Expected %s to be a file, but it's a directory", fa.path(rel))
	}
	return fa
}

// AssertFileNotExists validates that nothing exists at rel.
func (fa *FileAssertions) AssertFileNotExists(rel string) *FileAssertions {
	fa.t.Helper()
	if _, err := os.Stat(fa.path(rel)); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fa.path(rel))
	}
	return fa
}

// AssertDirExists validates that a directory exists.
func (fa *FileAssertions) AssertDirExists(rel string) *FileAssertions {
	fa.t.Helper()
	stat, err := os.Stat(fa.path(rel))
	switch {
	case err != nil:
		fa.t.Errorf("Expected directory to exist: %s", fa.path(rel))
	case !stat.IsDir():
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fa.path(rel))
	}
	return fa
}

// AssertFileContains validates that a file contains expected.
func (fa *FileAssertions) AssertFileContains(rel, expected string) *FileAssertions {
	fa.t.Helper()
	content, err := os.ReadFile(fa.path(rel))
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fa.path(rel), err)
		return fa
	}
	if !strings.Contains(string(content), expected) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", rel, expected, content)
	}
	return fa
}

// AssertFileNotContains validates that a file does not contain unexpected.
func (fa *FileAssertions) AssertFileNotContains(rel, unexpected string) *FileAssertions {
	fa.t.Helper()
	content, err := os.ReadFile(fa.path(rel))
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fa.path(rel), err)
		return fa
	}
	if strings.Contains(string(content), unexpected) {
		fa.t.Errorf("Expected file %s to not contain %q\nActual content:\n%s", rel, unexpected, content)
	}
	return fa
}

// AssertEntries validates the names directly below a directory.
func (fa *FileAssertions) AssertEntries(rel string, want ...string) *FileAssertions {
	fa.t.Helper()
	entries, err := os.ReadDir(fa.path(rel))
	if err != nil {
		fa.t.Errorf("Failed to read directory %s: %v", fa.path(rel), err)
		return fa
	}
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		fa.t.Errorf("Directory %s has entries %v, want %v", rel, got, want)
	}
	return fa
}

// WriteFile creates rel below dir, including parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
