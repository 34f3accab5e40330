// Package store owns document I/O for the pipeline: whole-file reads
// and writes by identifier against a workspace directory. The pipeline
// itself never touches disk; callers read a snapshot here, run the
// pipeline, and write results back.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scrivenapp/scriven/internal/textutil"
)

// documentExtensions are the file types the writing app manages.
var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// Store reads and writes documents under a workspace root. Document
// identifiers are slash-separated paths relative to the root.
type Store struct {
	root string
}

// Open returns a Store rooted at dir.
func Open(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute workspace root.
func (s *Store) Root() string { return s.root }

func (s *Store) resolve(name string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(name))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("document %q escapes the workspace", name)
	}
	return full, nil
}

// List enumerates the workspace's documents, sorted, skipping hidden
// directories.
func (s *Store) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Read returns a document's content with line endings normalized to LF.
// Normalization happens once here, at ingestion; everything downstream
// assumes '\n'.
func (s *Store) Read(name string) (string, error) {
	full, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return textutil.NormalizeLineEndings(string(data)), nil
}

// Snapshot reads every listed document into a name-to-content map.
func (s *Store) Snapshot() (map[string]string, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	contents := make(map[string]string, len(names))
	for _, name := range names {
		content, err := s.Read(name)
		if err != nil {
			return nil, err
		}
		contents[name] = content
	}
	return contents, nil
}

// Write replaces a document's content atomically: write to a temp file
// in the same directory, then rename over the target, preserving the
// original file's permissions.
func (s *Store) Write(name, content string) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".scriven-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, err := os.Stat(full); err == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, full); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
