// Package content resolves long-form deep-dive documents by slug. Each
// document is a file named <slug><ext> in one directory, carrying optional
// YAML (---) or TOML (+++) frontmatter followed by the body text.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Document is one deep-dive write-up.
type Document struct {
	Slug        string
	Frontmatter Frontmatter
	Body        string
}

// Store looks up deep-dive documents in a single directory.
type Store struct {
	Dir string
	Ext string
}

// Open returns a Store rooted at dir for files with extension ext (".mdx").
// The directory is not required to exist; a missing directory is an empty store.
func Open(dir, ext string) *Store {
	return &Store{Dir: dir, Ext: ext}
}

// ListSlugs returns the stems of every document in the store, sorted.
func (s *Store) ListSlugs() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading content directory: %w", err)
	}

	slugs := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.Ext) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), s.Ext))
	}
	slices.Sort(slugs)
	return slugs, nil
}

// Exists reports whether a document with the given slug is present.
func (s *Store) Exists(slug string) bool {
	path, ok := s.pathFor(slug)
	if !ok {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GetBySlug reads and parses the document for slug. It returns nil, nil when
// no such document exists.
func (s *Store) GetBySlug(slug string) (*Document, error) {
	path, ok := s.pathFor(slug)
	if !ok {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	fm, body, err := parseDocument(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &Document{Slug: slug, Frontmatter: fm, Body: body}, nil
}

// pathFor maps a slug to its file path. Slugs that could escape the
// directory are rejected.
func (s *Store) pathFor(slug string) (string, bool) {
	if slug == "" || slug == "." || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return "", false
	}
	return filepath.Join(s.Dir, slug+s.Ext), true
}
