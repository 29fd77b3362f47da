// Package file provides a filesystem-backed page store. Each user owns
// a subdirectory of the pages root; every readable note file inside it
// is one page.
package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// noteExtensions are the file types treated as note pages.
var noteExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".md":   true,
	".txt":  true,
}

// PageStore reads note pages from <root>/<userID>/. Pages are input
// only; the store never writes.
type PageStore struct {
	root string
}

// NewPageStore creates a page store over the given root directory.
// If root is empty, defaults to ~/.noterag/pages.
func NewPageStore(root string) (*PageStore, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		root = filepath.Join(home, ".noterag", "pages")
	}
	return &PageStore{root: root}, nil
}

// Root returns the pages root directory.
func (s *PageStore) Root() string {
	return s.root
}

// ListPages returns all pages owned by the user, ordered by path.
// A missing user directory yields an empty slice, not an error.
func (s *PageStore) ListPages(ctx context.Context, userID string) ([]domain.Page, error) {
	userDir := filepath.Join(s.root, userID)
	if _, err := os.Stat(userDir); os.IsNotExist(err) {
		return []domain.Page{}, nil
	}

	var paths []string
	err := filepath.WalkDir(userDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !noteExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking pages for user %s: %w", userID, err)
	}
	sort.Strings(paths)

	pages := make([]domain.Page, 0, len(paths))
	for _, path := range paths {
		page, err := s.readPage(userID, path)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, nil
}

// GetPage retrieves a single page by ID. The ID is the path relative to
// the pages root (userID/filename).
func (s *PageStore) GetPage(_ context.Context, id string) (*domain.Page, error) {
	path := filepath.Join(s.root, filepath.FromSlash(id))

	// Reject IDs that escape the root.
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, domain.ErrInvalidInput
	}

	userID, _, ok := strings.Cut(filepath.ToSlash(rel), "/")
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	return s.readPage(userID, path)
}

// readPage loads one page file. The page ID is the root-relative path,
// the name is the file name with its extension stripped and separators
// replaced by spaces.
func (s *PageStore) readPage(userID, path string) (*domain.Page, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return nil, fmt.Errorf("resolving page path %s: %w", path, err)
	}

	return &domain.Page{
		ID:         filepath.ToSlash(rel),
		Owner:      userID,
		Name:       pageName(path),
		RawContent: string(content),
	}, nil
}

// pageName derives a human-readable title from a file name.
func pageName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
