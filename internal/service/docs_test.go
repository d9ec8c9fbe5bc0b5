package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, "docs", filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func newDocsFixture(t *testing.T) *DocsService {
	t.Helper()

	root := t.TempDir()
	writeDoc(t, root, "_index.md", "---\ntitle: Guides\n---\nWelcome.\n")
	writeDoc(t, root, "streaks.md", "---\ntitle: Streaks\norder: 2\n---\n# Streaks\n")
	writeDoc(t, root, "getting-started.md", "---\ntitle: Getting Started\norder: 1\ndescription: First steps\n---\nHello\n")
	writeDoc(t, root, "performance/_index.md", "---\ntitle: Performance\norder: 3\n---\n")
	writeDoc(t, root, "performance/caching.md", "---\norder: 1\n---\nCache\n")
	writeDoc(t, root, "performance/static-files.md", "---\norder: 2\n---\nStatic\n")
	return NewDocsService(root)
}

func TestDocsService_Tree(t *testing.T) {
	s := newDocsFixture(t)

	tree, err := s.DocsTree()
	require.NoError(t, err)
	assert.Equal(t, "Guides", tree.Title)
	require.Len(t, tree.Children, 3)
	assert.Equal(t, "getting-started", tree.Children[0].Slug)
	assert.Equal(t, "streaks", tree.Children[1].Slug)

	section := tree.Children[2]
	assert.Equal(t, "Performance", section.Title)
	require.Len(t, section.Children, 2)
	assert.Equal(t, "Caching", section.Children[0].Title)
	assert.Equal(t, "Static Files", section.Children[1].Title)
}

func TestDocsService_DocPage(t *testing.T) {
	s := newDocsFixture(t)

	page, err := s.DocPage("/getting-started/")
	require.NoError(t, err)
	assert.Equal(t, "First steps", page.Description)
	assert.Contains(t, page.HTML, "<p>Hello</p>")

	_, err = s.DocPage("missing")
	assert.ErrorIs(t, err, ErrDocNotFound)
}

func TestDocsService_PrevNextPages(t *testing.T) {
	s := newDocsFixture(t)

	page, err := s.DocPage("streaks")
	require.NoError(t, err)
	prev, next := s.PrevNextPages(page)
	require.NotNil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, "getting-started", prev.Slug)
	assert.Equal(t, "performance/caching", next.Slug)

	last, err := s.DocPage("performance/static-files")
	require.NoError(t, err)
	_, next = s.PrevNextPages(last)
	assert.Nil(t, next)
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Static Files", titleFromSlug("performance/static-files"))
	assert.Equal(t, "Getting Started", titleFromSlug("getting_started"))
}

func TestParentSlugs(t *testing.T) {
	assert.Empty(t, parentSlugs("streaks"))
	assert.Equal(t, []string{"a", "a/b"}, parentSlugs("a/b/c"))
}
