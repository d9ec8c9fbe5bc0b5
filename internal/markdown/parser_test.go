package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	src := []byte("---\ntitle: Caching\ndescription: Page cache\norder: 2\n---\n\n# Page cache\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

	doc, err := NewParser().Render(src)
	require.NoError(t, err)

	assert.Equal(t, Meta{Title: "Caching", Description: "Page cache", Order: 2}, doc.Meta)
	assert.Contains(t, doc.HTML, `<h1 id="page-cache">Page cache</h1>`)
	assert.Contains(t, doc.HTML, "<table>")
	assert.NotContains(t, doc.HTML, "title: Caching")
}

func TestRender_NoFrontmatter(t *testing.T) {
	doc, err := NewParser().Render([]byte("plain *text*"))
	require.NoError(t, err)

	assert.Equal(t, Meta{}, doc.Meta)
	assert.Contains(t, doc.HTML, "<em>text</em>")
}

func TestRender_BadFrontmatterIgnored(t *testing.T) {
	doc, err := NewParser().Render([]byte("---\norder: first\n---\nbody"))
	require.NoError(t, err)

	assert.Equal(t, Meta{}, doc.Meta)
	assert.Contains(t, doc.HTML, "body")
}
