package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocPage_InsertSortNeighbours(t *testing.T) {
	root := &DocPage{Title: "Guides"}
	section := func(slug string) *DocPage { return &DocPage{Slug: slug, Title: slug, Order: 9} }

	root.Insert(&DocPage{Slug: "b", Title: "B", Order: 2}, nil, section)
	root.Insert(&DocPage{Slug: "a", Title: "A", Order: 1}, nil, section)
	root.Insert(&DocPage{Slug: "x/two", Title: "Two"}, []string{"x"}, section)
	root.Insert(&DocPage{Slug: "x/one", Title: "One"}, []string{"x"}, section)
	root.Sort()

	var slugs []string
	for _, p := range root.Pages() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"a", "b", "x/one", "x/two"}, slugs)

	require.NotNil(t, root.Find("x"))
	assert.Len(t, root.Find("x").Children, 2)
	assert.Nil(t, root.Find("nope"))

	prev, next := root.Neighbours("b")
	assert.Equal(t, "a", prev.Slug)
	assert.Equal(t, "x/one", next.Slug)

	prev, next = root.Neighbours("missing")
	assert.Nil(t, prev)
	assert.Nil(t, next)
}
