package model

import (
	"cmp"
	"slices"
)

// DocPage is a node in the guides tree. Sections have children, pages
// do not. The root has an empty slug.
type DocPage struct {
	Slug        string
	Title       string
	Description string
	Order       int
	HTML        string
	Children    []*DocPage
}

// Find returns the node with the given slug, or nil.
func (p *DocPage) Find(slug string) *DocPage {
	if p.Slug == slug {
		return p
	}
	for _, child := range p.Children {
		if found := child.Find(slug); found != nil {
			return found
		}
	}
	return nil
}

// child returns the direct child with slug, creating it from init when
// missing.
func (p *DocPage) child(slug string, init func() *DocPage) *DocPage {
	for _, c := range p.Children {
		if c.Slug == slug {
			return c
		}
	}
	c := init()
	p.Children = append(p.Children, c)
	return c
}

// Insert adds page below the sections named by its slug path. Missing
// sections are created with section(dirSlug).
func (p *DocPage) Insert(page *DocPage, dirs []string, section func(dirSlug string) *DocPage) {
	node := p
	for _, dir := range dirs {
		node = node.child(dir, func() *DocPage { return section(dir) })
	}
	node.Children = append(node.Children, page)
}

// Sort orders children by Order then Title, recursively.
func (p *DocPage) Sort() {
	slices.SortFunc(p.Children, func(a, b *DocPage) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
	for _, child := range p.Children {
		child.Sort()
	}
}

// Pages lists the leaf pages depth-first in reading order.
func (p *DocPage) Pages() []*DocPage {
	var out []*DocPage
	var walk func(*DocPage)
	walk = func(n *DocPage) {
		if n.Slug != "" && len(n.Children) == 0 {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(p)
	return out
}

// Neighbours returns the pages before and after slug in reading order.
func (p *DocPage) Neighbours(slug string) (prev, next *DocPage) {
	pages := p.Pages()
	i := slices.IndexFunc(pages, func(n *DocPage) bool { return n.Slug == slug })
	if i < 0 {
		return nil, nil
	}
	if i > 0 {
		prev = pages[i-1]
	}
	if i < len(pages)-1 {
		next = pages[i+1]
	}
	return prev, next
}
