package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/templui/habitkit/internal/markdown"
	"github.com/templui/habitkit/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrDocNotFound = errors.New("guide not found")

const indexFile = "_index.md"

// DocsService serves the Markdown guides below <contentPath>/docs.
// The tree is loaded once on first use.
type DocsService struct {
	parser *markdown.Parser
	root   string

	once sync.Once
	tree *model.DocPage
	err  error
}

func NewDocsService(contentPath string) *DocsService {
	return &DocsService{
		parser: markdown.NewParser(),
		root:   filepath.Join(contentPath, "docs"),
	}
}

func (s *DocsService) DocsTree() (*model.DocPage, error) {
	s.once.Do(func() { s.tree, s.err = s.load() })
	return s.tree, s.err
}

// DocPage returns the page or section with the given slug.
func (s *DocsService) DocPage(slug string) (*model.DocPage, error) {
	tree, err := s.DocsTree()
	if err != nil {
		return nil, err
	}

	slug = strings.Trim(slug, "/")
	if slug == "" {
		return nil, ErrDocNotFound
	}
	page := tree.Find(slug)
	if page == nil {
		return nil, ErrDocNotFound
	}
	return page, nil
}

// PrevNextPages returns the neighbours of page in reading order.
func (s *DocsService) PrevNextPages(page *model.DocPage) (prev, next *model.DocPage) {
	tree, err := s.DocsTree()
	if err != nil {
		return nil, nil
	}
	return tree.Neighbours(page.Slug)
}

func (s *DocsService) load() (*model.DocPage, error) {
	root := &model.DocPage{Title: "Guides"}
	sections := map[string]*model.DocPage{}
	var pages []*model.DocPage

	err := filepath.WalkDir(s.root, func(file string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(file) != ".md" {
			return err
		}

		rel, err := filepath.Rel(s.root, file)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		page, err := s.render(file, strings.TrimSuffix(rel, ".md"))
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", rel, err)
		}

		switch dir, name := path.Split(rel); {
		case name != indexFile:
			pages = append(pages, page)
		case dir == "":
			root.Title, root.Description, root.HTML = page.Title, page.Description, page.HTML
		default:
			page.Slug = strings.TrimSuffix(dir, "/")
			sections[page.Slug] = page
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	section := func(slug string) *model.DocPage {
		if meta, ok := sections[slug]; ok {
			return meta
		}
		return &model.DocPage{Slug: slug, Title: titleFromSlug(slug)}
	}
	for _, page := range pages {
		root.Insert(page, parentSlugs(page.Slug), section)
	}
	root.Sort()
	return root, nil
}

func (s *DocsService) render(file, slug string) (*model.DocPage, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	doc, err := s.parser.Render(source)
	if err != nil {
		return nil, err
	}

	page := &model.DocPage{
		Slug:        slug,
		Title:       doc.Meta.Title,
		Description: doc.Meta.Description,
		Order:       doc.Meta.Order,
		HTML:        doc.HTML,
	}
	if page.Title == "" {
		page.Title = titleFromSlug(strings.TrimSuffix(slug, "/_index"))
	}
	return page, nil
}

// parentSlugs returns the section slugs enclosing slug, outermost first:
// "a/b/c" gives ["a", "a/b"].
func parentSlugs(slug string) []string {
	var out []string
	for i, c := range slug {
		if c == '/' {
			out = append(out, slug[:i])
		}
	}
	return out
}

func titleFromSlug(slug string) string {
	name := path.Base(slug)
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	caser := cases.Title(language.English)
	for i, word := range words {
		words[i] = caser.String(word)
	}
	return strings.Join(words, " ")
}
