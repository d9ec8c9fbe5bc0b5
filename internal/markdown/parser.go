// Package markdown renders the bundled guides.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Meta is the YAML frontmatter a guide may start with.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

// Document is a rendered guide.
type Document struct {
	Meta Meta
	HTML string
}

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				extension.Typographer,
				&frontmatter.Extender{},
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(goldmarkhtml.WithXHTML()),
		),
	}
}

// Render converts source to HTML. Frontmatter is stripped from the output;
// when it does not decode into Meta the guide renders with an empty Meta.
func (p *Parser) Render(source []byte) (*Document, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	doc := &Document{HTML: buf.String()}
	if data := frontmatter.Get(ctx); data != nil {
		if err := data.Decode(&doc.Meta); err != nil {
			doc.Meta = Meta{}
		}
	}
	return doc, nil
}
