package dto

import "github.com/templui/habitkit/internal/model"

type DocNodeResponse struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Children    []*DocNodeResponse `json:"children,omitempty"`
}

type DocLinkResponse struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type DocPageResponse struct {
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	HTML        string             `json:"html"`
	Children    []*DocNodeResponse `json:"children,omitempty"`
	Prev        *DocLinkResponse   `json:"prev,omitempty"`
	Next        *DocLinkResponse   `json:"next,omitempty"`
}

// NewDocNodeResponse maps a guide and its descendants without content.
func NewDocNodeResponse(page *model.DocPage) *DocNodeResponse {
	node := &DocNodeResponse{
		Slug:        page.Slug,
		Title:       page.Title,
		Description: page.Description,
	}
	for _, child := range page.Children {
		node.Children = append(node.Children, NewDocNodeResponse(child))
	}
	return node
}

func docLink(page *model.DocPage) *DocLinkResponse {
	if page == nil {
		return nil
	}
	return &DocLinkResponse{Slug: page.Slug, Title: page.Title}
}

func NewDocPageResponse(page, prev, next *model.DocPage) *DocPageResponse {
	resp := &DocPageResponse{
		Slug:        page.Slug,
		Title:       page.Title,
		Description: page.Description,
		HTML:        page.HTML,
		Prev:        docLink(prev),
		Next:        docLink(next),
	}
	for _, child := range page.Children {
		resp.Children = append(resp.Children, NewDocNodeResponse(child))
	}
	return resp
}
