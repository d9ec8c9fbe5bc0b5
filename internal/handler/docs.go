package handler

import (
	"net/http"

	"github.com/templui/habitkit/internal/dto"
	"github.com/templui/habitkit/internal/service"
)

type DocsHandler struct {
	docsService *service.DocsService
}

func NewDocsHandler(docsService *service.DocsService) *DocsHandler {
	return &DocsHandler{
		docsService: docsService,
	}
}

// Tree lists every guide without content.
func (h *DocsHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.docsService.DocsTree()
	if err != nil {
		handleError(w, r, err, "failed to load guides")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewDocNodeResponse(tree))
}

// Page returns one rendered guide with links to its neighbours.
func (h *DocsHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	page, err := h.docsService.DocPage(slug)
	if err != nil {
		handleError(w, r, err, "failed to load guide", "slug", slug)
		return
	}

	prev, next := h.docsService.PrevNextPages(page)
	writeJSON(w, http.StatusOK, dto.NewDocPageResponse(page, prev, next))
}
