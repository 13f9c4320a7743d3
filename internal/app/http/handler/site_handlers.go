package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gallery/internal/app/dto"
	"gallery/internal/domain"
)

func (h *Handler) BlotterList(c *gin.Context) {
	entries, err := h.BlotterSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Entries []dto.BlotterEntry `json:"entries"`
	}{Entries: make([]dto.BlotterEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.BlotterEntry{ID: e.ID, Date: e.Date, Text: e.Text, Important: e.Important})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) BlotterAdd(c *gin.Context) {
	var body struct {
		Text      string `json:"text"`
		Important bool   `json:"important"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	e, err := h.BlotterSvc.Add(c.Request.Context(), viewer(c), body.Text, body.Important)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.BlotterEntry{ID: e.ID, Date: e.Date, Text: e.Text, Important: e.Important})
}

func (h *Handler) BlotterRemove(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	if err := h.BlotterSvc.Remove(c.Request.Context(), viewer(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UserPage(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	parts, err := h.UserSvc.Page(c.Request.Context(), viewer(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		UserID int64              `json:"user_id"`
		Parts  []dto.UserPagePart `json:"parts"`
	}{UserID: id, Parts: make([]dto.UserPagePart, 0, len(parts))}
	for _, p := range parts {
		resp.Parts = append(resp.Parts, dto.UserPagePart{Name: p.Name, Content: p.Content})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UserDelete(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	if err := h.UserSvc.Delete(c.Request.Context(), viewer(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) BiographySet(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Biography string `json:"biography"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if err := h.BioSvc.Set(c.Request.Context(), viewer(c), id, body.Biography); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Nav(c *gin.Context) {
	links, err := h.NavSvc.Links(c.Request.Context())
	h.writeLinks(c, links, err)
}

func (h *Handler) SubNav(c *gin.Context) {
	links, err := h.NavSvc.SubLinks(c.Request.Context(), c.Param("parent"))
	h.writeLinks(c, links, err)
}

func (h *Handler) writeLinks(c *gin.Context, links []domain.NavLink, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Links []dto.NavLink `json:"links"`
	}{Links: make([]dto.NavLink, 0, len(links))}
	for _, l := range links {
		resp.Links = append(resp.Links, dto.NavLink{Href: l.Href, Text: l.Text, Category: l.Category})
	}
	c.JSON(http.StatusOK, resp)
}

// AcceptTerms is reached only when no listener claimed the request; it sends
// the visitor on to the page they asked for.
func (h *Handler) AcceptTerms(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+strings.TrimPrefix(c.Param("path"), "/"))
}
