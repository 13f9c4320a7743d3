package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery/internal/app/dto"
	"gallery/internal/domain"
	"gallery/internal/domain/note"
)

type noteBody struct {
	NoteID  int64  `json:"note_id"`
	ImageID int64  `json:"image_id"`
	X1      int    `json:"x1"`
	Y1      int    `json:"y1"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Text    string `json:"text"`
}

func (b noteBody) input() note.Input {
	return note.Input{
		NoteID:   b.NoteID,
		ImageID:  b.ImageID,
		Geometry: note.Geometry{X1: b.X1, Y1: b.Y1, Width: b.Width, Height: b.Height},
		Text:     b.Text,
	}
}

type imageBody struct {
	ImageID int64 `json:"image_id"`
}

func (h *Handler) NoteCreate(c *gin.Context) {
	var body noteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	id, err := h.NoteSvc.Create(c.Request.Context(), viewer(c), body.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note_id": id})
}

func (h *Handler) NoteUpdate(c *gin.Context) {
	var body noteBody
	if err := c.ShouldBindJSON(&body); err != nil || body.NoteID <= 0 {
		h.badRequest(c, "note_id is required")
		return
	}

	if err := h.NoteSvc.Update(c.Request.Context(), viewer(c), body.input()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) NoteDelete(c *gin.Context) {
	var body struct {
		ImageID int64 `json:"image_id"`
		NoteID  int64 `json:"note_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.NoteID <= 0 {
		h.badRequest(c, "note_id is required")
		return
	}

	if err := h.NoteSvc.Delete(c.Request.Context(), viewer(c), body.ImageID, body.NoteID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) NoteNukeNotes(c *gin.Context) {
	h.imageAction(c, h.NoteSvc.NukeNotes)
}

func (h *Handler) NoteRequest(c *gin.Context) {
	h.imageAction(c, h.NoteSvc.Request)
}

func (h *Handler) NoteNukeRequests(c *gin.Context) {
	h.imageAction(c, h.NoteSvc.NukeRequests)
}

func (h *Handler) NoteRevert(c *gin.Context) {
	var body struct {
		NoteID   int64 `json:"note_id"`
		ReviewID int   `json:"review_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.NoteID <= 0 || body.ReviewID <= 0 {
		h.badRequest(c, "note_id and review_id are required")
		return
	}

	if err := h.NoteSvc.Revert(c.Request.Context(), viewer(c), body.NoteID, body.ReviewID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) NoteForImage(c *gin.Context) {
	id, ok := h.idParam(c, "image_id")
	if !ok {
		return
	}

	notes, err := h.NoteSvc.ForImage(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Notes []dto.Note `json:"notes"`
	}{Notes: make([]dto.Note, 0, len(notes))}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, dto.Note{
			NoteID: n.ID, ImageID: n.ImageID, UserID: n.UserID, Date: n.Date,
			X1: n.X1, Y1: n.Y1, Height: n.Height, Width: n.Width, Text: n.Text,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) NoteList(c *gin.Context) {
	page, err := h.NoteSvc.List(c.Request.Context(), pageQuery(c))
	h.writeImagePage(c, page, err)
}

func (h *Handler) NoteRequests(c *gin.Context) {
	page, err := h.NoteSvc.Requests(c.Request.Context(), pageQuery(c))
	h.writeImagePage(c, page, err)
}

func (h *Handler) NoteUpdated(c *gin.Context) {
	page, err := h.NoteSvc.Updated(c.Request.Context(), pageQuery(c))
	h.writeHistoryPage(c, page, err)
}

func (h *Handler) NoteHistory(c *gin.Context) {
	id, ok := h.idParam(c, "note_id")
	if !ok {
		return
	}
	page, err := h.NoteSvc.History(c.Request.Context(), id, pageQuery(c))
	h.writeHistoryPage(c, page, err)
}

func (h *Handler) NoteImageHistory(c *gin.Context) {
	id, ok := h.idParam(c, "image_id")
	if !ok {
		return
	}
	page, err := h.NoteSvc.ImageHistory(c.Request.Context(), id, pageQuery(c))
	h.writeHistoryPage(c, page, err)
}

func (h *Handler) imageAction(c *gin.Context, fn func(ctx context.Context, v domain.Viewer, imageID int64) error) {
	var body imageBody
	if err := c.ShouldBindJSON(&body); err != nil || body.ImageID <= 0 {
		h.badRequest(c, "image_id is required")
		return
	}

	if err := fn(c.Request.Context(), viewer(c), body.ImageID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeImagePage(c *gin.Context, page note.ImagePage, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	ids := page.ImageIDs
	if ids == nil {
		ids = []int64{}
	}
	c.JSON(http.StatusOK, dto.ImagePage{ImageIDs: ids, Page: page.Page, TotalPages: page.TotalPages})
}

func (h *Handler) writeHistoryPage(c *gin.Context, page note.HistoryPage, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.HistoryPage{
		Histories:  make([]dto.NoteHistory, 0, len(page.Histories)),
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
	for _, hs := range page.Histories {
		resp.Histories = append(resp.Histories, dto.NoteHistory{
			Note: dto.Note{
				NoteID: hs.NoteID, ImageID: hs.ImageID, UserID: hs.UserID, Date: hs.Date,
				X1: hs.X1, Y1: hs.Y1, Height: hs.Height, Width: hs.Width, Text: hs.Text,
			},
			ReviewID: hs.ReviewID,
			Enabled:  hs.Enabled,
		})
	}
	c.JSON(http.StatusOK, resp)
}
