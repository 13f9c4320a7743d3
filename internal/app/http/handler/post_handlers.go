package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery/internal/app/dto"
	"gallery/internal/domain/post"
	"gallery/internal/domain/thumb"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) PostUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.badRequest(c, "multipart field \"file\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer f.Close()

	res, err := h.PostSvc.Upload(c.Request.Context(), viewer(c), fh.Filename, f)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.UploadResponse{Post: postDTO(res.Post, nil)}
	if res.ThumbError != nil {
		resp.ThumbError = res.ThumbError.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) PostGet(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	v, err := h.PostSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, postDTO(v.Post, &v.Thumb))
}

func (h *Handler) PostDelete(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	if err := h.PostSvc.Delete(c.Request.Context(), viewer(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) PostRegenerateThumb(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	if err := h.PostSvc.RegenerateThumb(c.Request.Context(), viewer(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func postDTO(p post.Post, size *thumb.Size) dto.Post {
	out := dto.Post{
		PostID:       p.ID,
		Hash:         p.Hash,
		Filename:     p.Filename,
		Mime:         p.Mime,
		Width:        p.Width,
		Height:       p.Height,
		Filesize:     p.Filesize,
		Posted:       p.Posted,
		NumericScore: p.NumericScore,
		Notes:        p.Notes,
	}
	if size != nil {
		out.Thumb = &dto.Size{Width: size.Width, Height: size.Height}
	}
	return out
}
