package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gallery/internal/domain"
)

func (h *Handler) SettingsGet(c *gin.Context) {
	if !viewer(c).Admin {
		h.writeError(c, domain.PermissionDenied("only admins can view settings"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": h.SettingSvc.All()})
}

func (h *Handler) SettingSet(c *gin.Context) {
	var body struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if err := h.SettingSvc.Set(c.Request.Context(), viewer(c), body.Name, body.Value); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ThumbsRegenerate(c *gin.Context) {
	v := viewer(c)
	if !v.Admin {
		h.writeError(c, domain.PermissionDenied("only admins can regenerate thumbnails"))
		return
	}

	n, err := h.Regenerator.RegenerateAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.Log.Info("thumbnail regeneration requested", zap.Int64("user_id", v.ID), zap.Int("images", n))
	c.JSON(http.StatusAccepted, gin.H{"submitted": n})
}
