package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery/internal/app/dto"
	"gallery/internal/domain/score"
)

func (h *Handler) ScoreVote(c *gin.Context) {
	var body struct {
		ImageID int64 `json:"image_id"`
		Score   int   `json:"score"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}

	if err := h.ScoreSvc.Vote(c.Request.Context(), viewer(c), body.ImageID, body.Score); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ScoreVotes(c *gin.Context) {
	id, ok := h.idParam(c, "image_id")
	if !ok {
		return
	}

	votes, err := h.ScoreSvc.Votes(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := struct {
		Votes []dto.Vote `json:"votes"`
	}{Votes: make([]dto.Vote, 0, len(votes))}
	for _, v := range votes {
		resp.Votes = append(resp.Votes, dto.Vote{ImageID: v.ImageID, UserID: v.UserID, Score: v.Score})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ScoreRemoveVotesOn(c *gin.Context) {
	var body struct {
		ImageID int64 `json:"image_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ImageID <= 0 {
		h.badRequest(c, "image_id is required")
		return
	}

	if err := h.ScoreSvc.RemoveVotesOn(c.Request.Context(), viewer(c), body.ImageID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ScoreRemoveVotesBy(c *gin.Context) {
	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID <= 0 {
		h.badRequest(c, "user_id is required")
		return
	}

	if err := h.ScoreSvc.RemoveVotesBy(c.Request.Context(), viewer(c), body.UserID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Popular serves one of the popular_by_* pages.
func (h *Handler) Popular(period score.Period) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := score.PopularQuery{Period: period}
		q.Day, _ = strconv.Atoi(c.Query("day"))
		q.Month, _ = strconv.Atoi(c.Query("month"))
		q.Year, _ = strconv.Atoi(c.Query("year"))

		page, err := h.ScoreSvc.Popular(c.Request.Context(), q)
		if err != nil {
			h.writeError(c, err)
			return
		}

		resp := dto.PopularResponse{
			Period:   string(page.Period),
			Title:    page.Title,
			Start:    page.Start,
			Previous: page.Previous,
			Next:     page.Next,
			Posts:    make([]dto.RankedPost, 0, len(page.Posts)),
		}
		for _, p := range page.Posts {
			resp.Posts = append(resp.Posts, dto.RankedPost{PostID: p.ImageID, Score: p.Score})
		}
		c.JSON(http.StatusOK, resp)
	}
}
