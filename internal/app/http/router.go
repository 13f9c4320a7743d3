package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gallery/internal/app/http/handler"
	"gallery/internal/app/http/middleware"
	"gallery/internal/domain"
	"gallery/internal/domain/score"
)

// NewRouter mounts /health and /metrics outside the page pipeline; every
// other route passes through the PageRequest listeners first.
func NewRouter(
	h *handler.Handler,
	events domain.Dispatcher,
	rec middleware.HTTPRecorder,
	metricsHandler http.Handler,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
		middleware.Metrics(rec),
	)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metricsHandler))

	pages := r.Group("/", middleware.Viewer(), middleware.PageRequest(events, log))

	pages.POST("/upload", h.PostUpload)
	pages.GET("/post/:id", h.PostGet)
	pages.DELETE("/post/:id", h.PostDelete)
	pages.POST("/post/:id/thumb", h.PostRegenerateThumb)

	pages.POST("/numeric_score/vote", h.ScoreVote)
	pages.GET("/numeric_score/votes/:image_id", h.ScoreVotes)
	pages.POST("/numeric_score/remove_votes_on", h.ScoreRemoveVotesOn)
	pages.POST("/numeric_score/remove_votes_by", h.ScoreRemoveVotesBy)
	pages.GET("/popular_by_day", h.Popular(score.PeriodDay))
	pages.GET("/popular_by_month", h.Popular(score.PeriodMonth))
	pages.GET("/popular_by_year", h.Popular(score.PeriodYear))

	pages.POST("/note/add", h.NoteCreate)
	pages.POST("/note/edit", h.NoteUpdate)
	pages.POST("/note/delete", h.NoteDelete)
	pages.POST("/note/nuke_notes", h.NoteNukeNotes)
	pages.POST("/note/add_request", h.NoteRequest)
	pages.POST("/note/nuke_requests", h.NoteNukeRequests)
	pages.POST("/note/revert", h.NoteRevert)
	pages.GET("/note/image/:image_id", h.NoteForImage)
	pages.GET("/note/list", h.NoteList)
	pages.GET("/note/requests", h.NoteRequests)
	pages.GET("/note/updated", h.NoteUpdated)
	pages.GET("/note/history/:note_id", h.NoteHistory)
	pages.GET("/note/image_history/:image_id", h.NoteImageHistory)

	pages.GET("/blotter", h.BlotterList)
	pages.POST("/blotter", h.BlotterAdd)
	pages.DELETE("/blotter/:id", h.BlotterRemove)

	pages.GET("/user/:id", h.UserPage)
	pages.DELETE("/user/:id", h.UserDelete)
	pages.PUT("/user/:id/biography", h.BiographySet)

	pages.GET("/nav", h.Nav)
	pages.GET("/nav/:parent", h.SubNav)
	pages.GET("/accept_terms/*path", h.AcceptTerms)

	pages.GET("/admin/config", h.SettingsGet)
	pages.POST("/admin/config", h.SettingSet)
	pages.POST("/admin/thumbs/regenerate", h.ThumbsRegenerate)

	return r
}
