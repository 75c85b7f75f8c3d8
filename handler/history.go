package handler

import (
	"net/http"
	"strings"

	"videobrowse-service/history"
	"videobrowse-service/model"

	"github.com/gin-gonic/gin"
)

type HistoryView struct {
	Videos []model.VideoSummary `json:"videos"`
}

type SearchHistoryView struct {
	Terms []string `json:"terms"`
}

type searchTermRequest struct {
	Term string `json:"term" binding:"required"`
}

// GetWatchHistory renders watch history as ordinary video cards.
func (h *Handler) GetWatchHistory(c *gin.Context) {
	entries := h.watchHistory(c).Get(c.Request.Context())
	videos := make([]model.VideoSummary, 0, len(entries))
	for _, e := range entries {
		if v := history.ToVideoSummary(e); v != nil {
			videos = append(videos, *v)
		}
	}
	c.JSON(http.StatusOK, HistoryView{Videos: videos})
}

// AddWatchHistory records a view reported by the client. Entries missing a
// video id or title are ignored, as the store does.
func (h *Handler) AddWatchHistory(c *gin.Context) {
	var entry model.WatchEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		badRequest(c, err.Error())
		return
	}
	h.watchHistory(c).Add(c.Request.Context(), entry)
	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveWatchHistory(c *gin.Context) {
	h.watchHistory(c).Remove(c.Request.Context(), c.Param("videoId"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearWatchHistory(c *gin.Context) {
	h.watchHistory(c).Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSearchHistory(c *gin.Context) {
	c.JSON(http.StatusOK, SearchHistoryView{Terms: h.searchHistory(c).Get(c.Request.Context())})
}

func (h *Handler) AddSearchHistory(c *gin.Context) {
	var req searchTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	h.searchHistory(c).Add(c.Request.Context(), req.Term)
	c.Status(http.StatusNoContent)
}

// RemoveSearchHistory deletes one term. The route is a catch-all so terms
// containing "/" can be addressed.
func (h *Handler) RemoveSearchHistory(c *gin.Context) {
	term := strings.TrimPrefix(c.Param("term"), "/")
	h.searchHistory(c).Remove(c.Request.Context(), term)
	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearSearchHistory(c *gin.Context) {
	h.searchHistory(c).Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}
