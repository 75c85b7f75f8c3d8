package handler

import (
	"net/http"
	"strings"

	"videobrowse-service/middleware"
	"videobrowse-service/model"
	"videobrowse-service/youtube"

	"github.com/gin-gonic/gin"
)

type FeedView struct {
	Videos []model.VideoSummary `json:"videos"`
}

type SearchView struct {
	Query  string               `json:"query"`
	Videos []model.VideoSummary `json:"videos"`
}

type PopularView struct {
	Region string               `json:"region,omitempty"`
	Videos []model.VideoDetails `json:"videos"`
}

// Home renders the trending feed.
func (h *Handler) Home(c *gin.Context) {
	videos, err := h.api.FetchVideos(c.Request.Context(), youtube.Options{MaxResults: homeFeedSize})
	if err != nil {
		h.fail(c, "home", err)
		return
	}
	c.JSON(http.StatusOK, FeedView{Videos: videos})
}

// Search records the query in search history and renders its results.
// A blank query renders an empty page without calling the API.
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, SearchView{Query: "", Videos: []model.VideoSummary{}})
		return
	}

	ctx := c.Request.Context()
	h.searchHistory(c).Add(ctx, q)
	h.events.SearchPerformed(middleware.SessionID(c), q)

	videos, err := h.api.SearchVideos(ctx, q, youtube.Options{MaxResults: searchPageSize})
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, SearchView{Query: q, Videos: videos})
}

// Popular renders the most popular chart, optionally for ?region=.
func (h *Handler) Popular(c *gin.Context) {
	region := c.Query("region")
	videos, err := h.api.FetchPopular(c.Request.Context(), youtube.Options{MaxResults: homeFeedSize, RegionCode: region})
	if err != nil {
		h.fail(c, "popular", err)
		return
	}
	c.JSON(http.StatusOK, PopularView{Region: strings.ToUpper(region), Videos: videos})
}
