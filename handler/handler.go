package handler

import (
	"context"
	"errors"
	"net/http"

	"videobrowse-service/events"
	"videobrowse-service/history"
	"videobrowse-service/logger"
	"videobrowse-service/middleware"
	"videobrowse-service/model"
	"videobrowse-service/storage"
	"videobrowse-service/theme"
	"videobrowse-service/youtube"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	homeFeedSize    = 25
	searchPageSize  = 25
	relatedPageSize = 20
	commentPageSize = 20
)

// VideoAPI is the subset of the remote video API the views call.
type VideoAPI interface {
	FetchVideos(ctx context.Context, opts youtube.Options) ([]model.VideoSummary, error)
	SearchVideos(ctx context.Context, query string, opts youtube.Options) ([]model.VideoSummary, error)
	FetchVideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error)
	FetchChannelVideos(ctx context.Context, channelID string, opts youtube.ChannelOptions) ([]model.VideoSummary, error)
	FetchVideoComments(ctx context.Context, videoID string, opts youtube.Options) ([]model.CommentThread, error)
	FetchPopular(ctx context.Context, opts youtube.Options) ([]model.VideoDetails, error)
}

type Handler struct {
	api     VideoAPI
	storage storage.Storage
	theme   *theme.Context
	events  events.Publisher
	log     zerolog.Logger
}

func New(api VideoAPI, store storage.Storage, themeCtx *theme.Context, pub events.Publisher, log zerolog.Logger) *Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Handler{api: api, storage: store, theme: themeCtx, events: pub, log: log}
}

// ErrorPanel is the body of every failed view. The client offers a retry
// that reloads the whole view.
type ErrorPanel struct {
	Error string `json:"error"`
	Retry bool   `json:"retry"`
}

func (h *Handler) sessionStorage(c *gin.Context) storage.Storage {
	return storage.Scoped(h.storage, middleware.SessionID(c))
}

func (h *Handler) searchHistory(c *gin.Context) *history.SearchHistory {
	return history.NewSearchHistory(h.sessionStorage(c), logger.For(h.log, logger.ComponentHistory))
}

func (h *Handler) watchHistory(c *gin.Context) *history.WatchHistory {
	return history.NewWatchHistory(h.sessionStorage(c), logger.For(h.log, logger.ComponentHistory))
}

// fail renders an upstream failure as an error panel.
func (h *Handler) fail(c *gin.Context, view string, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		status = http.StatusGatewayTimeout
	}
	ev := h.log.Error().Err(err).Str("view", view).Int("status", status)
	if code, ok := youtube.StatusCode(err); ok {
		ev = ev.Int("upstream_status", code)
	}
	ev.Msg("view failed")
	c.JSON(status, ErrorPanel{Error: err.Error(), Retry: true})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorPanel{Error: msg})
}
