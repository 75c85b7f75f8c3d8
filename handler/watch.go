package handler

import (
	"net/http"
	"strings"

	"videobrowse-service/history"
	"videobrowse-service/middleware"
	"videobrowse-service/model"
	"videobrowse-service/youtube"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type WatchView struct {
	Video    *model.VideoDetails   `json:"video"`
	Category string                `json:"category"`
	Related  []model.VideoSummary  `json:"related"`
	Comments []model.CommentThread `json:"comments"`
}

// Watch renders one video with related videos and comments. The id comes
// from /watch/:id or /watch?v=.
//
// Related videos and comments are fetched concurrently once the details are
// known. A comments failure only empties the comment list; any other failure
// fails the view. Leaving the page cancels the request context, which aborts
// whatever is still in flight.
func (h *Handler) Watch(c *gin.Context) {
	videoID := strings.TrimSpace(c.Param("id"))
	if videoID == "" {
		videoID = strings.TrimSpace(c.Query("v"))
	}
	if videoID == "" {
		badRequest(c, "Select a video to watch")
		return
	}

	ctx := c.Request.Context()
	details, err := h.api.FetchVideoDetails(ctx, videoID)
	if err != nil {
		h.fail(c, "watch", err)
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, ErrorPanel{Error: "Video not found"})
		return
	}

	var related []model.VideoSummary
	comments := []model.CommentThread{}
	channelID := details.Snippet.ChannelID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if channelID != "" {
			related, err = h.api.FetchChannelVideos(gctx, channelID, youtube.ChannelOptions{
				MaxResults:     relatedPageSize,
				ExcludeVideoID: videoID,
			})
		} else {
			related, err = h.api.FetchVideos(gctx, youtube.Options{MaxResults: relatedPageSize})
		}
		return err
	})
	g.Go(func() error {
		threads, err := h.api.FetchVideoComments(gctx, videoID, youtube.Options{MaxResults: commentPageSize})
		if err != nil {
			h.log.Warn().Err(err).Str("videoId", videoID).Msg("comments unavailable")
			return nil
		}
		if threads != nil {
			comments = threads
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		h.fail(c, "watch", err)
		return
	}
	if related == nil {
		related = []model.VideoSummary{}
	}

	h.watchHistory(c).Add(ctx, history.EntryFromDetails(details))
	h.events.VideoWatched(middleware.SessionID(c), videoID, details.Snippet.Title)

	c.JSON(http.StatusOK, WatchView{
		Video:    details,
		Category: model.CategoryName(details.Snippet.CategoryID),
		Related:  related,
		Comments: comments,
	})
}
