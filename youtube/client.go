package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"videobrowse-service/errs"
	"videobrowse-service/metrics"
	"videobrowse-service/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL    = "https://www.googleapis.com/youtube/v3"
	DefaultMaxResults = 25

	trendingQuery = "trending"
	// Extra items requested when one id will be filtered out of a channel listing.
	excludeHeadroom = 5
	maxErrorBody    = 4 << 10
)

// Config configures a Client. Zero values pick sane defaults.
type Config struct {
	APIKey  string
	BaseURL string
	// RateLimit caps outgoing requests per second; 0 disables pacing.
	RateLimit  float64
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client wraps the handful of YouTube Data API calls the views rely on.
// It holds no cache: identical calls always go to the network.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// Options bounds the number of returned items.
type Options struct {
	MaxResults int
	// RegionCode only applies to FetchPopular.
	RegionCode string
}

// ChannelOptions bounds a channel listing and optionally drops one video from it.
type ChannelOptions struct {
	MaxResults     int
	ExcludeVideoID string
}

func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No timeout: requests end when the caller's context does.
		httpClient = &http.Client{}
	}
	limit := rate.Inf
	burst := 0
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		burst = max(1, int(cfg.RateLimit))
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    base,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		log:        cfg.Logger,
	}
}

// FetchVideos returns the home feed, a keyword search for "trending".
func (c *Client) FetchVideos(ctx context.Context, opts Options) ([]model.VideoSummary, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults(opts.MaxResults)))
	params.Set("q", trendingQuery)

	var resp model.SearchListResponse
	if err := c.get(ctx, "Search", "/search", params, &resp); err != nil {
		return nil, err
	}
	return items(resp.Items), nil
}

// SearchVideos runs a keyword search. A blank query returns an empty list
// without touching the network.
func (c *Client) SearchVideos(ctx context.Context, query string, opts Options) ([]model.VideoSummary, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []model.VideoSummary{}, nil
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults(opts.MaxResults)))
	params.Set("q", q)

	var resp model.SearchListResponse
	if err := c.get(ctx, "Search", "/search", params, &resp); err != nil {
		return nil, err
	}
	return items(resp.Items), nil
}

// FetchVideoDetails looks up a single video. It returns nil, nil when the API
// knows no such video (deleted or private).
func (c *Client) FetchVideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", videoID)

	var resp model.VideoListResponse
	if err := c.get(ctx, "Video", "/videos", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	details := resp.Items[0]
	return &details, nil
}

// FetchChannelVideos lists the newest videos of a channel. When ExcludeVideoID
// is set a few extra items are requested to make up for the dropped one; any
// remaining shortfall is not backfilled.
func (c *Client) FetchChannelVideos(ctx context.Context, channelID string, opts ChannelOptions) ([]model.VideoSummary, error) {
	limit := maxResults(opts.MaxResults)
	requested := limit
	if opts.ExcludeVideoID != "" {
		requested += excludeHeadroom
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("channelId", channelID)
	params.Set("order", "date")
	params.Set("maxResults", strconv.Itoa(requested))

	var resp model.SearchListResponse
	if err := c.get(ctx, "Channel", "/search", params, &resp); err != nil {
		return nil, err
	}

	out := make([]model.VideoSummary, 0, len(resp.Items))
	for _, v := range resp.Items {
		if opts.ExcludeVideoID != "" && v.ID.VideoID == opts.ExcludeVideoID {
			continue
		}
		out = append(out, v)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FetchVideoComments returns top-level comment threads ordered by relevance
// with plain-text bodies.
func (c *Client) FetchVideoComments(ctx context.Context, videoID string, opts Options) ([]model.CommentThread, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(maxResults(opts.MaxResults)))
	params.Set("order", "relevance")
	params.Set("textFormat", "plainText")

	var resp model.CommentThreadResponse
	if err := c.get(ctx, "Comments", "/commentThreads", params, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return []model.CommentThread{}, nil
	}
	return resp.Items, nil
}

// FetchPopular returns the most popular chart, optionally for one region.
func (c *Client) FetchPopular(ctx context.Context, opts Options) ([]model.VideoDetails, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("chart", "mostPopular")
	params.Set("maxResults", strconv.Itoa(maxResults(opts.MaxResults)))
	if opts.RegionCode != "" {
		params.Set("regionCode", strings.ToUpper(opts.RegionCode))
	}

	var resp model.VideoListResponse
	if err := c.get(ctx, "Popular", "/videos", params, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return []model.VideoDetails{}, nil
	}
	return resp.Items, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("youtube %s: %w", strings.ToLower(op), err)
	}
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.YouTubeRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.YouTubeRequestsTotal.WithLabelValues(op, "network_error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("youtube %s: %w", strings.ToLower(op), ctxErr)
		}
		c.log.Error().Err(err).Str("op", op).Msg("request failed")
		return fmt.Errorf("youtube %s: %w: %v", strings.ToLower(op), errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	metrics.YouTubeRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newAPIError(op, resp, strings.TrimSpace(string(body)))
		c.log.Warn().Str("op", op).Int("status", resp.StatusCode).Msg("api returned non-success status")
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("youtube %s: decode response: %w", strings.ToLower(op), err)
	}
	c.log.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("request completed")
	return nil
}

func maxResults(n int) int {
	if n == 0 {
		return DefaultMaxResults
	}
	return n
}

func items(in []model.VideoSummary) []model.VideoSummary {
	if in == nil {
		return []model.VideoSummary{}
	}
	return in
}
