package model

import (
	"encoding/json"
	"errors"
)

// VideoID is the id of a video as returned by list/search endpoints.
//
// The search endpoint wraps it in an object ({"videoId": "..."}) while the
// videos endpoint returns a bare string. Both decode into the same value and
// it is always encoded in the object form.
type VideoID struct {
	VideoID string `json:"videoId"`
}

func (id *VideoID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &id.VideoID)
	}
	if string(data) == "null" {
		return nil
	}
	var obj struct {
		VideoID string `json:"videoId"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("model: video id must be a string or an object")
	}
	id.VideoID = obj.VideoID
	return nil
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Thumbnails struct {
	Default *Thumbnail `json:"default,omitempty"`
	Medium  *Thumbnail `json:"medium,omitempty"`
	High    *Thumbnail `json:"high,omitempty"`
	Maxres  *Thumbnail `json:"maxres,omitempty"`
}

// Best returns the largest available thumbnail URL, or "" when none is set.
func (t Thumbnails) Best() string {
	for _, th := range []*Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

type Snippet struct {
	Title        string     `json:"title"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	ChannelID    string     `json:"channelId"`
	Thumbnails   Thumbnails `json:"thumbnails"`
	Description  string     `json:"description,omitempty"`
	CategoryID   string     `json:"categoryId,omitempty"`
}

// VideoSummary is the minimal video record produced by list and search calls.
type VideoSummary struct {
	ID      VideoID `json:"id"`
	Snippet Snippet `json:"snippet"`
}

type Statistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount,omitempty"`
}

type ContentDetails struct {
	Duration string `json:"duration,omitempty"`
}

// VideoDetails is a VideoSummary plus engagement statistics.
type VideoDetails struct {
	VideoSummary
	Statistics     Statistics     `json:"statistics"`
	ContentDetails ContentDetails `json:"contentDetails"`
}

// SearchListResponse is the envelope of the search endpoint.
type SearchListResponse struct {
	Items         []VideoSummary `json:"items"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

// VideoListResponse is the envelope of the videos endpoint.
type VideoListResponse struct {
	Items []VideoDetails `json:"items"`
}
