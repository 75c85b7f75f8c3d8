package model

type CommentThreadResponse struct {
	Items         []CommentThread `json:"items"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

type CommentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment Comment `json:"topLevelComment"`
		TotalReplyCount int     `json:"totalReplyCount"`
	} `json:"snippet"`
}

type Comment struct {
	ID      string `json:"id,omitempty"`
	Snippet struct {
		AuthorDisplayName     string `json:"authorDisplayName"`
		AuthorProfileImageURL string `json:"authorProfileImageUrl"`
		TextOriginal          string `json:"textOriginal,omitempty"`
		TextDisplay           string `json:"textDisplay,omitempty"`
		PublishedAt           string `json:"publishedAt"`
		LikeCount             int    `json:"likeCount"`
	} `json:"snippet"`
}

// Text prefers the original text and falls back to the display text.
func (c Comment) Text() string {
	if c.Snippet.TextOriginal != "" {
		return c.Snippet.TextOriginal
	}
	return c.Snippet.TextDisplay
}
