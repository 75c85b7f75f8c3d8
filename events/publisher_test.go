package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageOmitsUnsetFields(t *testing.T) {
	msg := Message{
		Session:   "s1",
		Query:     "cats",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Source:    "videobrowse-service",
		Version:   "1.0",
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "cats", decoded["query"])
	assert.Equal(t, "s1", decoded["session"])
	assert.NotContains(t, decoded, "videoId")
	assert.NotContains(t, decoded, "title")
	assert.Equal(t, "2024-01-02T03:04:05Z", decoded["timestamp"])
}

func TestNopAcceptsEvents(t *testing.T) {
	var p Publisher = Nop{}
	assert.NotPanics(t, func() {
		p.VideoWatched("s1", "abc", "title")
		p.SearchPerformed("s1", "cats")
	})
}

func TestNewNATSPublisherFailsWithoutServer(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", zerolog.Nop())
	assert.Error(t, err)
}
