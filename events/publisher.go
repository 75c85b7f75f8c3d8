// Package events publishes user-activity notifications to NATS.
package events

import (
	"encoding/json"
	"time"

	"videobrowse-service/metrics"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	SubjectVideoWatched    = "video.watched"
	SubjectSearchPerformed = "search.performed"
)

// Publisher is what handlers use to announce activity. Publishing is best effort.
type Publisher interface {
	VideoWatched(session, videoID, title string)
	SearchPerformed(session, query string)
}

// Message represents the structure sent to NATS
type Message struct {
	Session   string    `json:"session"`
	VideoID   string    `json:"videoId,omitempty"`
	Title     string    `json:"title,omitempty"`
	Query     string    `json:"query,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// NATSPublisher handles publishing activity to NATS
type NATSPublisher struct {
	conn *nats.Conn
	log  zerolog.Logger
}

// NewNATSPublisher creates a new NATS publisher
func NewNATSPublisher(url string, log zerolog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("videobrowse-service"))
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc, log: log}, nil
}

// Close closes the NATS connection
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

func (p *NATSPublisher) VideoWatched(session, videoID, title string) {
	p.publish(SubjectVideoWatched, Message{Session: session, VideoID: videoID, Title: title})
}

func (p *NATSPublisher) SearchPerformed(session, query string) {
	p.publish(SubjectSearchPerformed, Message{Session: session, Query: query})
}

func (p *NATSPublisher) publish(subject string, msg Message) {
	msg.Timestamp = time.Now()
	msg.Source = "videobrowse-service"
	msg.Version = "1.0"

	data, err := json.Marshal(msg)
	if err != nil {
		metrics.NatsMessagesPublished.WithLabelValues(subject, "error").Inc()
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		metrics.NatsMessagesPublished.WithLabelValues(subject, "error").Inc()
		p.log.Warn().Err(err).Str("subject", subject).Msg("publish failed")
		return
	}
	metrics.NatsMessagesPublished.WithLabelValues(subject, "success").Inc()
}

var (
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = Nop{}
)

// Nop discards every event. Used when NATS is not configured.
type Nop struct{}

func (Nop) VideoWatched(string, string, string) {}
func (Nop) SearchPerformed(string, string)      {}
