package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

// JourneyEvent is the analytics record published after every matched
// click.
type JourneyEvent struct {
	BusinessID   uint   `json:"business_id"`
	FlowID       uint   `json:"flow_id"`
	ContactPhone string `json:"contact_phone"`
	Label        string `json:"label"`
	Trail        string `json:"trail"`
	ClickCount   int    `json:"click_count"`
	OccurredAt   string `json:"occurred_at"`
}

// JourneyPublisher pushes journey events downstream. Publication is
// fire-and-forget; the click pipeline never waits on it.
type JourneyPublisher interface {
	Publish(event *JourneyEvent)
}

// HTTPJourneyPublisher posts events to JOURNEY_EVENTS_URL. Failures are
// logged and swallowed. A missing URL disables publishing.
type HTTPJourneyPublisher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPJourneyPublisher creates a new journey event publisher
func NewHTTPJourneyPublisher() *HTTPJourneyPublisher {
	return &HTTPJourneyPublisher{
		url:        os.Getenv("JOURNEY_EVENTS_URL"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Publish posts the event in the background.
func (p *HTTPJourneyPublisher) Publish(event *JourneyEvent) {
	if p.url == "" {
		return
	}
	go func() {
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("⚠️  Journey event marshal failed: %v", err)
			return
		}
		resp, err := p.httpClient.Post(p.url, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("⚠️  Journey event publish failed: %v", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			log.Printf("⚠️  Journey event publish returned status %d", resp.StatusCode)
		}
	}()
}
