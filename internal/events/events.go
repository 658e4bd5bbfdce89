package events

import (
	"context"
	"time"
)

// Event types published after a successful write
const (
	InfluencerCreated           = "influencer.created"
	InfluencerDeleted           = "influencer.deleted"
	CampaignCreated             = "campaign.created"
	CampaignAssignmentsReplaced = "campaign.assignments_replaced"
)

// Event is a change notification for other consumers of the stores
type Event struct {
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// New creates an event of the given type stamped with the current time
func New(eventType string, payload map[string]any) Event {
	return Event{Type: eventType, Payload: payload, OccurredAt: time.Now().UTC()}
}

// Publisher delivers change notifications
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error {
	return nil
}
