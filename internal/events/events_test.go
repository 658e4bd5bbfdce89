package events

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/go-redis/redis/v8"
	reqcontext "github.com/prajwalbharadwajbm/influencerconnect/internal/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StampsUTC(t *testing.T) {
	event := New(CampaignCreated, map[string]any{"id": "c1"})

	assert.Equal(t, CampaignCreated, event.Type)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.WithinDuration(t, time.Now(), event.OccurredAt, time.Minute)
}

func TestEvent_JSONShape(t *testing.T) {
	event := Event{
		Type:       InfluencerDeleted,
		Payload:    map[string]any{"id": "i1"},
		OccurredAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"influencer.deleted","payload":{"id":"i1"},"occurredAt":"2026-10-18T12:00:00Z"}`, string(data))
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NewNopPublisher().Publish(context.Background(), New(InfluencerCreated, nil)))
}

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisPublisher_PublishErrorIsWrapped(t *testing.T) {
	publisher := NewRedisPublisherWithClient(unreachableClient(), "influencerconnect:events")
	defer publisher.Close()

	err := publisher.Publish(context.Background(), New(CampaignCreated, map[string]any{"id": "c1"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Redis publish error")
	assert.Error(t, publisher.HealthCheck(context.Background()))
}

func TestNewRedisPublisher_FailsWhenUnreachable(t *testing.T) {
	_, err := NewRedisPublisher(RedisConfig{Enabled: true, Addr: "127.0.0.1:1", Channel: "events"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestLoggingPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	require.NoError(t, NewLoggingPublisher(logger)(NewNopPublisher()).Publish(context.Background(), New(InfluencerCreated, nil)))
	assert.Empty(t, buf.String())

	publisher := NewRedisPublisherWithClient(unreachableClient(), "influencerconnect:events")
	defer publisher.Close()

	ctx := reqcontext.WithRequestID(context.Background(), "req-7")
	err := NewLoggingPublisher(logger)(publisher).Publish(ctx, New(CampaignCreated, map[string]any{"id": "c1"}))

	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=warn")
	assert.Contains(t, buf.String(), "type=campaign.created")
	assert.Contains(t, buf.String(), "request_id=req-7")
}
