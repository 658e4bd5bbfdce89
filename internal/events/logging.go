package events

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	reqcontext "github.com/prajwalbharadwajbm/influencerconnect/internal/context"
)

type loggingPublisher struct {
	logger log.Logger
	next   Publisher
}

// NewLoggingPublisher logs every failed publish at warn level. The error is
// still returned so callers decide whether it matters.
func NewLoggingPublisher(logger log.Logger) func(Publisher) Publisher {
	return func(next Publisher) Publisher {
		return &loggingPublisher{
			logger: logger,
			next:   next,
		}
	}
}

func (p *loggingPublisher) Publish(ctx context.Context, event Event) error {
	err := p.next.Publish(ctx, event)
	if err != nil {
		level.Warn(p.logger).Log(
			"msg", "publish failed",
			"type", event.Type,
			"request_id", reqcontext.GetRequestID(ctx),
			"err", err,
		)
	}
	return err
}
