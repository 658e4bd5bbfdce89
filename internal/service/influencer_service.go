package service

import (
	"context"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/events"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
)

// InfluencerService defines the operations on influencer records
type InfluencerService interface {
	ListInfluencers(ctx context.Context, filter models.InfluencerFilter) ([]models.Influencer, error)
	CreateInfluencer(ctx context.Context, req models.CreateInfluencerRequest) (*models.Influencer, error)
	DeleteInfluencer(ctx context.Context, id string) error
}

// InfluencerRepository is the data access contract for influencers
type InfluencerRepository interface {
	// ListInfluencers returns every influencer, newest first
	ListInfluencers(ctx context.Context) ([]models.Influencer, error)
	// CreateInfluencer assigns id and timestamps to influencer and persists it.
	// It returns models.ErrDuplicateHandle when the instagram handle is taken.
	CreateInfluencer(ctx context.Context, influencer *models.Influencer) error
	// DeleteInfluencer removes the influencer or returns a models.ErrNotFound error
	DeleteInfluencer(ctx context.Context, id string) error
	// FindInfluencersByIDs returns the influencers that exist among ids, in no particular order
	FindInfluencersByIDs(ctx context.Context, ids []string) ([]models.Influencer, error)
}

type influencerService struct {
	repository InfluencerRepository
	publisher  events.Publisher
}

// NewInfluencerService creates a new influencer service
func NewInfluencerService(repo InfluencerRepository, publisher events.Publisher) InfluencerService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &influencerService{
		repository: repo,
		publisher:  publisher,
	}
}

// ListInfluencers returns all influencers newest first, narrowed by filter
func (s *influencerService) ListInfluencers(ctx context.Context, filter models.InfluencerFilter) ([]models.Influencer, error) {
	influencers, err := s.repository.ListInfluencers(ctx)
	if err != nil {
		return nil, err
	}
	if influencers == nil {
		influencers = []models.Influencer{}
	}
	return filter.Apply(influencers), nil
}

// CreateInfluencer validates and persists a new influencer
func (s *influencerService) CreateInfluencer(ctx context.Context, req models.CreateInfluencerRequest) (*models.Influencer, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	influencer := req.ToInfluencer()
	if err := s.repository.CreateInfluencer(ctx, influencer); err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events.New(events.InfluencerCreated, map[string]any{
		"id":        influencer.ID,
		"instagram": influencer.Instagram,
	}))

	return influencer, nil
}

// DeleteInfluencer removes an influencer. Campaigns that reference it keep
// the dangling id; hydration drops it on read.
func (s *influencerService) DeleteInfluencer(ctx context.Context, id string) error {
	canonical, ok := models.CanonicalID(id)
	if !ok {
		return models.NewNotFoundError("influencer")
	}

	if err := s.repository.DeleteInfluencer(ctx, canonical); err != nil {
		return err
	}

	_ = s.publisher.Publish(ctx, events.New(events.InfluencerDeleted, map[string]any{
		"id": canonical,
	}))

	return nil
}
