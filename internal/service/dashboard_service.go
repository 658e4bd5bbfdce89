package service

import (
	"context"
	"time"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
)

// DashboardService computes the aggregate dashboard view
type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.Dashboard, error)
}

// Clock returns the current time; injected so status labels are testable
type Clock func() time.Time

type dashboardService struct {
	influencers InfluencerRepository
	campaigns   CampaignRepository
	now         Clock
}

// NewDashboardService creates a dashboard service using the wall clock
func NewDashboardService(influencers InfluencerRepository, campaigns CampaignRepository) DashboardService {
	return NewDashboardServiceWithClock(influencers, campaigns, time.Now)
}

// NewDashboardServiceWithClock creates a dashboard service with a custom clock
func NewDashboardServiceWithClock(influencers InfluencerRepository, campaigns CampaignRepository, now Clock) DashboardService {
	return &dashboardService{
		influencers: influencers,
		campaigns:   campaigns,
		now:         now,
	}
}

// GetDashboard reads both stores and recomputes every aggregate
func (s *dashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	influencers, err := s.influencers.ListInfluencers(ctx)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := models.BuildDashboard(influencers, campaigns, s.now())
	return &dashboard, nil
}
