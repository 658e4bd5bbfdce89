package middleware

import (
	"context"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/metrics"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
)

type influencerMetricsMiddleware struct {
	metrics *metrics.Metrics
	service.InfluencerService
}

// NewInfluencerMetricsMiddleware records business metrics for InfluencerService
func NewInfluencerMetricsMiddleware(metrics *metrics.Metrics) func(service.InfluencerService) service.InfluencerService {
	return func(next service.InfluencerService) service.InfluencerService {
		return &influencerMetricsMiddleware{
			metrics:           metrics,
			InfluencerService: next,
		}
	}
}

func (mw *influencerMetricsMiddleware) CreateInfluencer(ctx context.Context, req models.CreateInfluencerRequest) (*models.Influencer, error) {
	influencer, err := mw.InfluencerService.CreateInfluencer(ctx, req)
	if err == nil {
		mw.metrics.RecordCreated("influencer")
	}
	return influencer, err
}

type campaignMetricsMiddleware struct {
	metrics *metrics.Metrics
	service.CampaignService
}

// NewCampaignMetricsMiddleware records business metrics for CampaignService
func NewCampaignMetricsMiddleware(metrics *metrics.Metrics) func(service.CampaignService) service.CampaignService {
	return func(next service.CampaignService) service.CampaignService {
		return &campaignMetricsMiddleware{
			metrics:         metrics,
			CampaignService: next,
		}
	}
}

func (mw *campaignMetricsMiddleware) CreateCampaign(ctx context.Context, req models.CreateCampaignRequest) (*models.Campaign, error) {
	campaign, err := mw.CampaignService.CreateCampaign(ctx, req)
	if err == nil {
		mw.metrics.RecordCreated("campaign")
	}
	return campaign, err
}

func (mw *campaignMetricsMiddleware) ReplaceAssignments(ctx context.Context, campaignID string, req models.ReplaceAssignmentsRequest) (*models.HydratedCampaign, error) {
	campaign, err := mw.CampaignService.ReplaceAssignments(ctx, campaignID, req)
	if err == nil && req.InfluencerIDs != nil {
		mw.metrics.RecordAssignmentReplace(len(models.NormalizeIDs(*req.InfluencerIDs)))
	}
	return campaign, err
}
