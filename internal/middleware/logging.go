package middleware

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	reqcontext "github.com/prajwalbharadwajbm/influencerconnect/internal/context"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
)

// logCall writes one line per service call. Failures go out at error level,
// everything else at info.
func logCall(ctx context.Context, logger log.Logger, method string, begin time.Time, err error, fields ...interface{}) {
	info := reqcontext.GetRequestInfo(ctx)
	logFields := []interface{}{
		"method", method,
		"request_id", info.ID,
	}
	logFields = append(logFields, fields...)
	logFields = append(logFields, "took", time.Since(begin))

	if !info.StartTime.IsZero() {
		logFields = append(logFields, "request_age", time.Since(info.StartTime))
	}
	if info.UserAgent != "" {
		logFields = append(logFields, "user_agent", info.UserAgent)
	}
	if info.RemoteAddr != "" {
		logFields = append(logFields, "remote_addr", info.RemoteAddr)
	}

	if err != nil {
		logFields = append(logFields, "error", err.Error(), "success", false)
		level.Error(logger).Log(logFields...)
		return
	}

	logFields = append(logFields, "success", true)
	level.Info(logger).Log(logFields...)
}

type influencerLoggingMiddleware struct {
	logger log.Logger
	next   service.InfluencerService
}

// NewInfluencerLoggingMiddleware creates a logging middleware for InfluencerService
func NewInfluencerLoggingMiddleware(logger log.Logger) func(service.InfluencerService) service.InfluencerService {
	return func(next service.InfluencerService) service.InfluencerService {
		return &influencerLoggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

func (mw *influencerLoggingMiddleware) ListInfluencers(ctx context.Context, filter models.InfluencerFilter) (influencers []models.Influencer, err error) {
	defer func(begin time.Time) {
		logCall(ctx, mw.logger, "ListInfluencers", begin, err,
			"search", filter.Search,
			"category", filter.Category,
			"count", len(influencers),
		)
	}(time.Now())

	return mw.next.ListInfluencers(ctx, filter)
}

func (mw *influencerLoggingMiddleware) CreateInfluencer(ctx context.Context, req models.CreateInfluencerRequest) (influencer *models.Influencer, err error) {
	defer func(begin time.Time) {
		id := ""
		if influencer != nil {
			id = influencer.ID
		}
		logCall(ctx, mw.logger, "CreateInfluencer", begin, err,
			"instagram", req.Instagram,
			"category", req.Category,
			"id", id,
		)
	}(time.Now())

	return mw.next.CreateInfluencer(ctx, req)
}

func (mw *influencerLoggingMiddleware) DeleteInfluencer(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		logCall(ctx, mw.logger, "DeleteInfluencer", begin, err, "id", id)
	}(time.Now())

	return mw.next.DeleteInfluencer(ctx, id)
}

type campaignLoggingMiddleware struct {
	logger log.Logger
	next   service.CampaignService
}

// NewCampaignLoggingMiddleware creates a logging middleware for CampaignService
func NewCampaignLoggingMiddleware(logger log.Logger) func(service.CampaignService) service.CampaignService {
	return func(next service.CampaignService) service.CampaignService {
		return &campaignLoggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

func (mw *campaignLoggingMiddleware) ListCampaigns(ctx context.Context) (campaigns []models.HydratedCampaign, err error) {
	defer func(begin time.Time) {
		logCall(ctx, mw.logger, "ListCampaigns", begin, err, "count", len(campaigns))
	}(time.Now())

	return mw.next.ListCampaigns(ctx)
}

func (mw *campaignLoggingMiddleware) CreateCampaign(ctx context.Context, req models.CreateCampaignRequest) (campaign *models.Campaign, err error) {
	defer func(begin time.Time) {
		id := ""
		if campaign != nil {
			id = campaign.ID
		}
		logCall(ctx, mw.logger, "CreateCampaign", begin, err,
			"brand", req.Brand,
			"influencers", len(req.InfluencerIDs),
			"id", id,
		)
	}(time.Now())

	return mw.next.CreateCampaign(ctx, req)
}

func (mw *campaignLoggingMiddleware) ReplaceAssignments(ctx context.Context, campaignID string, req models.ReplaceAssignmentsRequest) (campaign *models.HydratedCampaign, err error) {
	defer func(begin time.Time) {
		requested := 0
		if req.InfluencerIDs != nil {
			requested = len(*req.InfluencerIDs)
		}
		resolved := 0
		if campaign != nil {
			resolved = len(campaign.Influencers)
		}
		logCall(ctx, mw.logger, "ReplaceAssignments", begin, err,
			"campaign_id", campaignID,
			"requested", requested,
			"resolved", resolved,
		)
	}(time.Now())

	return mw.next.ReplaceAssignments(ctx, campaignID, req)
}

type dashboardLoggingMiddleware struct {
	logger log.Logger
	next   service.DashboardService
}

// NewDashboardLoggingMiddleware creates a logging middleware for DashboardService
func NewDashboardLoggingMiddleware(logger log.Logger) func(service.DashboardService) service.DashboardService {
	return func(next service.DashboardService) service.DashboardService {
		return &dashboardLoggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

func (mw *dashboardLoggingMiddleware) GetDashboard(ctx context.Context) (dashboard *models.Dashboard, err error) {
	defer func(begin time.Time) {
		logCall(ctx, mw.logger, "GetDashboard", begin, err)
	}(time.Now())

	return mw.next.GetDashboard(ctx)
}
