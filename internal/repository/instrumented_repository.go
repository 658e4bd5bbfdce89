package repository

import (
	"context"
	"errors"
	"time"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/metrics"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
)

// InstrumentedStore wraps a store with query and error metrics
type InstrumentedStore struct {
	next    service.Store
	metrics *metrics.Metrics
}

// NewInstrumentedStore creates a new instrumented store
func NewInstrumentedStore(store service.Store, metrics *metrics.Metrics) service.Store {
	return &InstrumentedStore{
		next:    store,
		metrics: metrics,
	}
}

func (r *InstrumentedStore) observe(operation, table string, begin time.Time, err error) {
	r.metrics.RecordDatabaseQuery(operation, table, time.Since(begin).Seconds())
	if err != nil {
		r.metrics.RecordDatabaseError(operation, errorType(err))
	}
}

// errorType labels only infrastructure failures as query errors; domain
// outcomes such as not found are counted separately
func errorType(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrDuplicateHandle):
		return "duplicate"
	default:
		return "query_error"
	}
}

// Ping implements service.Store with metrics
func (r *InstrumentedStore) Ping(ctx context.Context) error {
	err := r.next.Ping(ctx)
	r.metrics.SetHealthCheckStatus("store", err == nil)
	return err
}

// ListInfluencers implements service.Store with metrics
func (r *InstrumentedStore) ListInfluencers(ctx context.Context) (influencers []models.Influencer, err error) {
	defer func(begin time.Time) {
		r.observe("select", "influencers", begin, err)
	}(time.Now())

	influencers, err = r.next.ListInfluencers(ctx)
	return
}

// CreateInfluencer implements service.Store with metrics
func (r *InstrumentedStore) CreateInfluencer(ctx context.Context, influencer *models.Influencer) (err error) {
	defer func(begin time.Time) {
		r.observe("insert", "influencers", begin, err)
	}(time.Now())

	err = r.next.CreateInfluencer(ctx, influencer)
	return
}

// DeleteInfluencer implements service.Store with metrics
func (r *InstrumentedStore) DeleteInfluencer(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		r.observe("delete", "influencers", begin, err)
	}(time.Now())

	err = r.next.DeleteInfluencer(ctx, id)
	return
}

// FindInfluencersByIDs implements service.Store with metrics
func (r *InstrumentedStore) FindInfluencersByIDs(ctx context.Context, ids []string) (influencers []models.Influencer, err error) {
	defer func(begin time.Time) {
		r.observe("select_by_ids", "influencers", begin, err)
	}(time.Now())

	influencers, err = r.next.FindInfluencersByIDs(ctx, ids)
	return
}

// ListCampaigns implements service.Store with metrics
func (r *InstrumentedStore) ListCampaigns(ctx context.Context) (campaigns []models.Campaign, err error) {
	defer func(begin time.Time) {
		r.observe("select", "campaigns", begin, err)
	}(time.Now())

	campaigns, err = r.next.ListCampaigns(ctx)
	return
}

// CreateCampaign implements service.Store with metrics
func (r *InstrumentedStore) CreateCampaign(ctx context.Context, campaign *models.Campaign) (err error) {
	defer func(begin time.Time) {
		r.observe("insert", "campaigns", begin, err)
	}(time.Now())

	err = r.next.CreateCampaign(ctx, campaign)
	return
}

// ReplaceAssignments implements service.Store with metrics
func (r *InstrumentedStore) ReplaceAssignments(ctx context.Context, campaignID string, influencerIDs []string) (campaign *models.Campaign, err error) {
	defer func(begin time.Time) {
		r.observe("update", "campaigns", begin, err)
	}(time.Now())

	campaign, err = r.next.ReplaceAssignments(ctx, campaignID, influencerIDs)
	return
}
