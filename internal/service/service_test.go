package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/events"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInfluencerRepository is a mock implementation of InfluencerRepository
type MockInfluencerRepository struct {
	mock.Mock
}

func (m *MockInfluencerRepository) ListInfluencers(ctx context.Context) ([]models.Influencer, error) {
	args := m.Called(ctx)
	influencers, _ := args.Get(0).([]models.Influencer)
	return influencers, args.Error(1)
}

func (m *MockInfluencerRepository) CreateInfluencer(ctx context.Context, influencer *models.Influencer) error {
	return m.Called(ctx, influencer).Error(0)
}

func (m *MockInfluencerRepository) DeleteInfluencer(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInfluencerRepository) FindInfluencersByIDs(ctx context.Context, ids []string) ([]models.Influencer, error) {
	args := m.Called(ctx, ids)
	influencers, _ := args.Get(0).([]models.Influencer)
	return influencers, args.Error(1)
}

// MockCampaignRepository is a mock implementation of CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	args := m.Called(ctx)
	campaigns, _ := args.Get(0).([]models.Campaign)
	return campaigns, args.Error(1)
}

func (m *MockCampaignRepository) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	return m.Called(ctx, campaign).Error(0)
}

func (m *MockCampaignRepository) ReplaceAssignments(ctx context.Context, campaignID string, influencerIDs []string) (*models.Campaign, error) {
	args := m.Called(ctx, campaignID, influencerIDs)
	campaign, _ := args.Get(0).(*models.Campaign)
	return campaign, args.Error(1)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

const (
	influencerA = "11111111-1111-4111-8111-111111111111"
	influencerB = "22222222-2222-4222-8222-222222222222"
	campaignID  = "99999999-9999-4999-8999-999999999999"
)

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }

func validInfluencerRequest() models.CreateInfluencerRequest {
	return models.CreateInfluencerRequest{
		Name:      "  Ana  ",
		Category:  models.CategoryFood,
		Instagram: "@ana",
		Followers: int64Ptr(200),
		Location:  "Porto",
	}
}

func TestNewInfluencerService(t *testing.T) {
	service := NewInfluencerService(&MockInfluencerRepository{}, nil)

	assert.NotNil(t, service)
	assert.IsType(t, &influencerService{}, service)
}

func TestInfluencerService_ListInfluencers_AppliesFilter(t *testing.T) {
	repo := &MockInfluencerRepository{}
	repo.On("ListInfluencers", mock.Anything).Return([]models.Influencer{
		{ID: "1", Name: "Ana", Category: models.CategoryFood},
		{ID: "2", Name: "Bruno", Category: models.CategoryTech},
	}, nil)

	service := NewInfluencerService(repo, nil)

	influencers, err := service.ListInfluencers(context.Background(), models.InfluencerFilter{Category: models.CategoryTech})
	require.NoError(t, err)
	require.Len(t, influencers, 1)
	assert.Equal(t, "2", influencers[0].ID)
}

func TestInfluencerService_ListInfluencers_NilBecomesEmpty(t *testing.T) {
	repo := &MockInfluencerRepository{}
	repo.On("ListInfluencers", mock.Anything).Return(nil, nil)

	influencers, err := NewInfluencerService(repo, nil).ListInfluencers(context.Background(), models.InfluencerFilter{})
	require.NoError(t, err)
	assert.NotNil(t, influencers)
}

func TestInfluencerService_CreateInfluencer_Success(t *testing.T) {
	repo := &MockInfluencerRepository{}
	repo.On("CreateInfluencer", mock.Anything, mock.MatchedBy(func(i *models.Influencer) bool {
		return i.Name == "Ana" && i.Followers == 200
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Influencer).ID = influencerA
	}).Return(nil)

	publisher := &recordingPublisher{}
	service := NewInfluencerService(repo, publisher)

	influencer, err := service.CreateInfluencer(context.Background(), validInfluencerRequest())
	require.NoError(t, err)
	assert.Equal(t, influencerA, influencer.ID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.InfluencerCreated, publisher.events[0].Type)
	assert.Equal(t, influencerA, publisher.events[0].Payload["id"])
	repo.AssertExpectations(t)
}

func TestInfluencerService_CreateInfluencer_InvalidRequestNeverReachesStore(t *testing.T) {
	repo := &MockInfluencerRepository{}
	publisher := &recordingPublisher{}
	service := NewInfluencerService(repo, publisher)

	req := validInfluencerRequest()
	req.Followers = int64Ptr(-1)

	_, err := service.CreateInfluencer(context.Background(), req)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "followers", verr.Fields[0].Field)
	repo.AssertNotCalled(t, "CreateInfluencer", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.events)
}

func TestInfluencerService_CreateInfluencer_PublishFailureIgnored(t *testing.T) {
	repo := &MockInfluencerRepository{}
	repo.On("CreateInfluencer", mock.Anything, mock.Anything).Return(nil)

	var buf bytes.Buffer
	publisher := events.NewLoggingPublisher(log.NewLogfmtLogger(&buf))(&recordingPublisher{err: errors.New("redis down")})
	service := NewInfluencerService(repo, publisher)

	_, err := service.CreateInfluencer(context.Background(), validInfluencerRequest())
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "level=warn")
	assert.Contains(t, buf.String(), `msg="publish failed"`)
	assert.Contains(t, buf.String(), "type=influencer.created")
	assert.Contains(t, buf.String(), `err="redis down"`)
}

func TestInfluencerService_DeleteInfluencer(t *testing.T) {
	t.Run("canonicalises id", func(t *testing.T) {
		repo := &MockInfluencerRepository{}
		repo.On("DeleteInfluencer", mock.Anything, influencerA).Return(nil)

		err := NewInfluencerService(repo, nil).DeleteInfluencer(context.Background(), "11111111-1111-4111-8111-111111111111")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		repo := &MockInfluencerRepository{}

		err := NewInfluencerService(repo, nil).DeleteInfluencer(context.Background(), "42")
		assert.ErrorIs(t, err, models.ErrNotFound)
		repo.AssertNotCalled(t, "DeleteInfluencer", mock.Anything, mock.Anything)
	})

	t.Run("store error propagates without event", func(t *testing.T) {
		repo := &MockInfluencerRepository{}
		repo.On("DeleteInfluencer", mock.Anything, influencerA).Return(models.NewStoreError("delete influencer", errors.New("timeout")))
		publisher := &recordingPublisher{}

		err := NewInfluencerService(repo, publisher).DeleteInfluencer(context.Background(), influencerA)
		assert.ErrorIs(t, err, models.ErrStoreUnavailable)
		assert.Empty(t, publisher.events)
	})
}

func TestCampaignService_ListCampaigns_SingleLookup(t *testing.T) {
	campaigns := &MockCampaignRepository{}
	influencers := &MockInfluencerRepository{}

	campaigns.On("ListCampaigns", mock.Anything).Return([]models.Campaign{
		{ID: "c1", InfluencerIDs: []string{influencerA, influencerB}},
		{ID: "c2", InfluencerIDs: []string{influencerB}},
	}, nil)
	influencers.On("FindInfluencersByIDs", mock.Anything, []string{influencerA, influencerB}).
		Return([]models.Influencer{{ID: influencerB, Name: "Bea"}}, nil).Once()

	hydrated, err := NewCampaignService(campaigns, influencers, nil).ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, hydrated, 2)

	// influencerA no longer exists and is dropped
	assert.Equal(t, []models.InfluencerSummary{{ID: influencerB, Name: "Bea"}}, hydrated[0].Influencers)
	assert.Equal(t, []models.InfluencerSummary{{ID: influencerB, Name: "Bea"}}, hydrated[1].Influencers)
	influencers.AssertExpectations(t)
}

func TestCampaignService_ListCampaigns_NoReferencesSkipsLookup(t *testing.T) {
	campaigns := &MockCampaignRepository{}
	influencers := &MockInfluencerRepository{}
	campaigns.On("ListCampaigns", mock.Anything).Return([]models.Campaign{{ID: "c1"}}, nil)

	hydrated, err := NewCampaignService(campaigns, influencers, nil).ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, hydrated, 1)
	assert.NotNil(t, hydrated[0].Influencers)
	influencers.AssertNotCalled(t, "FindInfluencersByIDs", mock.Anything, mock.Anything)
}

func TestCampaignService_CreateCampaign_InvalidDates(t *testing.T) {
	campaigns := &MockCampaignRepository{}
	service := NewCampaignService(campaigns, &MockInfluencerRepository{}, nil)

	_, err := service.CreateCampaign(context.Background(), models.CreateCampaignRequest{
		Brand:     "Acme",
		Objective: "Launch",
		Budget:    float64Ptr(100),
		StartDate: "2026-11-02",
		EndDate:   "2026-11-01",
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	campaigns.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
}

func TestCampaignService_ReplaceAssignments(t *testing.T) {
	updated := &models.Campaign{ID: campaignID, InfluencerIDs: []string{influencerA}}

	campaigns := &MockCampaignRepository{}
	campaigns.On("ReplaceAssignments", mock.Anything, campaignID, []string{influencerA}).Return(updated, nil)
	influencers := &MockInfluencerRepository{}
	influencers.On("FindInfluencersByIDs", mock.Anything, []string{influencerA}).
		Return([]models.Influencer{{ID: influencerA, Name: "Ana"}}, nil)
	publisher := &recordingPublisher{}

	ids := []string{influencerA, " " + influencerA + " "}
	hydrated, err := NewCampaignService(campaigns, influencers, publisher).
		ReplaceAssignments(context.Background(), campaignID, models.ReplaceAssignmentsRequest{InfluencerIDs: &ids})
	require.NoError(t, err)

	assert.Equal(t, campaignID, hydrated.ID)
	assert.Equal(t, "Ana", hydrated.Influencers[0].Name)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.CampaignAssignmentsReplaced, publisher.events[0].Type)
}

func TestCampaignService_ReplaceAssignments_Errors(t *testing.T) {
	ids := []string{influencerA}

	t.Run("malformed campaign id", func(t *testing.T) {
		campaigns := &MockCampaignRepository{}
		_, err := NewCampaignService(campaigns, &MockInfluencerRepository{}, nil).
			ReplaceAssignments(context.Background(), "nope", models.ReplaceAssignmentsRequest{InfluencerIDs: &ids})
		assert.ErrorIs(t, err, models.ErrNotFound)
		campaigns.AssertNotCalled(t, "ReplaceAssignments", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := NewCampaignService(&MockCampaignRepository{}, &MockInfluencerRepository{}, nil).
			ReplaceAssignments(context.Background(), campaignID, models.ReplaceAssignmentsRequest{})
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		campaigns := &MockCampaignRepository{}
		campaigns.On("ReplaceAssignments", mock.Anything, campaignID, ids).Return(nil, models.NewNotFoundError("campaign"))

		_, err := NewCampaignService(campaigns, &MockInfluencerRepository{}, nil).
			ReplaceAssignments(context.Background(), campaignID, models.ReplaceAssignmentsRequest{InfluencerIDs: &ids})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestDashboardService_GetDashboard(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	influencers := &MockInfluencerRepository{}
	influencers.On("ListInfluencers", mock.Anything).Return([]models.Influencer{
		{ID: "1", Category: models.CategoryTech, Followers: 100},
		{ID: "2", Category: models.CategoryTech, Followers: 50},
	}, nil)
	campaigns := &MockCampaignRepository{}
	campaigns.On("ListCampaigns", mock.Anything).Return([]models.Campaign{
		{ID: "c1", Brand: "Acme", Budget: 10, EndDate: now.Add(30 * 24 * time.Hour)},
	}, nil)

	dashboard, err := NewDashboardServiceWithClock(influencers, campaigns, func() time.Time { return now }).
		GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalInfluencers)
	assert.Equal(t, int64(150), dashboard.TotalFollowers)
	assert.Equal(t, 1, dashboard.ActiveCampaigns)
	assert.Equal(t, models.StatusActive, dashboard.CampaignStatuses[0].Status)
}

func TestDashboardService_GetDashboard_StoreError(t *testing.T) {
	influencers := &MockInfluencerRepository{}
	influencers.On("ListInfluencers", mock.Anything).Return(nil, errors.New("boom"))

	_, err := NewDashboardService(influencers, &MockCampaignRepository{}).GetDashboard(context.Background())
	assert.EqualError(t, err, "boom")
}
