package endpoint

import (
	"context"
	"errors"
	"testing"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInfluencerService struct {
	mock.Mock
}

func (m *MockInfluencerService) ListInfluencers(ctx context.Context, filter models.InfluencerFilter) ([]models.Influencer, error) {
	args := m.Called(ctx, filter)
	influencers, _ := args.Get(0).([]models.Influencer)
	return influencers, args.Error(1)
}

func (m *MockInfluencerService) CreateInfluencer(ctx context.Context, req models.CreateInfluencerRequest) (*models.Influencer, error) {
	args := m.Called(ctx, req)
	influencer, _ := args.Get(0).(*models.Influencer)
	return influencer, args.Error(1)
}

func (m *MockInfluencerService) DeleteInfluencer(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCampaignService struct {
	mock.Mock
}

func (m *MockCampaignService) ListCampaigns(ctx context.Context) ([]models.HydratedCampaign, error) {
	args := m.Called(ctx)
	campaigns, _ := args.Get(0).([]models.HydratedCampaign)
	return campaigns, args.Error(1)
}

func (m *MockCampaignService) CreateCampaign(ctx context.Context, req models.CreateCampaignRequest) (*models.Campaign, error) {
	args := m.Called(ctx, req)
	campaign, _ := args.Get(0).(*models.Campaign)
	return campaign, args.Error(1)
}

func (m *MockCampaignService) ReplaceAssignments(ctx context.Context, campaignID string, req models.ReplaceAssignmentsRequest) (*models.HydratedCampaign, error) {
	args := m.Called(ctx, campaignID, req)
	campaign, _ := args.Get(0).(*models.HydratedCampaign)
	return campaign, args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	args := m.Called(ctx)
	dashboard, _ := args.Get(0).(*models.Dashboard)
	return dashboard, args.Error(1)
}

func newTestEndpoints() (Endpoints, *MockInfluencerService, *MockCampaignService, *MockDashboardService) {
	influencers := &MockInfluencerService{}
	campaigns := &MockCampaignService{}
	dashboard := &MockDashboardService{}
	return MakeEndpoints(influencers, campaigns, dashboard), influencers, campaigns, dashboard
}

func TestMakeEndpoints(t *testing.T) {
	endpoints, _, _, _ := newTestEndpoints()

	assert.NotNil(t, endpoints.ListInfluencersEndpoint)
	assert.NotNil(t, endpoints.CreateInfluencerEndpoint)
	assert.NotNil(t, endpoints.DeleteInfluencerEndpoint)
	assert.NotNil(t, endpoints.ListCampaignsEndpoint)
	assert.NotNil(t, endpoints.CreateCampaignEndpoint)
	assert.NotNil(t, endpoints.ReplaceAssignmentsEndpoint)
	assert.NotNil(t, endpoints.GetDashboardEndpoint)
	assert.NotNil(t, endpoints.ListCategoriesEndpoint)
}

func TestListInfluencersEndpoint_PassesFilter(t *testing.T) {
	endpoints, influencers, _, _ := newTestEndpoints()

	filter := models.InfluencerFilter{Search: "ana", Category: models.CategoryFood}
	expected := []models.Influencer{{ID: "1", Name: "Ana"}}
	influencers.On("ListInfluencers", mock.Anything, filter).Return(expected, nil)

	response, err := endpoints.ListInfluencersEndpoint(context.Background(), ListInfluencersRequest{Filter: filter})
	require.NoError(t, err)

	resp := response.(ListInfluencersResponse)
	assert.NoError(t, resp.Failed())
	assert.Equal(t, expected, resp.Influencers)
	influencers.AssertExpectations(t)
}

func TestCreateInfluencerEndpoint_ServiceErrorIsFailure(t *testing.T) {
	endpoints, influencers, _, _ := newTestEndpoints()

	influencers.On("CreateInfluencer", mock.Anything, mock.Anything).Return(nil, models.ErrDuplicateHandle)

	response, err := endpoints.CreateInfluencerEndpoint(context.Background(), CreateInfluencerRequest{})

	// business errors travel in the response, never as the endpoint error
	require.NoError(t, err)
	assert.ErrorIs(t, response.(CreateInfluencerResponse).Failed(), models.ErrDuplicateHandle)
}

func TestDeleteInfluencerEndpoint(t *testing.T) {
	endpoints, influencers, _, _ := newTestEndpoints()

	influencers.On("DeleteInfluencer", mock.Anything, "found").Return(nil)
	influencers.On("DeleteInfluencer", mock.Anything, "missing").Return(models.NewNotFoundError("influencer"))

	response, err := endpoints.DeleteInfluencerEndpoint(context.Background(), DeleteInfluencerRequest{ID: "found"})
	require.NoError(t, err)
	assert.NoError(t, response.(DeleteInfluencerResponse).Failed())

	response, err = endpoints.DeleteInfluencerEndpoint(context.Background(), DeleteInfluencerRequest{ID: "missing"})
	require.NoError(t, err)
	assert.ErrorIs(t, response.(DeleteInfluencerResponse).Failed(), models.ErrNotFound)
}

func TestReplaceAssignmentsEndpoint(t *testing.T) {
	endpoints, _, campaigns, _ := newTestEndpoints()

	ids := []string{"a"}
	body := models.ReplaceAssignmentsRequest{InfluencerIDs: &ids}
	expected := &models.HydratedCampaign{ID: "c1", Influencers: []models.InfluencerSummary{{ID: "a"}}}
	campaigns.On("ReplaceAssignments", mock.Anything, "c1", body).Return(expected, nil)

	response, err := endpoints.ReplaceAssignmentsEndpoint(context.Background(), ReplaceAssignmentsRequest{CampaignID: "c1", Assignments: body})
	require.NoError(t, err)

	resp := response.(CampaignResponse)
	assert.NoError(t, resp.Failed())
	assert.Equal(t, expected, resp.Campaign)
}

func TestCreateCampaignEndpoint_ReturnsStoredRecord(t *testing.T) {
	endpoints, _, campaigns, _ := newTestEndpoints()

	body := models.CreateCampaignRequest{Brand: "Acme", InfluencerIDs: []string{"a", "b"}}
	stored := &models.Campaign{ID: "c1", Brand: "Acme", InfluencerIDs: []string{"a", "b"}}
	campaigns.On("CreateCampaign", mock.Anything, body).Return(stored, nil)

	response, err := endpoints.CreateCampaignEndpoint(context.Background(), CreateCampaignRequest{Campaign: body})
	require.NoError(t, err)

	resp := response.(CreateCampaignResponse)
	assert.NoError(t, resp.Failed())
	assert.Equal(t, stored, resp.Campaign)
}

func TestListCampaignsEndpoint_Error(t *testing.T) {
	endpoints, _, campaigns, _ := newTestEndpoints()

	campaigns.On("ListCampaigns", mock.Anything).Return(nil, errors.New("database down"))

	response, err := endpoints.ListCampaignsEndpoint(context.Background(), ListCampaignsRequest{})
	require.NoError(t, err)
	assert.EqualError(t, response.(ListCampaignsResponse).Failed(), "database down")
}

func TestGetDashboardEndpoint(t *testing.T) {
	endpoints, _, _, dashboard := newTestEndpoints()

	expected := &models.Dashboard{TotalInfluencers: 3}
	dashboard.On("GetDashboard", mock.Anything).Return(expected, nil)

	response, err := endpoints.GetDashboardEndpoint(context.Background(), GetDashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, expected, response.(GetDashboardResponse).Dashboard)
}

func TestListCategoriesEndpoint_ReturnsCopy(t *testing.T) {
	endpoints, _, _, _ := newTestEndpoints()

	response, err := endpoints.ListCategoriesEndpoint(context.Background(), ListCategoriesRequest{})
	require.NoError(t, err)

	categories := response.(ListCategoriesResponse).Categories
	assert.Equal(t, models.Categories, categories)

	categories[0] = "Changed"
	assert.Equal(t, models.CategoryFashion, models.Categories[0])
}
