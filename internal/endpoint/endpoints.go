package endpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
)

// Endpoints holds all endpoints exposed over HTTP
type Endpoints struct {
	ListInfluencersEndpoint    endpoint.Endpoint
	CreateInfluencerEndpoint   endpoint.Endpoint
	DeleteInfluencerEndpoint   endpoint.Endpoint
	ListCampaignsEndpoint      endpoint.Endpoint
	CreateCampaignEndpoint     endpoint.Endpoint
	ReplaceAssignmentsEndpoint endpoint.Endpoint
	GetDashboardEndpoint       endpoint.Endpoint
	ListCategoriesEndpoint     endpoint.Endpoint
}

// MakeEndpoints creates endpoints for the three services
func MakeEndpoints(influencers service.InfluencerService, campaigns service.CampaignService, dashboard service.DashboardService) Endpoints {
	return Endpoints{
		ListInfluencersEndpoint:    makeListInfluencersEndpoint(influencers),
		CreateInfluencerEndpoint:   makeCreateInfluencerEndpoint(influencers),
		DeleteInfluencerEndpoint:   makeDeleteInfluencerEndpoint(influencers),
		ListCampaignsEndpoint:      makeListCampaignsEndpoint(campaigns),
		CreateCampaignEndpoint:     makeCreateCampaignEndpoint(campaigns),
		ReplaceAssignmentsEndpoint: makeReplaceAssignmentsEndpoint(campaigns),
		GetDashboardEndpoint:       makeGetDashboardEndpoint(dashboard),
		ListCategoriesEndpoint:     makeListCategoriesEndpoint(),
	}
}

// ListInfluencersRequest carries the optional search and category filter
type ListInfluencersRequest struct {
	Filter models.InfluencerFilter
}

// ListInfluencersResponse represents the response for listing influencers
type ListInfluencersResponse struct {
	Influencers []models.Influencer
	Err         error
}

// Failed implements the endpoint.Failer interface
func (r ListInfluencersResponse) Failed() error { return r.Err }

func makeListInfluencersEndpoint(s service.InfluencerService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(ListInfluencersRequest)
		influencers, err := s.ListInfluencers(ctx, req.Filter)
		return ListInfluencersResponse{Influencers: influencers, Err: err}, nil
	}
}

// CreateInfluencerRequest wraps the decoded request body
type CreateInfluencerRequest struct {
	Influencer models.CreateInfluencerRequest
}

// CreateInfluencerResponse represents the response for creating an influencer
type CreateInfluencerResponse struct {
	Influencer *models.Influencer
	Err        error
}

// Failed implements the endpoint.Failer interface
func (r CreateInfluencerResponse) Failed() error { return r.Err }

func makeCreateInfluencerEndpoint(s service.InfluencerService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(CreateInfluencerRequest)
		influencer, err := s.CreateInfluencer(ctx, req.Influencer)
		return CreateInfluencerResponse{Influencer: influencer, Err: err}, nil
	}
}

// DeleteInfluencerRequest names the influencer to delete
type DeleteInfluencerRequest struct {
	ID string
}

// DeleteInfluencerResponse represents the response for deleting an influencer
type DeleteInfluencerResponse struct {
	Err error
}

// Failed implements the endpoint.Failer interface
func (r DeleteInfluencerResponse) Failed() error { return r.Err }

func makeDeleteInfluencerEndpoint(s service.InfluencerService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(DeleteInfluencerRequest)
		return DeleteInfluencerResponse{Err: s.DeleteInfluencer(ctx, req.ID)}, nil
	}
}

// ListCampaignsRequest has no parameters
type ListCampaignsRequest struct{}

// ListCampaignsResponse represents the response for listing campaigns
type ListCampaignsResponse struct {
	Campaigns []models.HydratedCampaign
	Err       error
}

// Failed implements the endpoint.Failer interface
func (r ListCampaignsResponse) Failed() error { return r.Err }

func makeListCampaignsEndpoint(s service.CampaignService) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		campaigns, err := s.ListCampaigns(ctx)
		return ListCampaignsResponse{Campaigns: campaigns, Err: err}, nil
	}
}

// CreateCampaignRequest wraps the decoded request body
type CreateCampaignRequest struct {
	Campaign models.CreateCampaignRequest
}

// CreateCampaignResponse carries the persisted campaign with raw influencer ids
type CreateCampaignResponse struct {
	Campaign *models.Campaign
	Err      error
}

// Failed implements the endpoint.Failer interface
func (r CreateCampaignResponse) Failed() error { return r.Err }

func makeCreateCampaignEndpoint(s service.CampaignService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(CreateCampaignRequest)
		campaign, err := s.CreateCampaign(ctx, req.Campaign)
		return CreateCampaignResponse{Campaign: campaign, Err: err}, nil
	}
}

// CampaignResponse carries one campaign with its influencers resolved
type CampaignResponse struct {
	Campaign *models.HydratedCampaign
	Err      error
}

// Failed implements the endpoint.Failer interface
func (r CampaignResponse) Failed() error { return r.Err }

// ReplaceAssignmentsRequest names the campaign and carries the new influencer set
type ReplaceAssignmentsRequest struct {
	CampaignID  string
	Assignments models.ReplaceAssignmentsRequest
}

func makeReplaceAssignmentsEndpoint(s service.CampaignService) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(ReplaceAssignmentsRequest)
		campaign, err := s.ReplaceAssignments(ctx, req.CampaignID, req.Assignments)
		return CampaignResponse{Campaign: campaign, Err: err}, nil
	}
}

// GetDashboardRequest has no parameters
type GetDashboardRequest struct{}

// GetDashboardResponse represents the response for the dashboard
type GetDashboardResponse struct {
	Dashboard *models.Dashboard
	Err       error
}

// Failed implements the endpoint.Failer interface
func (r GetDashboardResponse) Failed() error { return r.Err }

func makeGetDashboardEndpoint(s service.DashboardService) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		dashboard, err := s.GetDashboard(ctx)
		return GetDashboardResponse{Dashboard: dashboard, Err: err}, nil
	}
}

// ListCategoriesRequest has no parameters
type ListCategoriesRequest struct{}

// ListCategoriesResponse lists the selectable influencer categories
type ListCategoriesResponse struct {
	Categories []models.Category
}

func makeListCategoriesEndpoint() endpoint.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		categories := make([]models.Category, len(models.Categories))
		copy(categories, models.Categories)
		return ListCategoriesResponse{Categories: categories}, nil
	}
}
