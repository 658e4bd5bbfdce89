package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/endpoint"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker
type HealthCheckFunc func(ctx context.Context) error

// Ping implements HealthChecker
func (f HealthCheckFunc) Ping(ctx context.Context) error { return f(ctx) }

// ServiceInfo is echoed by the health endpoint. Events is nil when change
// notifications are disabled.
type ServiceInfo struct {
	Name    string
	Version string
	Backend string
	Events  HealthChecker
}

// operation names the messages an endpoint reports on failure
type operation struct {
	failure  string
	notFound string
}

var (
	opListInfluencers    = operation{failure: "Failed to fetch influencers"}
	opCreateInfluencer   = operation{failure: "Failed to create influencer"}
	opDeleteInfluencer   = operation{failure: "Failed to delete influencer", notFound: "Influencer not found"}
	opListCampaigns      = operation{failure: "Failed to fetch campaigns"}
	opCreateCampaign     = operation{failure: "Failed to create campaign"}
	opReplaceAssignments = operation{failure: "Failed to update campaign", notFound: "Campaign not found"}
	opGetDashboard       = operation{failure: "Failed to load dashboard"}
	opListCategories     = operation{failure: "Failed to fetch categories"}
)

// errBadRequest marks a body or path that could not be decoded
type errBadRequest struct {
	err error
}

func (e errBadRequest) Error() string { return e.err.Error() }

func (e errBadRequest) Unwrap() error { return e.err }

// NewHTTPHandler wires every endpoint onto a gorilla/mux router
func NewHTTPHandler(endpoints endpoint.Endpoints, health HealthChecker, info ServiceInfo, logger log.Logger) *mux.Router {
	server := func(ep func(context.Context, any) (any, error), op operation, dec httptransport.DecodeRequestFunc, enc httptransport.EncodeResponseFunc) http.Handler {
		return httptransport.NewServer(ep, dec, enc,
			httptransport.ServerErrorEncoder(errorEncoder(op)),
			httptransport.ServerErrorHandler(transport.NewLogErrorHandler(log.With(logger, "component", "http"))),
		)
	}

	r := mux.NewRouter()

	r.Handle("/influencers", server(endpoints.ListInfluencersEndpoint, opListInfluencers,
		decodeListInfluencersRequest, encodeListInfluencersResponse)).Methods(http.MethodGet)
	r.Handle("/influencers", server(endpoints.CreateInfluencerEndpoint, opCreateInfluencer,
		decodeCreateInfluencerRequest, encodeCreateInfluencerResponse)).Methods(http.MethodPost)
	r.Handle("/influencers/{id}", server(endpoints.DeleteInfluencerEndpoint, opDeleteInfluencer,
		decodeDeleteInfluencerRequest, encodeDeleteInfluencerResponse)).Methods(http.MethodDelete)

	r.Handle("/campaigns", server(endpoints.ListCampaignsEndpoint, opListCampaigns,
		decodeListCampaignsRequest, encodeListCampaignsResponse)).Methods(http.MethodGet)
	r.Handle("/campaigns", server(endpoints.CreateCampaignEndpoint, opCreateCampaign,
		decodeCreateCampaignRequest, encodeCreateCampaignResponse)).Methods(http.MethodPost)
	r.Handle("/campaigns/{id}", server(endpoints.ReplaceAssignmentsEndpoint, opReplaceAssignments,
		decodeReplaceAssignmentsRequest, encodeCampaignResponse(http.StatusOK))).Methods(http.MethodPut)

	r.Handle("/dashboard", server(endpoints.GetDashboardEndpoint, opGetDashboard,
		decodeGetDashboardRequest, encodeGetDashboardResponse)).Methods(http.MethodGet)
	r.Handle("/meta/categories", server(endpoints.ListCategoriesEndpoint, opListCategories,
		decodeListCategoriesRequest, encodeListCategoriesResponse)).Methods(http.MethodGet)

	r.Handle("/health", healthHandler(health, info)).Methods(http.MethodGet)

	return r
}

func decodeListInfluencersRequest(_ context.Context, r *http.Request) (interface{}, error) {
	query := r.URL.Query()
	return endpoint.ListInfluencersRequest{
		Filter: models.InfluencerFilter{
			Search:   strings.TrimSpace(query.Get("search")),
			Category: models.Category(strings.TrimSpace(query.Get("category"))),
		},
	}, nil
}

func decodeCreateInfluencerRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.CreateInfluencerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	return endpoint.CreateInfluencerRequest{Influencer: req}, nil
}

func decodeDeleteInfluencerRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return endpoint.DeleteInfluencerRequest{ID: mux.Vars(r)["id"]}, nil
}

func decodeListCampaignsRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return endpoint.ListCampaignsRequest{}, nil
}

func decodeCreateCampaignRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.CreateCampaignRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	return endpoint.CreateCampaignRequest{Campaign: req}, nil
}

func decodeReplaceAssignmentsRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req models.ReplaceAssignmentsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	return endpoint.ReplaceAssignmentsRequest{
		CampaignID:  mux.Vars(r)["id"],
		Assignments: req,
	}, nil
}

func decodeGetDashboardRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return endpoint.GetDashboardRequest{}, nil
}

func decodeListCategoriesRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return endpoint.ListCategoriesRequest{}, nil
}

// decodeJSONBody reads a single JSON object. Unknown fields are ignored.
func decodeJSONBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errBadRequest{err: errors.New("request body is empty")}
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadRequest{err: fmt.Errorf("malformed JSON: %w", err)}
	}
	return nil
}

func encodeListInfluencersResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.ListInfluencersResponse)
	influencers := resp.Influencers
	if influencers == nil {
		influencers = []models.Influencer{}
	}
	return writeJSON(w, http.StatusOK, influencers)
}

func encodeCreateInfluencerResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.CreateInfluencerResponse)
	return writeJSON(w, http.StatusCreated, resp.Influencer)
}

func encodeDeleteInfluencerResponse(_ context.Context, w http.ResponseWriter, _ interface{}) error {
	return writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Influencer deleted successfully"})
}

func encodeListCampaignsResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.ListCampaignsResponse)
	campaigns := resp.Campaigns
	if campaigns == nil {
		campaigns = []models.HydratedCampaign{}
	}
	return writeJSON(w, http.StatusOK, campaigns)
}

func encodeCreateCampaignResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.CreateCampaignResponse)
	return writeJSON(w, http.StatusCreated, resp.Campaign)
}

func encodeCampaignResponse(status int) httptransport.EncodeResponseFunc {
	return func(_ context.Context, w http.ResponseWriter, response interface{}) error {
		resp := response.(endpoint.CampaignResponse)
		return writeJSON(w, status, resp.Campaign)
	}
}

func encodeGetDashboardResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.GetDashboardResponse)
	return writeJSON(w, http.StatusOK, resp.Dashboard)
}

func encodeListCategoriesResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(endpoint.ListCategoriesResponse)
	return writeJSON(w, http.StatusOK, resp.Categories)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// errorEncoder maps service errors to status codes and the
// {"error", "details"} body
func errorEncoder(op operation) httptransport.ErrorEncoder {
	return func(_ context.Context, err error, w http.ResponseWriter) {
		status, body := errorResponse(op, err)
		_ = writeJSON(w, status, body)
	}
}

func errorResponse(op operation, err error) (int, models.ErrorResponse) {
	var badRequest errBadRequest
	var validation *models.ValidationError

	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, models.NewErrorResponseWithDetails("Invalid request body", badRequest.Error())
	case errors.As(err, &validation):
		return http.StatusBadRequest, models.NewErrorResponseWithDetails("Validation failed", validation.Details())
	case errors.Is(err, models.ErrDuplicateHandle):
		return http.StatusBadRequest, models.NewErrorResponse("Instagram handle already exists")
	case errors.Is(err, models.ErrNotFound):
		message := op.notFound
		if message == "" {
			message = "Not found"
		}
		return http.StatusNotFound, models.NewErrorResponse(message)
	default:
		return http.StatusInternalServerError, models.NewErrorResponseWithDetails(op.failure, err.Error())
	}
}

// healthHandler pings the store and reports 503 when it is unreachable. An
// unreachable event bus only degrades the service.
func healthHandler(health HealthChecker, info ServiceInfo) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		response := map[string]any{
			"status":  "healthy",
			"service": info.Name,
			"version": info.Version,
			"store":   info.Backend,
		}
		status := http.StatusOK

		response["events"] = "disabled"
		if info.Events != nil {
			response["events"] = "up"
			if err := info.Events.Ping(ctx); err != nil {
				response["status"] = "degraded"
				response["events"] = "down"
				response["events_error"] = err.Error()
			}
		}

		if err := health.Ping(ctx); err != nil {
			response["status"] = "unhealthy"
			response["error"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		_ = writeJSON(w, status, response)
	})
}
