package main

import (
	"net/http"

	kitlog "github.com/go-kit/log"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/endpoint"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/events"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/metrics"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/middleware"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/repository"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/transport"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App holds what the router needs from main
type App struct {
	Store        service.Store
	Backend      string
	Publisher    events.Publisher
	EventsHealth transport.HealthChecker
	Metrics      *metrics.Metrics
	Logger       kitlog.Logger
}

// Routes layers store, services and endpoints and returns the root handler
func Routes(app App) http.Handler {
	store := repository.NewInstrumentedStore(app.Store, app.Metrics)

	var influencers service.InfluencerService
	influencers = service.NewInfluencerService(store, app.Publisher)
	influencers = middleware.NewInfluencerMetricsMiddleware(app.Metrics)(influencers)
	influencers = middleware.NewInfluencerLoggingMiddleware(kitlog.With(app.Logger, "svc", "influencers"))(influencers)

	var campaigns service.CampaignService
	campaigns = service.NewCampaignService(store, store, app.Publisher)
	campaigns = middleware.NewCampaignMetricsMiddleware(app.Metrics)(campaigns)
	campaigns = middleware.NewCampaignLoggingMiddleware(kitlog.With(app.Logger, "svc", "campaigns"))(campaigns)

	var dashboard service.DashboardService
	dashboard = service.NewDashboardService(store, store)
	dashboard = middleware.NewDashboardLoggingMiddleware(kitlog.With(app.Logger, "svc", "dashboard"))(dashboard)

	endpoints := endpoint.MakeEndpoints(influencers, campaigns, dashboard)

	router := transport.NewHTTPHandler(endpoints, store, transport.ServiceInfo{
		Name:    serviceName,
		Version: VERSION,
		Backend: app.Backend,
		Events:  app.EventsHealth,
	}, app.Logger)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.Use(middleware.NewMetricsMiddleware(app.Metrics).Middleware)

	return middleware.NewRequestIDMiddleware().Middleware(router)
}
