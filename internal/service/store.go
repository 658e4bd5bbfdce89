package service

import "context"

// Store is a backend that holds both record types
type Store interface {
	InfluencerRepository
	CampaignRepository
	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}
