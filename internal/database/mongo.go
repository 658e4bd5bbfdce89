package database

import (
	"context"
	"fmt"

	"github.com/prajwalbharadwajbm/influencerconnect/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Collection names
const (
	InfluencersCollection = "influencers"
	CampaignsCollection   = "campaigns"
)

// DefaultMongoDatabase is used when the connection string names no database
const DefaultMongoDatabase = "influencer-connect"

// Mongo holds the client and the application database
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// ConnectMongo connects, pings and ensures the indexes the stores rely on
func ConnectMongo(ctx context.Context, cfg config.DatabaseConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(uint64(max(cfg.MaxOpenConns, 1))))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := &Mongo{
		Client:   client,
		Database: client.Database(MongoDatabaseName(cfg.URL)),
	}

	if err := m.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return m, nil
}

// MongoDatabaseName extracts the database name from a connection string
func MongoDatabaseName(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return DefaultMongoDatabase
	}
	return cs.Database
}

// EnsureIndexes creates the unique handle index and the listing order indexes
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.Database.Collection(InfluencersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "instagram", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("instagram_unique"),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create influencer indexes: %w", err)
	}

	_, err = m.Database.Collection(CampaignsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create campaign indexes: %w", err)
	}

	return nil
}

// HealthCheck pings the primary
func (m *Mongo) HealthCheck(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *Mongo) Close() error {
	return m.Client.Disconnect(context.Background())
}

// NewLazyMongo returns the lazily opened MongoDB handle for cfg
func NewLazyMongo(cfg config.DatabaseConfig) *Lazy[*Mongo] {
	return NewLazy(func(ctx context.Context) (*Mongo, error) {
		return ConnectMongo(ctx, cfg)
	}, (*Mongo).Close)
}
