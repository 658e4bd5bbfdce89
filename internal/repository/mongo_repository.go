package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/database"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements service.Store on two MongoDB collections.
// Document ids are UUID strings so every backend shares one id format.
type MongoStore struct {
	conn *database.Lazy[*database.Mongo]
	now  func() time.Time
}

// NewMongoStore creates a store over a lazily opened client
func NewMongoStore(conn *database.Lazy[*database.Mongo]) *MongoStore {
	return &MongoStore{
		conn: conn,
		now:  time.Now,
	}
}

var _ service.Store = (*MongoStore)(nil)

func (r *MongoStore) collection(ctx context.Context, op, name string) (*mongo.Collection, error) {
	m, err := r.conn.Get(ctx)
	if err != nil {
		return nil, models.NewStoreError(op, err)
	}
	return m.Database.Collection(name), nil
}

// Ping implements service.Store
func (r *MongoStore) Ping(ctx context.Context) error {
	m, err := r.conn.Get(ctx)
	if err != nil {
		return models.NewStoreError("ping", err)
	}
	if err := m.HealthCheck(ctx); err != nil {
		return models.NewStoreError("ping", err)
	}
	return nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

// ListInfluencers returns all influencers newest first
func (r *MongoStore) ListInfluencers(ctx context.Context) ([]models.Influencer, error) {
	coll, err := r.collection(ctx, "list influencers", database.InfluencersCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, models.NewStoreError("list influencers", fmt.Errorf("failed to query influencers: %w", err))
	}

	influencers := make([]models.Influencer, 0)
	if err := cursor.All(ctx, &influencers); err != nil {
		return nil, models.NewStoreError("list influencers", fmt.Errorf("failed to decode influencers: %w", err))
	}

	return influencers, nil
}

// CreateInfluencer inserts influencer; the unique instagram index rejects duplicates
func (r *MongoStore) CreateInfluencer(ctx context.Context, influencer *models.Influencer) error {
	coll, err := r.collection(ctx, "create influencer", database.InfluencersCollection)
	if err != nil {
		return err
	}

	now := r.now().UTC().Truncate(time.Millisecond)
	influencer.ID = uuid.NewString()
	influencer.CreatedAt = now
	influencer.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, influencer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateHandle
		}
		return models.NewStoreError("create influencer", fmt.Errorf("failed to insert influencer: %w", err))
	}

	return nil
}

// DeleteInfluencer removes one influencer. Campaign references are left alone.
func (r *MongoStore) DeleteInfluencer(ctx context.Context, id string) error {
	coll, err := r.collection(ctx, "delete influencer", database.InfluencersCollection)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.NewStoreError("delete influencer", fmt.Errorf("failed to delete influencer: %w", err))
	}
	if result.DeletedCount == 0 {
		return models.NewNotFoundError("influencer")
	}

	return nil
}

// FindInfluencersByIDs returns the influencers that exist among ids
func (r *MongoStore) FindInfluencersByIDs(ctx context.Context, ids []string) ([]models.Influencer, error) {
	ids = models.NormalizeIDs(ids)
	if len(ids) == 0 {
		return []models.Influencer{}, nil
	}

	coll, err := r.collection(ctx, "find influencers", database.InfluencersCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, models.NewStoreError("find influencers", fmt.Errorf("failed to query influencers by id: %w", err))
	}

	influencers := make([]models.Influencer, 0, len(ids))
	if err := cursor.All(ctx, &influencers); err != nil {
		return nil, models.NewStoreError("find influencers", fmt.Errorf("failed to decode influencers: %w", err))
	}

	return influencers, nil
}

// ListCampaigns returns all campaigns newest first
func (r *MongoStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	coll, err := r.collection(ctx, "list campaigns", database.CampaignsCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, models.NewStoreError("list campaigns", fmt.Errorf("failed to query campaigns: %w", err))
	}

	campaigns := make([]models.Campaign, 0)
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, models.NewStoreError("list campaigns", fmt.Errorf("failed to decode campaigns: %w", err))
	}

	for i := range campaigns {
		campaigns[i].InfluencerIDs = models.NormalizeIDs(campaigns[i].InfluencerIDs)
	}

	return campaigns, nil
}

// CreateCampaign inserts a new campaign
func (r *MongoStore) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	coll, err := r.collection(ctx, "create campaign", database.CampaignsCollection)
	if err != nil {
		return err
	}

	now := r.now().UTC().Truncate(time.Millisecond)
	campaign.ID = uuid.NewString()
	campaign.InfluencerIDs = models.NormalizeIDs(campaign.InfluencerIDs)
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, campaign); err != nil {
		return models.NewStoreError("create campaign", fmt.Errorf("failed to insert campaign: %w", err))
	}

	return nil
}

// ReplaceAssignments sets influencerIds with one atomic FindOneAndUpdate and
// returns the document as written
func (r *MongoStore) ReplaceAssignments(ctx context.Context, campaignID string, influencerIDs []string) (*models.Campaign, error) {
	coll, err := r.collection(ctx, "replace assignments", database.CampaignsCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"influencerIds": models.NormalizeIDs(influencerIDs),
		"updatedAt":     r.now().UTC().Truncate(time.Millisecond),
	}}

	var campaign models.Campaign
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": campaignID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&campaign)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("campaign")
		}
		return nil, models.NewStoreError("replace assignments", fmt.Errorf("failed to update campaign: %w", err))
	}

	campaign.InfluencerIDs = models.NormalizeIDs(campaign.InfluencerIDs)
	return &campaign, nil
}
