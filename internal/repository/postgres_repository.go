package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/database"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
)

const (
	pqUniqueViolation      = "23505"
	influencerHandleUnique = "influencers_instagram_key"
)

// PostgresStore implements service.Store using PostgreSQL
type PostgresStore struct {
	conn *database.Lazy[*database.DB]
	now  func() time.Time
}

// NewPostgresStore creates a store over a lazily opened connection
func NewPostgresStore(conn *database.Lazy[*database.DB]) *PostgresStore {
	return &PostgresStore{
		conn: conn,
		now:  time.Now,
	}
}

var _ service.Store = (*PostgresStore)(nil)

func (r *PostgresStore) db(ctx context.Context, op string) (*database.DB, error) {
	db, err := r.conn.Get(ctx)
	if err != nil {
		return nil, models.NewStoreError(op, err)
	}
	return db, nil
}

// Ping implements service.Store
func (r *PostgresStore) Ping(ctx context.Context) error {
	db, err := r.db(ctx, "ping")
	if err != nil {
		return err
	}
	if err := db.HealthCheck(ctx); err != nil {
		return models.NewStoreError("ping", err)
	}
	return nil
}

// ListInfluencers returns all influencers newest first
func (r *PostgresStore) ListInfluencers(ctx context.Context) ([]models.Influencer, error) {
	db, err := r.db(ctx, "list influencers")
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category, instagram, followers, location, created_at, updated_at
		FROM influencers
		ORDER BY created_at DESC, id
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, models.NewStoreError("list influencers", fmt.Errorf("failed to query influencers: %w", err))
	}
	defer rows.Close()

	return scanInfluencers(rows)
}

// CreateInfluencer inserts influencer, mapping the unique handle constraint
// to models.ErrDuplicateHandle
func (r *PostgresStore) CreateInfluencer(ctx context.Context, influencer *models.Influencer) error {
	db, err := r.db(ctx, "create influencer")
	if err != nil {
		return err
	}

	now := r.now().UTC()
	influencer.ID = uuid.NewString()
	influencer.CreatedAt = now
	influencer.UpdatedAt = now

	query := `
		INSERT INTO influencers (id, name, category, instagram, followers, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = db.ExecContext(ctx, query,
		influencer.ID,
		influencer.Name,
		string(influencer.Category),
		influencer.Instagram,
		influencer.Followers,
		influencer.Location,
		influencer.CreatedAt,
		influencer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, influencerHandleUnique) {
			return models.ErrDuplicateHandle
		}
		return models.NewStoreError("create influencer", fmt.Errorf("failed to insert influencer: %w", err))
	}

	return nil
}

// DeleteInfluencer removes one influencer. Campaign references are left alone.
func (r *PostgresStore) DeleteInfluencer(ctx context.Context, id string) error {
	db, err := r.db(ctx, "delete influencer")
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM influencers WHERE id = $1`, id)
	if err != nil {
		return models.NewStoreError("delete influencer", fmt.Errorf("failed to delete influencer: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.NewStoreError("delete influencer", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("influencer")
	}

	return nil
}

// FindInfluencersByIDs returns the influencers that exist among ids
func (r *PostgresStore) FindInfluencersByIDs(ctx context.Context, ids []string) ([]models.Influencer, error) {
	ids = models.NormalizeIDs(ids)
	if len(ids) == 0 {
		return []models.Influencer{}, nil
	}

	db, err := r.db(ctx, "find influencers")
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category, instagram, followers, location, created_at, updated_at
		FROM influencers
		WHERE id = ANY($1::uuid[])
	`

	rows, err := db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, models.NewStoreError("find influencers", fmt.Errorf("failed to query influencers by id: %w", err))
	}
	defer rows.Close()

	return scanInfluencers(rows)
}

// ListCampaigns returns all campaigns newest first
func (r *PostgresStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	db, err := r.db(ctx, "list campaigns")
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, brand, objective, budget, start_date, end_date, influencer_ids, created_at, updated_at
		FROM campaigns
		ORDER BY created_at DESC, id
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, models.NewStoreError("list campaigns", fmt.Errorf("failed to query campaigns: %w", err))
	}
	defer rows.Close()

	campaigns := make([]models.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, models.NewStoreError("list campaigns", err)
		}
		campaigns = append(campaigns, *campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, models.NewStoreError("list campaigns", fmt.Errorf("error iterating over campaign rows: %w", err))
	}

	return campaigns, nil
}

// CreateCampaign inserts a new campaign
func (r *PostgresStore) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	db, err := r.db(ctx, "create campaign")
	if err != nil {
		return err
	}

	now := r.now().UTC()
	campaign.ID = uuid.NewString()
	campaign.InfluencerIDs = models.NormalizeIDs(campaign.InfluencerIDs)
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	query := `
		INSERT INTO campaigns (id, brand, objective, budget, start_date, end_date, influencer_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::uuid[], $8, $9)
	`

	_, err = db.ExecContext(ctx, query,
		campaign.ID,
		campaign.Brand,
		campaign.Objective,
		campaign.Budget,
		campaign.StartDate,
		campaign.EndDate,
		pq.Array(campaign.InfluencerIDs),
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)
	if err != nil {
		return models.NewStoreError("create campaign", fmt.Errorf("failed to insert campaign: %w", err))
	}

	return nil
}

// ReplaceAssignments overwrites influencer_ids in a single UPDATE so
// concurrent replaces resolve to whichever statement commits last
func (r *PostgresStore) ReplaceAssignments(ctx context.Context, campaignID string, influencerIDs []string) (*models.Campaign, error) {
	db, err := r.db(ctx, "replace assignments")
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE campaigns
		SET influencer_ids = $2::uuid[], updated_at = $3
		WHERE id = $1
		RETURNING id, brand, objective, budget, start_date, end_date, influencer_ids, created_at, updated_at
	`

	row := db.QueryRowContext(ctx, query, campaignID, pq.Array(models.NormalizeIDs(influencerIDs)), r.now().UTC())
	campaign, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("campaign")
		}
		return nil, models.NewStoreError("replace assignments", err)
	}

	return campaign, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInfluencers(rows *sql.Rows) ([]models.Influencer, error) {
	influencers := make([]models.Influencer, 0)
	for rows.Next() {
		var influencer models.Influencer
		var category string

		err := rows.Scan(
			&influencer.ID,
			&influencer.Name,
			&category,
			&influencer.Instagram,
			&influencer.Followers,
			&influencer.Location,
			&influencer.CreatedAt,
			&influencer.UpdatedAt,
		)
		if err != nil {
			return nil, models.NewStoreError("scan influencer", fmt.Errorf("failed to scan influencer: %w", err))
		}

		influencer.Category = models.Category(category)
		influencers = append(influencers, influencer)
	}

	if err := rows.Err(); err != nil {
		return nil, models.NewStoreError("scan influencer", fmt.Errorf("error iterating over influencer rows: %w", err))
	}

	return influencers, nil
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var campaign models.Campaign
	var influencerIDs []string

	err := row.Scan(
		&campaign.ID,
		&campaign.Brand,
		&campaign.Objective,
		&campaign.Budget,
		&campaign.StartDate,
		&campaign.EndDate,
		pq.Array(&influencerIDs),
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan campaign: %w", err)
	}

	campaign.StartDate = campaign.StartDate.UTC()
	campaign.EndDate = campaign.EndDate.UTC()
	campaign.InfluencerIDs = models.NormalizeIDs(influencerIDs)
	return &campaign, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraint
}
