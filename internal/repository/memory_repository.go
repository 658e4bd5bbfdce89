package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/models"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/service"
)

type memoryInfluencer struct {
	record models.Influencer
	seq    int64
}

type memoryCampaign struct {
	record models.Campaign
	seq    int64
}

// MemoryStore keeps influencers and campaigns in process memory.
// Used for memory:// database URLs and in tests.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         int64
	influencers map[string]*memoryInfluencer
	handles     map[string]string
	campaigns   map[string]*memoryCampaign
	now         func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		influencers: make(map[string]*memoryInfluencer),
		handles:     make(map[string]string),
		campaigns:   make(map[string]*memoryCampaign),
		now:         time.Now,
	}
}

var _ service.Store = (*MemoryStore)(nil)

// Ping implements service.Store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// ListInfluencers returns all influencers newest first
func (s *MemoryStore) ListInfluencers(ctx context.Context) ([]models.Influencer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*memoryInfluencer, 0, len(s.influencers))
	for _, entry := range s.influencers {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	influencers := make([]models.Influencer, 0, len(entries))
	for _, entry := range entries {
		influencers = append(influencers, entry.record)
	}
	return influencers, nil
}

// CreateInfluencer stores influencer, enforcing a unique instagram handle
func (s *MemoryStore) CreateInfluencer(ctx context.Context, influencer *models.Influencer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.handles[influencer.Instagram]; taken {
		return models.ErrDuplicateHandle
	}

	now := s.now().UTC()
	influencer.ID = uuid.NewString()
	influencer.CreatedAt = now
	influencer.UpdatedAt = now

	s.seq++
	s.influencers[influencer.ID] = &memoryInfluencer{record: *influencer, seq: s.seq}
	s.handles[influencer.Instagram] = influencer.ID
	return nil
}

// DeleteInfluencer removes an influencer without touching campaigns
func (s *MemoryStore) DeleteInfluencer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.influencers[id]
	if !exists {
		return models.NewNotFoundError("influencer")
	}

	delete(s.handles, entry.record.Instagram)
	delete(s.influencers, id)
	return nil
}

// FindInfluencersByIDs returns the influencers that exist among ids
func (s *MemoryStore) FindInfluencersByIDs(ctx context.Context, ids []string) ([]models.Influencer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]models.Influencer, 0, len(ids))
	for _, id := range models.NormalizeIDs(ids) {
		if entry, exists := s.influencers[id]; exists {
			found = append(found, entry.record)
		}
	}
	return found, nil
}

// ListCampaigns returns all campaigns newest first
func (s *MemoryStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*memoryCampaign, 0, len(s.campaigns))
	for _, entry := range s.campaigns {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	campaigns := make([]models.Campaign, 0, len(entries))
	for _, entry := range entries {
		campaigns = append(campaigns, copyCampaign(entry.record))
	}
	return campaigns, nil
}

// CreateCampaign stores a new campaign
func (s *MemoryStore) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	campaign.ID = uuid.NewString()
	campaign.InfluencerIDs = models.NormalizeIDs(campaign.InfluencerIDs)
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	s.seq++
	s.campaigns[campaign.ID] = &memoryCampaign{record: copyCampaign(*campaign), seq: s.seq}
	return nil
}

// ReplaceAssignments overwrites the campaign's influencer ids under the write lock
func (s *MemoryStore) ReplaceAssignments(ctx context.Context, campaignID string, influencerIDs []string) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.campaigns[campaignID]
	if !exists {
		return nil, models.NewNotFoundError("campaign")
	}

	entry.record.InfluencerIDs = models.NormalizeIDs(influencerIDs)
	entry.record.UpdatedAt = s.now().UTC()

	updated := copyCampaign(entry.record)
	return &updated, nil
}

func copyCampaign(c models.Campaign) models.Campaign {
	ids := make([]string, len(c.InfluencerIDs))
	copy(ids, c.InfluencerIDs)
	c.InfluencerIDs = ids
	return c
}
