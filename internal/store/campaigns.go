package store

import (
	"sync"
	"time"

	"marketer/internal/domain"
)

// CampaignStore holds SMS campaigns in memory. Campaigns do not
// survive a restart.
type CampaignStore struct {
	mu        sync.Mutex
	campaigns []domain.SMSCampaign
	nextID    int
}

func NewCampaignStore() *CampaignStore {
	return &CampaignStore{nextID: 1}
}

// Add assigns an id and appends the campaign, returning the stored copy.
func (s *CampaignStore) Add(c domain.SMSCampaign) domain.SMSCampaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID
	s.nextID++
	s.campaigns = append(s.campaigns, c)
	return c
}

// List returns all campaigns in insertion order.
func (s *CampaignStore) List() []domain.SMSCampaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SMSCampaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

func (s *CampaignStore) Get(id int) (domain.SMSCampaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.SMSCampaign{}, domain.NotFound("campaign", id)
}

// MarkSent records the dispatch outcome. Status becomes sent
// regardless of how many recipients failed, and never reverts.
// TotalCount is refreshed to the send-time recipient count: the
// audience may have grown or shrunk since creation, and the stored
// counts must keep sent+failed within total.
func (s *CampaignStore) MarkSent(id, sent, failed, total int, at time.Time) (domain.SMSCampaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.campaigns {
		if s.campaigns[i].ID != id {
			continue
		}
		c := &s.campaigns[i]
		c.Status = domain.CampaignSent
		c.SentCount = sent
		c.FailedCount = failed
		c.TotalCount = total
		t := at
		c.SentAt = &t
		return *c, nil
	}
	return domain.SMSCampaign{}, domain.NotFound("campaign", id)
}
