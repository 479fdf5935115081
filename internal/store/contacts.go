package store

import (
	"strings"
	"sync"
	"time"

	"marketer/internal/domain"
)

// ContactUpsert is one merge candidate from a contact file import.
// Phone must already be normalized.
type ContactUpsert struct {
	Name        string
	Phone       string
	Email       string
	OptInStatus domain.OptInStatus
}

// MergeOutcome reports what an import did with a single row.
type MergeOutcome struct {
	Contact domain.Contact `json:"contact"`
	Updated bool           `json:"updated"`
}

// ContactStore holds the contact book in memory, guarded by a mutex so
// concurrent requests get per-operation atomicity. The whole collection
// is written back to a single JSON file after every mutation.
type ContactStore struct {
	mu       sync.Mutex
	path     string
	contacts []domain.Contact
	nextID   int
}

func NewContactStore(path string) *ContactStore {
	return &ContactStore{path: path, nextID: 1}
}

// Load reads the persisted contact file. A missing file is an empty
// store, not an error. The id counter is seeded past the highest
// persisted id so imports in a tight loop cannot collide.
func (s *ContactStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := readContactsFile(s.path)
	if err != nil {
		return err
	}
	s.contacts = contacts
	s.nextID = 1
	for _, c := range contacts {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return nil
}

// List returns contacts matching the filter. Search is a
// case-insensitive substring match against name, phone or email;
// the opt-in filter is an exact match applied on top of it.
func (s *ContactStore) List(f domain.ContactFilter) []domain.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(c.Phone, search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		if f.OptInStatus != "" && c.OptInStatus != f.OptInStatus {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *ContactStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

// MergeBatch applies a batch of import rows under one lock and one
// persist. Rows matching an existing contact by phone overwrite the
// name, the email when non-empty, and the opt-in status when the
// provided value is not "unknown"; unmatched rows create contacts.
func (s *ContactStore) MergeBatch(ups []ContactUpsert, now time.Time) ([]MergeOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcomes := make([]MergeOutcome, 0, len(ups))
	for _, up := range ups {
		if i := s.indexByPhone(up.Phone); i >= 0 {
			c := &s.contacts[i]
			c.Name = up.Name
			if up.Email != "" {
				c.Email = up.Email
			}
			if up.OptInStatus != domain.OptInUnknown && up.OptInStatus != c.OptInStatus {
				setOptIn(c, up.OptInStatus, now)
			}
			outcomes = append(outcomes, MergeOutcome{Contact: *c, Updated: true})
			continue
		}

		c := domain.Contact{
			ID:          s.nextID,
			Name:        up.Name,
			Phone:       up.Phone,
			Email:       up.Email,
			OptInStatus: domain.OptInUnknown,
			CreatedAt:   now,
		}
		s.nextID++
		if up.OptInStatus != domain.OptInUnknown {
			setOptIn(&c, up.OptInStatus, now)
		}
		s.contacts = append(s.contacts, c)
		outcomes = append(outcomes, MergeOutcome{Contact: c, Updated: false})
	}

	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *ContactStore) SetOptIn(id int, now time.Time) (domain.Contact, error) {
	return s.setStatus(id, domain.OptedIn, now)
}

func (s *ContactStore) SetOptOut(id int, now time.Time) (domain.Contact, error) {
	return s.setStatus(id, domain.OptedOut, now)
}

func (s *ContactStore) setStatus(id int, status domain.OptInStatus, now time.Time) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.Contact{}, domain.NotFound("contact", id)
	}
	c := &s.contacts[i]
	if c.OptInStatus != status {
		setOptIn(c, status, now)
	}
	if err := s.persistLocked(); err != nil {
		return domain.Contact{}, err
	}
	return *c, nil
}

func (s *ContactStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.NotFound("contact", id)
	}
	s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
	return s.persistLocked()
}

func (s *ContactStore) indexByID(id int) int {
	for i, c := range s.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *ContactStore) indexByPhone(phone string) int {
	for i, c := range s.contacts {
		if c.Phone == phone {
			return i
		}
	}
	return -1
}

func (s *ContactStore) persistLocked() error {
	return writeContactsFile(s.path, s.contacts)
}

// setOptIn records the status transition and stamps the matching
// consent date. Dates are only ever set here, never cleared.
func setOptIn(c *domain.Contact, status domain.OptInStatus, now time.Time) {
	c.OptInStatus = status
	switch status {
	case domain.OptedIn:
		t := now
		c.OptInDate = &t
	case domain.OptedOut:
		t := now
		c.OptOutDate = &t
	}
}
