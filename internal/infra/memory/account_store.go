package memory

import (
	"context"
	"sync"

	"quizwhiz-service/internal/domain"
)

// AccountStore is the in-memory implementation of app.AccountStore: energy,
// unlocked badges, the first-correct flag, and completed subjects per user.
type AccountStore struct {
	mu           sync.Mutex
	energy       map[string]domain.EnergyState
	badges       map[string]map[domain.BadgeID]struct{}
	firstCorrect map[string]bool
	subjects     map[string]map[string]struct{}
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		energy:       make(map[string]domain.EnergyState),
		badges:       make(map[string]map[domain.BadgeID]struct{}),
		firstCorrect: make(map[string]bool),
		subjects:     make(map[string]map[string]struct{}),
	}
}

func (s *AccountStore) Energy(_ context.Context, userID string) (domain.EnergyState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.energy[userID]
	return st, ok, nil
}

func (s *AccountStore) SaveEnergy(_ context.Context, userID string, st domain.EnergyState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.energy[userID] = st
	return nil
}

func (s *AccountStore) UnlockBadge(_ context.Context, userID string, id domain.BadgeID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.badges[userID]
	if !ok {
		set = make(map[domain.BadgeID]struct{})
		s.badges[userID] = set
	}
	if _, unlocked := set[id]; unlocked {
		return false, nil
	}
	set[id] = struct{}{}
	return true, nil
}

func (s *AccountStore) Badges(_ context.Context, userID string) ([]domain.BadgeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]domain.BadgeID, 0, len(s.badges[userID]))
	for id := range s.badges[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *AccountStore) HasFirstCorrect(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firstCorrect[userID], nil
}

func (s *AccountStore) MarkFirstCorrect(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firstCorrect[userID] = true
	return nil
}

func (s *AccountStore) AddCompletedSubject(_ context.Context, userID, subject string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.subjects[userID]
	if !ok {
		set = make(map[string]struct{})
		s.subjects[userID] = set
	}
	set[subject] = struct{}{}
	return len(set), nil
}

func (s *AccountStore) CompletedSubjects(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subjects := make([]string, 0, len(s.subjects[userID]))
	for subject := range s.subjects[userID] {
		subjects = append(subjects, subject)
	}
	return subjects, nil
}
