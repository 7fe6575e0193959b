package memory

import (
	"context"
	"sync"

	"quizwhiz-service/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressStore, used in
// tests and when no Redis is configured. Writes follow the same partial-merge
// contract as the durable adapters.
type ProgressStore struct {
	mu        sync.Mutex
	summaries map[string]domain.ProgressSummary
	jokers    map[string]domain.JokerFlags
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		summaries: make(map[string]domain.ProgressSummary),
		jokers:    make(map[string]domain.JokerFlags),
	}
}

func (s *ProgressStore) Summary(_ context.Context, userID string) (domain.ProgressSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.summaries[userID]
	if !ok {
		return domain.ProgressSummary{Level: 1}, nil
	}
	return summary, nil
}

func (s *ProgressStore) ApplyDelta(_ context.Context, userID string, delta domain.ProgressDelta) (domain.ProgressSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := s.summaries[userID]
	summary.TotalTests += delta.TotalTests
	summary.CorrectAnswers += delta.CorrectAnswers
	summary.WrongAnswers += delta.WrongAnswers
	summary.XP += delta.XP
	summary.Level = domain.LevelForXP(summary.XP)
	if delta.LastQuizTitle != "" {
		summary.LastQuizTitle = delta.LastQuizTitle
	}
	if !delta.LastQuizDate.IsZero() {
		summary.LastQuizDate = delta.LastQuizDate
	}
	s.summaries[userID] = summary
	return summary, nil
}

func (s *ProgressStore) SetJokers(_ context.Context, userID string, flags domain.JokerFlags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jokers[userID] = flags
	return nil
}

func (s *ProgressStore) SetJoker(_ context.Context, userID string, kind domain.JokerKind, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags := s.jokers[userID]
	switch kind {
	case domain.JokerFiftyFifty:
		flags.FiftyFifty = available
	case domain.JokerExtraTime:
		flags.ExtraTime = available
	case domain.JokerSecondChance:
		flags.SecondChance = available
	}
	s.jokers[userID] = flags
	return nil
}

// Jokers returns the stored flags; test helper.
func (s *ProgressStore) Jokers(userID string) domain.JokerFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jokers[userID]
}
