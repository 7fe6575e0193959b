package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"quizwhiz-service/internal/domain"
)

// AccountStore keeps the fast-changing account state in Redis: the energy
// value with its last-regeneration timestamp, the unlocked badge set, the
// first-correct flag, and the completed-subject set. Keys are namespaced by
// user id.
type AccountStore struct {
	client *redis.Client
}

func NewAccountStore(client *redis.Client) *AccountStore {
	return &AccountStore{client: client}
}

func (s *AccountStore) Energy(ctx context.Context, userID string) (domain.EnergyState, bool, error) {
	fields, err := s.client.HGetAll(ctx, s.energyKey(userID)).Result()
	if err != nil {
		return domain.EnergyState{}, false, err
	}
	if len(fields) == 0 {
		return domain.EnergyState{}, false, nil
	}

	st := domain.EnergyState{}
	if v, err := strconv.Atoi(fields["value"]); err == nil {
		st.Value = v
	}
	if raw, ok := fields["lastRegen"]; ok {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			st.LastRegen = ts
		}
	}
	return st, true, nil
}

func (s *AccountStore) SaveEnergy(ctx context.Context, userID string, st domain.EnergyState) error {
	return s.client.HSet(ctx, s.energyKey(userID),
		"value", st.Value,
		"lastRegen", st.LastRegen.UTC().Format(time.RFC3339),
	).Err()
}

func (s *AccountStore) UnlockBadge(ctx context.Context, userID string, id domain.BadgeID) (bool, error) {
	added, err := s.client.SAdd(ctx, s.badgesKey(userID), string(id)).Result()
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

func (s *AccountStore) Badges(ctx context.Context, userID string) ([]domain.BadgeID, error) {
	members, err := s.client.SMembers(ctx, s.badgesKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]domain.BadgeID, 0, len(members))
	for _, m := range members {
		ids = append(ids, domain.BadgeID(m))
	}
	return ids, nil
}

func (s *AccountStore) HasFirstCorrect(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.firstCorrectKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *AccountStore) MarkFirstCorrect(ctx context.Context, userID string) error {
	return s.client.Set(ctx, s.firstCorrectKey(userID), "1", 0).Err()
}

func (s *AccountStore) AddCompletedSubject(ctx context.Context, userID, subject string) (int, error) {
	key := s.subjectsKey(userID)
	if err := s.client.SAdd(ctx, key, subject).Err(); err != nil {
		return 0, err
	}
	count, err := s.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *AccountStore) CompletedSubjects(ctx context.Context, userID string) ([]string, error) {
	return s.client.SMembers(ctx, s.subjectsKey(userID)).Result()
}

func (s *AccountStore) energyKey(userID string) string {
	return "user:" + userID + ":energy"
}

func (s *AccountStore) badgesKey(userID string) string {
	return "user:" + userID + ":badges"
}

func (s *AccountStore) firstCorrectKey(userID string) string {
	return "user:" + userID + ":firstCorrect"
}

func (s *AccountStore) subjectsKey(userID string) string {
	return "user:" + userID + ":subjects"
}
