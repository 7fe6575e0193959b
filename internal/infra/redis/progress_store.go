package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"quizwhiz-service/internal/domain"
)

// ProgressStore keeps the per-user stats summary and joker flags in Redis
// hashes. Counter fields are updated with HINCRBY so every write is a partial
// merge, never a full overwrite; the level field is recomputed from the new
// cumulative XP after each delta.
type ProgressStore struct {
	client *redis.Client
}

func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{client: client}
}

func (s *ProgressStore) Summary(ctx context.Context, userID string) (domain.ProgressSummary, error) {
	fields, err := s.client.HGetAll(ctx, s.statsKey(userID)).Result()
	if err != nil {
		return domain.ProgressSummary{}, err
	}
	return summaryFromHash(fields), nil
}

func (s *ProgressStore) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressDelta) (domain.ProgressSummary, error) {
	key := s.statsKey(userID)

	pipe := s.client.TxPipeline()
	xpCmd := pipe.HIncrBy(ctx, key, "xp", int64(delta.XP))
	pipe.HIncrBy(ctx, key, "totalTests", int64(delta.TotalTests))
	pipe.HIncrBy(ctx, key, "correctAnswers", int64(delta.CorrectAnswers))
	pipe.HIncrBy(ctx, key, "wrongAnswers", int64(delta.WrongAnswers))
	if delta.LastQuizTitle != "" {
		pipe.HSet(ctx, key, "lastQuizTitle", delta.LastQuizTitle)
	}
	if !delta.LastQuizDate.IsZero() {
		pipe.HSet(ctx, key, "lastQuizDate", delta.LastQuizDate.UTC().Format(time.RFC3339))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.ProgressSummary{}, err
	}

	level := domain.LevelForXP(int(xpCmd.Val()))
	if err := s.client.HSet(ctx, key, "level", level).Err(); err != nil {
		return domain.ProgressSummary{}, err
	}

	return s.Summary(ctx, userID)
}

func (s *ProgressStore) SetJokers(ctx context.Context, userID string, flags domain.JokerFlags) error {
	return s.client.HSet(ctx, s.jokersKey(userID),
		string(domain.JokerFiftyFifty), boolField(flags.FiftyFifty),
		string(domain.JokerExtraTime), boolField(flags.ExtraTime),
		string(domain.JokerSecondChance), boolField(flags.SecondChance),
	).Err()
}

func (s *ProgressStore) SetJoker(ctx context.Context, userID string, kind domain.JokerKind, available bool) error {
	return s.client.HSet(ctx, s.jokersKey(userID), string(kind), boolField(available)).Err()
}

// Jokers reads the stored availability flags.
func (s *ProgressStore) Jokers(ctx context.Context, userID string) (domain.JokerFlags, error) {
	fields, err := s.client.HGetAll(ctx, s.jokersKey(userID)).Result()
	if err != nil {
		return domain.JokerFlags{}, err
	}
	return domain.JokerFlags{
		FiftyFifty:   fields[string(domain.JokerFiftyFifty)] == "1",
		ExtraTime:    fields[string(domain.JokerExtraTime)] == "1",
		SecondChance: fields[string(domain.JokerSecondChance)] == "1",
	}, nil
}

func (s *ProgressStore) statsKey(userID string) string {
	return "user:" + userID + ":stats"
}

func (s *ProgressStore) jokersKey(userID string) string {
	return "user:" + userID + ":jokers"
}

func summaryFromHash(fields map[string]string) domain.ProgressSummary {
	summary := domain.ProgressSummary{
		TotalTests:     intField(fields, "totalTests"),
		CorrectAnswers: intField(fields, "correctAnswers"),
		WrongAnswers:   intField(fields, "wrongAnswers"),
		XP:             intField(fields, "xp"),
		LastQuizTitle:  fields["lastQuizTitle"],
	}
	// Level is always derived, never trusted from storage.
	summary.Level = domain.LevelForXP(summary.XP)
	if raw, ok := fields["lastQuizDate"]; ok {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			summary.LastQuizDate = ts
		}
	}
	return summary
}

func intField(fields map[string]string, name string) int {
	v, err := strconv.Atoi(fields[name])
	if err != nil {
		return 0
	}
	return v
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
