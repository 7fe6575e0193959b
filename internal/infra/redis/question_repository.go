package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizwhiz-service/internal/domain"
)

// QuestionLoader fetches catalog content from a backing store (e.g., Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, key domain.TopicKey) ([]domain.Question, error)
}

// QuestionRepository caches topic pools in Redis as a JSON blob per topic key
// and falls back to the loader on cache miss, singleflight-guarded so a cold
// topic hits the backing store once.
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) Questions(ctx context.Context, key domain.TopicKey) ([]domain.Question, error) {
	cacheKey := r.cacheKey(key)

	raw, err := r.client.Get(ctx, cacheKey).Bytes()
	if err == nil {
		return decodePool(raw)
	}

	result, err, _ := r.sf.Do(cacheKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := r.client.Get(ctx, cacheKey).Bytes()
		if err == nil {
			return decodePool(raw)
		}

		questions, err := r.loader.LoadQuestions(ctx, key)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(questions)
		if err != nil {
			return nil, err
		}
		_ = r.client.Set(ctx, cacheKey, encoded, r.ttlWithJitter()).Err()

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) cacheKey(key domain.TopicKey) string {
	return "catalog:" + key.ExamType + ":" + key.Subject + ":" + key.Topic
}

func decodePool(raw []byte) ([]domain.Question, error) {
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
