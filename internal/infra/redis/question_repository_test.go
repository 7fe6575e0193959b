package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"quizwhiz-service/internal/domain"
	"quizwhiz-service/internal/infra/memory"
)

var testKey = domain.TopicKey{ExamType: "tyt", Subject: "math", Topic: "algebra"}

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(samplePool())}
	repo := NewQuestionRepository(newClient(mr), loader, time.Minute)

	questions, err := repo.Questions(context.Background(), testKey)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("catalog:tyt:math:algebra") {
		t.Fatalf("expected cache key to be set")
	}

	// Second call should hit the cache, loader not incremented.
	if _, err := repo.Questions(context.Background(), testKey); err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

func TestQuestionRepositoryReloadsAfterExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{QuestionLoader: memory.NewStaticQuestionLoader(samplePool())}
	repo := NewQuestionRepository(newClient(mr), loader, time.Minute)

	if _, err := repo.Questions(context.Background(), testKey); err != nil {
		t.Fatalf("questions: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := repo.Questions(context.Background(), testKey); err != nil {
		t.Fatalf("questions after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expired entry must reload, calls=%d", loader.calls)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context, key domain.TopicKey) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx, key)
}

func samplePool() []domain.Question {
	return []domain.Question{
		{
			ID:   "q1",
			Text: "Solve x + 1 = 3",
			Options: []domain.Option{
				{ID: "o1", Text: "1"},
				{ID: "o2", Text: "2"},
			},
			CorrectAnswerID: "o2",
			ExamType:        "tyt",
			Subject:         "math",
			Topic:           "algebra",
		},
		{
			ID:   "q2",
			Text: "Solve 2x = 8",
			Options: []domain.Option{
				{ID: "o1", Text: "4"},
				{ID: "o2", Text: "6"},
			},
			CorrectAnswerID: "o1",
			ExamType:        "tyt",
			Subject:         "math",
			Topic:           "algebra",
		},
	}
}
