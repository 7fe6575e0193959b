package memory

import (
	"context"
	"testing"
	"time"

	"quizwhiz-service/internal/app"
	"quizwhiz-service/internal/domain"
)

func TestSessionStorePutGetRemove(t *testing.T) {
	store := NewSessionStore()
	service := app.NewSessionServiceWithClock(
		store,
		NewQuestionRepository(NewStaticQuestionLoader(samplePool()), time.Minute),
		NewProgressStore(),
		NewAccountStore(),
		app.DefaultRules(),
		func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	)

	sess, err := service.StartSession(context.Background(), "u1", testKey)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	got, ok := store.Get(sess.ID())
	if !ok || got.ID() != sess.ID() {
		t.Fatalf("expected stored session, ok=%v", ok)
	}

	store.Remove(sess.ID())
	if _, ok := store.Get(sess.ID()); ok {
		t.Fatalf("expected session removed")
	}
	if _, err := service.View(sess.ID()); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
