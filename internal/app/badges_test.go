package app_test

import (
	"testing"
	"time"

	"quizwhiz-service/internal/app"
	"quizwhiz-service/internal/domain"
)

func TestAnswerBadges(t *testing.T) {
	rules := app.DefaultRules()

	ids := rules.AnswerBadges(false, 1)
	if len(ids) != 1 || ids[0] != domain.BadgeFirstCorrect {
		t.Fatalf("expected first-correct only, got %v", ids)
	}

	ids = rules.AnswerBadges(true, 4)
	if len(ids) != 0 {
		t.Fatalf("streak below target must award nothing, got %v", ids)
	}

	ids = rules.AnswerBadges(true, 5)
	if len(ids) != 1 || ids[0] != domain.BadgeStreak {
		t.Fatalf("expected streak badge at target, got %v", ids)
	}
}

func TestCompletionBadgesSpeedRequiresPerfectNaturalFinish(t *testing.T) {
	rules := app.DefaultRules()
	fast := 60 * time.Second // under half of the 180s limit

	if ids := rules.CompletionBadges(fast, 10, 10, 0, false); !containsBadge(ids, domain.BadgeSpeed) {
		t.Fatalf("fast perfect finish must award speed, got %v", ids)
	}
	if ids := rules.CompletionBadges(fast, 9, 10, 0, false); containsBadge(ids, domain.BadgeSpeed) {
		t.Fatalf("imperfect score must not award speed, got %v", ids)
	}
	if ids := rules.CompletionBadges(fast, 10, 10, 0, true); containsBadge(ids, domain.BadgeSpeed) {
		t.Fatalf("timer expiry must never award speed, got %v", ids)
	}
	if ids := rules.CompletionBadges(120*time.Second, 10, 10, 0, false); containsBadge(ids, domain.BadgeSpeed) {
		t.Fatalf("slow finish must not award speed, got %v", ids)
	}
	if ids := rules.CompletionBadges(fast, 0, 0, 0, false); containsBadge(ids, domain.BadgeSpeed) {
		t.Fatalf("empty quiz must not award speed, got %v", ids)
	}
}

func TestCompletionBadgesDiversity(t *testing.T) {
	rules := app.DefaultRules()

	if ids := rules.CompletionBadges(time.Minute, 5, 10, 2, false); containsBadge(ids, domain.BadgeDiversity) {
		t.Fatalf("two subjects must not award diversity, got %v", ids)
	}
	if ids := rules.CompletionBadges(time.Minute, 5, 10, 3, true); !containsBadge(ids, domain.BadgeDiversity) {
		t.Fatalf("third subject must award diversity even on timeout, got %v", ids)
	}
}

func TestBadgeByID(t *testing.T) {
	badge, ok := app.BadgeByID(domain.BadgeStreak)
	if !ok || badge.Name == "" {
		t.Fatalf("expected streak badge definition, got %+v ok=%v", badge, ok)
	}
	if _, ok := app.BadgeByID("nope"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func containsBadge(ids []domain.BadgeID, want domain.BadgeID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
