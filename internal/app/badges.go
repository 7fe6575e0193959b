package app

import (
	"time"

	"quizwhiz-service/internal/domain"
)

// Badges is the full achievement catalog.
var Badges = []domain.Badge{
	{ID: domain.BadgeFirstCorrect, Name: "First Blood", Description: "Answered your first question correctly."},
	{ID: domain.BadgeStreak, Name: "Serial Scorer", Description: "Five correct answers in a row."},
	{ID: domain.BadgeSpeed, Name: "Time Master", Description: "Perfect score with more than half the time left."},
	{ID: domain.BadgeDiversity, Name: "Subject Explorer", Description: "Completed quizzes in three different subjects."},
}

// BadgeByID looks up a badge definition.
func BadgeByID(id domain.BadgeID) (domain.Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Badge{}, false
}

// AnswerBadges evaluates the rules triggered by a correct submission.
// firstCorrectGiven reports whether the account already gave its first-ever
// correct answer; streak is the consecutive-correct counter including this
// answer. Unlock idempotency is the store's job, not the evaluator's.
func (r Rules) AnswerBadges(firstCorrectGiven bool, streak int) []domain.BadgeID {
	var ids []domain.BadgeID
	if !firstCorrectGiven {
		ids = append(ids, domain.BadgeFirstCorrect)
	}
	if streak >= r.StreakTarget {
		ids = append(ids, domain.BadgeStreak)
	}
	return ids
}

// CompletionBadges evaluates the rules triggered when a session finishes.
// The speed badge only applies to the natural finish path, never to timer
// expiry, and requires every question answered correctly.
func (r Rules) CompletionBadges(elapsed time.Duration, score, totalQuestions, completedSubjects int, timedOut bool) []domain.BadgeID {
	var ids []domain.BadgeID
	half := time.Duration(r.TimeLimitSeconds) * time.Second / 2
	if !timedOut && elapsed < half && totalQuestions > 0 && score == totalQuestions {
		ids = append(ids, domain.BadgeSpeed)
	}
	if completedSubjects >= r.DiversityTarget {
		ids = append(ids, domain.BadgeDiversity)
	}
	return ids
}
