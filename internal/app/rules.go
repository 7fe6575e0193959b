package app

import (
	"time"

	"quizwhiz-service/internal/domain"
)

// Rules bundles the tunable quiz mechanics. Defaults match the product values;
// the config layer may override the headline ones (time limit, quiz size).
type Rules struct {
	QuestionsPerQuiz      int
	TimeLimitSeconds      int
	XPPerCorrect          int
	XPPerCompletion       int
	EnergyMax             int
	EnergyCostPerAnswer   int
	EnergyRegenAmount     int
	EnergyRegenInterval   time.Duration
	ExtraTimeBonusSeconds int
	FiftyFiftyDisables    int
	StreakTarget          int
	DiversityTarget       int
}

func DefaultRules() Rules {
	return Rules{
		QuestionsPerQuiz:      10,
		TimeLimitSeconds:      180,
		XPPerCorrect:          10,
		XPPerCompletion:       20,
		EnergyMax:             100,
		EnergyCostPerAnswer:   2,
		EnergyRegenAmount:     5,
		EnergyRegenInterval:   10 * time.Minute,
		ExtraTimeBonusSeconds: 30,
		FiftyFiftyDisables:    2,
		StreakTarget:          5,
		DiversityTarget:       3,
	}
}

// RegenerateEnergy reconciles stored energy with wall-clock time. It credits
// EnergyRegenAmount per whole interval elapsed since LastRegen, capped at
// EnergyMax, and advances LastRegen by whole intervals only so partial-interval
// progress is never lost. Called lazily at read points, never from a background
// timer.
func (r Rules) RegenerateEnergy(st domain.EnergyState, now time.Time) domain.EnergyState {
	if st.LastRegen.IsZero() {
		st.LastRegen = now
		return st
	}
	elapsed := now.Sub(st.LastRegen)
	if elapsed < r.EnergyRegenInterval {
		return st
	}
	cycles := int(elapsed / r.EnergyRegenInterval)
	st.Value += cycles * r.EnergyRegenAmount
	if st.Value > r.EnergyMax {
		st.Value = r.EnergyMax
	}
	st.LastRegen = st.LastRegen.Add(time.Duration(cycles) * r.EnergyRegenInterval)
	return st
}
