package app_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"quizwhiz-service/internal/app"
	"quizwhiz-service/internal/domain"
	"quizwhiz-service/internal/infra/memory"
)

var mathKey = domain.TopicKey{ExamType: "tyt", Subject: "math", Topic: "algebra"}

func TestPerfectRunAwardsScoreEnergyAndXP(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(10, mathKey))

	sess := env.start(ctx, "u1", mathKey)
	for i := 0; i < 10; i++ {
		env.answerCorrectly(sess.ID())
		env.next(sess.ID())
	}

	view := env.view(sess.ID())
	if view.Phase != domain.PhaseFinished {
		t.Fatalf("expected finished phase, got %s", view.Phase)
	}
	if view.Score != 10 {
		t.Fatalf("expected score 10, got %d", view.Score)
	}
	if view.Energy != 80 {
		t.Fatalf("expected 100 - 10*2 = 80 energy, got %d", view.Energy)
	}
	if view.XP != 120 {
		t.Fatalf("expected 10*10 + 20 = 120 XP, got %d", view.XP)
	}
	if view.Level != 1 {
		t.Fatalf("expected level 1 at 120 XP, got %d", view.Level)
	}

	summary, _ := env.progress.Summary(ctx, "u1")
	if summary.TotalTests != 1 || summary.CorrectAnswers != 10 || summary.WrongAnswers != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.LastQuizTitle == "" || summary.LastQuizDate.IsZero() {
		t.Fatalf("finish must record last-quiz metadata, got %+v", summary)
	}

	env.requireBadges(ctx, "u1", domain.BadgeFirstCorrect, domain.BadgeStreak, domain.BadgeSpeed)
}

func TestTimeoutFinishesExactlyOnce(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(10, mathKey))

	sess := env.start(ctx, "u1", mathKey)
	env.answerCorrectly(sess.ID())
	env.next(sess.ID())

	// Run the countdown to zero, then keep ticking past it.
	for i := 0; i < 200; i++ {
		if err := env.service.Tick(sess.ID()); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}

	view := env.view(sess.ID())
	if view.Phase != domain.PhaseFinished {
		t.Fatalf("expected finished after timeout, got %s", view.Phase)
	}
	if view.TimeLeft != 0 {
		t.Fatalf("expected timeLeft 0, got %d", view.TimeLeft)
	}

	summary, _ := env.progress.Summary(ctx, "u1")
	if summary.TotalTests != 1 {
		t.Fatalf("timeout must finish exactly once, totalTests=%d", summary.TotalTests)
	}
	if summary.XP != 30 {
		t.Fatalf("expected 10 + 20 completion XP, got %d", summary.XP)
	}

	badges, _ := env.accounts.Badges(ctx, "u1")
	for _, id := range badges {
		if id == domain.BadgeSpeed {
			t.Fatalf("timer expiry must never award the speed badge")
		}
	}
}

func TestDrawIsPermutationOfPool(t *testing.T) {
	ctx := context.Background()
	pool := questionBank(25, mathKey)
	env := newEnv(t, pool)

	poolIDs := make(map[string]struct{}, len(pool))
	for _, q := range pool {
		poolIDs[q.ID] = struct{}{}
	}

	sess := env.start(ctx, "u1", mathKey)
	view := env.view(sess.ID())
	if view.TotalQuestions != 10 {
		t.Fatalf("expected draw truncated to 10, got %d", view.TotalQuestions)
	}

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		view := env.view(sess.ID())
		if view.Question == nil {
			t.Fatalf("question %d missing", i)
		}
		if _, ok := poolIDs[view.Question.ID]; !ok {
			t.Fatalf("question %s not from the pool", view.Question.ID)
		}
		if _, dup := seen[view.Question.ID]; dup {
			t.Fatalf("question %s drawn twice", view.Question.ID)
		}
		seen[view.Question.ID] = struct{}{}
		env.answerCorrectly(sess.ID())
		env.next(sess.ID())
	}
}

func TestSubmitWithoutSelection(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))

	sess := env.start(ctx, "u1", mathKey)
	if _, err := env.service.SubmitAnswer(ctx, sess.ID()); err != domain.ErrNoSelection {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if view := env.view(sess.ID()); view.Energy != 100 || view.ShowFeedback {
		t.Fatalf("rejected submit must not mutate state: %+v", view)
	}
}

func TestSelectAnswerGuards(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	if _, err := env.service.SelectAnswer(sess.ID(), "bogus"); err != domain.ErrOptionNotFound {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}

	env.answerCorrectly(sess.ID())
	view := env.view(sess.ID())
	if _, err := env.service.SelectAnswer(sess.ID(), view.Question.Options[0].ID); err != domain.ErrAnswerLocked {
		t.Fatalf("selection during feedback must fail, got %v", err)
	}
	if _, err := env.service.SubmitAnswer(ctx, sess.ID()); err != domain.ErrAnswerLocked {
		t.Fatalf("double submit must fail, got %v", err)
	}
}

func TestNextRequiresFeedback(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	if _, err := env.service.NextQuestion(ctx, sess.ID()); err != domain.ErrQuestionPending {
		t.Fatalf("expected ErrQuestionPending, got %v", err)
	}
}

func TestInsufficientEnergyBlocksSubmission(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	if err := env.accounts.SaveEnergy(ctx, "u1", domain.EnergyState{Value: 1, LastRegen: env.clock.Now()}); err != nil {
		t.Fatalf("seed energy: %v", err)
	}

	sess := env.start(ctx, "u1", mathKey)
	view := env.view(sess.ID())
	env.selectOption(sess.ID(), view.Question.CorrectAnswerID)
	if _, err := env.service.SubmitAnswer(ctx, sess.ID()); err != domain.ErrInsufficientEnergy {
		t.Fatalf("expected ErrInsufficientEnergy, got %v", err)
	}

	view = env.view(sess.ID())
	if view.Energy != 1 || view.ShowFeedback || view.Score != 0 {
		t.Fatalf("rejected submit must not grade: %+v", view)
	}
	summary, _ := env.progress.Summary(ctx, "u1")
	if summary.CorrectAnswers != 0 || summary.WrongAnswers != 0 {
		t.Fatalf("rejected submit must not count: %+v", summary)
	}
}

func TestEnergyRegeneratesBetweenSubmissions(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	if err := env.accounts.SaveEnergy(ctx, "u1", domain.EnergyState{Value: 10, LastRegen: env.clock.Now()}); err != nil {
		t.Fatalf("seed energy: %v", err)
	}

	sess := env.start(ctx, "u1", mathKey)
	env.answerCorrectly(sess.ID())
	if view := env.view(sess.ID()); view.Energy != 8 {
		t.Fatalf("expected 10-2=8 energy, got %d", view.Energy)
	}
	env.next(sess.ID())

	env.clock.Advance(25 * time.Minute) // two whole regen cycles
	env.answerCorrectly(sess.ID())
	if view := env.view(sess.ID()); view.Energy != 16 {
		t.Fatalf("expected 8 + 2*5 - 2 = 16 energy, got %d", view.Energy)
	}
}

func TestSecondChanceGrantsExactlyOneRetry(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	if _, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerSecondChance); err != nil {
		t.Fatalf("use joker: %v", err)
	}

	// First wrong attempt: no feedback, selection cleared, wrong answer counted.
	env.answerWrongly(sess.ID())
	view := env.view(sess.ID())
	if view.ShowFeedback {
		t.Fatalf("first wrong attempt under the joker must not reveal feedback")
	}
	if view.SelectedAnswerID != "" {
		t.Fatalf("selection must be cleared for the retry, got %q", view.SelectedAnswerID)
	}
	if view.Energy != 98 {
		t.Fatalf("first attempt costs energy, got %d", view.Energy)
	}
	summary, _ := env.progress.Summary(ctx, "u1")
	if summary.WrongAnswers != 1 {
		t.Fatalf("first wrong attempt must count, got %+v", summary)
	}

	// Second wrong attempt: free, final, feedback revealed.
	env.answerWrongly(sess.ID())
	view = env.view(sess.ID())
	if !view.ShowFeedback || view.LastAnswerCorrect == nil || *view.LastAnswerCorrect {
		t.Fatalf("second attempt must reveal wrong feedback: %+v", view)
	}
	if view.Energy != 98 {
		t.Fatalf("retry must be free, got %d", view.Energy)
	}
	summary, _ = env.progress.Summary(ctx, "u1")
	if summary.WrongAnswers != 2 {
		t.Fatalf("both wrong attempts count, got %+v", summary)
	}

	if _, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerSecondChance); err != domain.ErrJokerUnavailable {
		t.Fatalf("joker must be single-use, got %v", err)
	}
}

func TestSecondChanceRetryCanSucceed(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	if _, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerSecondChance); err != nil {
		t.Fatalf("use joker: %v", err)
	}
	env.answerWrongly(sess.ID())
	env.answerCorrectly(sess.ID())

	view := env.view(sess.ID())
	if !view.ShowFeedback || view.LastAnswerCorrect == nil || !*view.LastAnswerCorrect {
		t.Fatalf("retry success must reveal correct feedback: %+v", view)
	}
	if view.Score != 1 {
		t.Fatalf("expected score 1, got %d", view.Score)
	}
	summary, _ := env.progress.Summary(ctx, "u1")
	if summary.CorrectAnswers != 1 || summary.WrongAnswers != 1 || summary.XP != 10 {
		t.Fatalf("unexpected summary after retry: %+v", summary)
	}
}

func TestSecondChanceFirstAttemptCorrect(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	if _, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerSecondChance); err != nil {
		t.Fatalf("use joker: %v", err)
	}
	env.answerCorrectly(sess.ID())

	view := env.view(sess.ID())
	if !view.ShowFeedback || view.Score != 1 || view.SecondChanceArmed {
		t.Fatalf("correct first attempt ends the cycle immediately: %+v", view)
	}
}

func TestFiftyFiftyNeverDisablesTheCorrectOption(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	view, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerFiftyFifty)
	if err != nil {
		t.Fatalf("use joker: %v", err)
	}
	if len(view.DisabledOptionIDs) != 2 {
		t.Fatalf("expected exactly 2 disabled options, got %v", view.DisabledOptionIDs)
	}
	for _, id := range view.DisabledOptionIDs {
		if id == view.Question.CorrectAnswerID {
			t.Fatalf("correct option must never be disabled")
		}
		if _, err := env.service.SelectAnswer(sess.ID(), id); err != domain.ErrOptionDisabled {
			t.Fatalf("disabled option must be unselectable, got %v", err)
		}
	}
	if view.SelectedAnswerID != "" {
		for _, id := range view.DisabledOptionIDs {
			if id == view.SelectedAnswerID {
				t.Fatalf("a disabled selection must be cleared")
			}
		}
	}

	if !env.progress.Jokers("u1").ExtraTime || env.progress.Jokers("u1").FiftyFifty {
		t.Fatalf("only the used joker is persisted as consumed: %+v", env.progress.Jokers("u1"))
	}
	if _, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerFiftyFifty); err != domain.ErrJokerUnavailable {
		t.Fatalf("joker must be single-use, got %v", err)
	}
}

func TestExtraTimeJokerExtendsCountdown(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	view, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerExtraTime)
	if err != nil {
		t.Fatalf("use joker: %v", err)
	}
	if view.TimeLeft != 210 {
		t.Fatalf("expected 180+30 seconds, got %d", view.TimeLeft)
	}
}

func TestJokerRejectedDuringFeedback(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	env.answerCorrectly(sess.ID())
	if _, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerFiftyFifty); err != domain.ErrAnswerLocked {
		t.Fatalf("joker during feedback must fail, got %v", err)
	}
}

func TestLevelUpNotice(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	if _, err := env.progress.ApplyDelta(ctx, "u1", domain.ProgressDelta{XP: 240}); err != nil {
		t.Fatalf("seed xp: %v", err)
	}

	sess := env.start(ctx, "u1", mathKey)
	events, cancel, err := env.service.Subscribe(sess.ID())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	env.answerCorrectly(sess.ID())

	view := env.view(sess.ID())
	if view.XP != 250 || view.Level != 2 {
		t.Fatalf("expected XP 250 level 2, got XP=%d level=%d", view.XP, view.Level)
	}

	var sawXP, sawLevelUp bool
	for drained := false; !drained; {
		select {
		case event := <-events:
			if event.Kind != domain.EventNotice || event.Notice == nil {
				continue
			}
			switch event.Notice.Kind {
			case domain.NoticeXPGained:
				sawXP = true
			case domain.NoticeLevelUp:
				if event.Notice.Level != 2 {
					t.Fatalf("level-up notice carries level 2, got %d", event.Notice.Level)
				}
				sawLevelUp = true
			}
		default:
			drained = true
		}
	}
	if !sawXP || !sawLevelUp {
		t.Fatalf("expected xpGained and levelUp notices, got xp=%v levelUp=%v", sawXP, sawLevelUp)
	}
}

func TestStreakBadgeAtFiveConsecutive(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(10, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	// A wrong answer resets the streak, so the fifth correct after it counts
	// from one.
	env.answerWrongly(sess.ID())
	env.next(sess.ID())
	for i := 0; i < 4; i++ {
		env.answerCorrectly(sess.ID())
		env.next(sess.ID())
		env.requireNoBadge(ctx, "u1", domain.BadgeStreak)
	}
	env.answerCorrectly(sess.ID())
	env.requireBadges(ctx, "u1", domain.BadgeStreak)
}

func TestDiversityBadgeOnThirdSubject(t *testing.T) {
	ctx := context.Background()
	keys := []domain.TopicKey{
		{ExamType: "tyt", Subject: "math", Topic: "algebra"},
		{ExamType: "tyt", Subject: "geography", Topic: "climate"},
		{ExamType: "tyt", Subject: "history", Topic: "republic"},
	}
	var bank []domain.Question
	for _, key := range keys {
		bank = append(bank, questionBank(1, key)...)
	}
	env := newEnv(t, bank)

	for i, key := range keys {
		sess := env.start(ctx, "u1", key)
		env.answerCorrectly(sess.ID())
		env.next(sess.ID())
		if view := env.view(sess.ID()); view.Phase != domain.PhaseFinished {
			t.Fatalf("quiz %d should be finished, got %s", i, view.Phase)
		}
		if i < 2 {
			env.requireNoBadge(ctx, "u1", domain.BadgeDiversity)
		}
		env.service.Close(sess.ID())
	}
	env.requireBadges(ctx, "u1", domain.BadgeDiversity)
}

func TestEmptyPoolYieldsEmptyPhase(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))

	sess := env.start(ctx, "u1", domain.TopicKey{ExamType: "tyt", Subject: "math", Topic: "unknown"})
	view := env.view(sess.ID())
	if view.Phase != domain.PhaseEmpty {
		t.Fatalf("expected empty phase, got %s", view.Phase)
	}
	if view.TotalQuestions != 0 || view.Question != nil {
		t.Fatalf("empty session must carry no questions: %+v", view)
	}
	if _, err := env.service.SubmitAnswer(ctx, sess.ID()); err != domain.ErrSessionNotActive {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
}

func TestRestartResetsSessionState(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(5, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	if _, err := env.service.UseJoker(ctx, sess.ID(), domain.JokerExtraTime); err != nil {
		t.Fatalf("use joker: %v", err)
	}
	env.answerCorrectly(sess.ID())
	env.next(sess.ID())

	view, err := env.service.Restart(ctx, sess.ID())
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if view.Index != 0 || view.Score != 0 || view.ShowFeedback {
		t.Fatalf("restart must reset progress: %+v", view)
	}
	if view.TimeLeft != 180 {
		t.Fatalf("restart must rearm the full timer, got %d", view.TimeLeft)
	}
	for kind, joker := range view.Jokers {
		if !joker.Available || joker.UsedThisSession {
			t.Fatalf("restart must regrant joker %s: %+v", kind, joker)
		}
	}
	// Committed effects survive the restart.
	if view.XP != 10 {
		t.Fatalf("earned XP must survive restart, got %d", view.XP)
	}
	if view.Energy != 98 {
		t.Fatalf("spent energy must survive restart, got %d", view.Energy)
	}
}

func TestCloseRemovesSession(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))
	sess := env.start(ctx, "u1", mathKey)

	env.service.Close(sess.ID())
	if _, err := env.service.View(sess.ID()); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after close, got %v", err)
	}
}

func TestOperationsOnUnknownSession(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t, questionBank(3, mathKey))

	if _, err := env.service.SubmitAnswer(ctx, "nope"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := env.service.SelectAnswer("nope", "a"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, _, err := env.service.Subscribe("nope"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

// ---- test environment ----

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type env struct {
	t        *testing.T
	service  *app.SessionService
	progress *memory.ProgressStore
	accounts *memory.AccountStore
	clock    *fakeClock
}

func newEnv(t *testing.T, bank []domain.Question) *env {
	t.Helper()
	clock := newFakeClock()
	progress := memory.NewProgressStore()
	accounts := memory.NewAccountStore()
	catalog := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(bank), time.Minute)
	service := app.NewSessionServiceWithClock(
		memory.NewSessionStore(), catalog, progress, accounts, app.DefaultRules(), clock.Now,
	)
	return &env{t: t, service: service, progress: progress, accounts: accounts, clock: clock}
}

func (e *env) start(ctx context.Context, userID string, key domain.TopicKey) *app.Session {
	e.t.Helper()
	sess, err := e.service.StartSession(ctx, userID, key)
	if err != nil {
		e.t.Fatalf("start session: %v", err)
	}
	return sess
}

func (e *env) view(sessionID string) domain.SessionView {
	e.t.Helper()
	view, err := e.service.View(sessionID)
	if err != nil {
		e.t.Fatalf("view: %v", err)
	}
	return view
}

func (e *env) selectOption(sessionID, optionID string) {
	e.t.Helper()
	if _, err := e.service.SelectAnswer(sessionID, optionID); err != nil {
		e.t.Fatalf("select %s: %v", optionID, err)
	}
}

func (e *env) answerCorrectly(sessionID string) {
	e.t.Helper()
	view := e.view(sessionID)
	if view.Question == nil {
		e.t.Fatalf("no current question")
	}
	e.selectOption(sessionID, view.Question.CorrectAnswerID)
	if _, err := e.service.SubmitAnswer(context.Background(), sessionID); err != nil {
		e.t.Fatalf("submit: %v", err)
	}
}

func (e *env) answerWrongly(sessionID string) {
	e.t.Helper()
	view := e.view(sessionID)
	if view.Question == nil {
		e.t.Fatalf("no current question")
	}
	disabled := make(map[string]struct{}, len(view.DisabledOptionIDs))
	for _, id := range view.DisabledOptionIDs {
		disabled[id] = struct{}{}
	}
	var wrong string
	for _, opt := range view.Question.Options {
		if _, off := disabled[opt.ID]; off {
			continue
		}
		if opt.ID != view.Question.CorrectAnswerID {
			wrong = opt.ID
			break
		}
	}
	if wrong == "" {
		e.t.Fatalf("no selectable wrong option")
	}
	e.selectOption(sessionID, wrong)
	if _, err := e.service.SubmitAnswer(context.Background(), sessionID); err != nil {
		e.t.Fatalf("submit: %v", err)
	}
}

func (e *env) next(sessionID string) {
	e.t.Helper()
	if _, err := e.service.NextQuestion(context.Background(), sessionID); err != nil {
		e.t.Fatalf("next: %v", err)
	}
}

func (e *env) requireBadges(ctx context.Context, userID string, want ...domain.BadgeID) {
	e.t.Helper()
	unlocked, err := e.accounts.Badges(ctx, userID)
	if err != nil {
		e.t.Fatalf("badges: %v", err)
	}
	have := make(map[domain.BadgeID]struct{}, len(unlocked))
	for _, id := range unlocked {
		have[id] = struct{}{}
	}
	for _, id := range want {
		if _, ok := have[id]; !ok {
			e.t.Fatalf("badge %s not unlocked, have %v", id, unlocked)
		}
	}
}

func (e *env) requireNoBadge(ctx context.Context, userID string, id domain.BadgeID) {
	e.t.Helper()
	unlocked, err := e.accounts.Badges(ctx, userID)
	if err != nil {
		e.t.Fatalf("badges: %v", err)
	}
	for _, got := range unlocked {
		if got == id {
			e.t.Fatalf("badge %s unlocked too early", id)
		}
	}
}

func questionBank(n int, key domain.TopicKey) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, domain.Question{
			ID:   fmt.Sprintf("%s-%s-q%d", key.Subject, key.Topic, i),
			Text: fmt.Sprintf("Question %d", i),
			Options: []domain.Option{
				{ID: "o1", Text: "Option 1"},
				{ID: "o2", Text: "Option 2"},
				{ID: "o3", Text: "Option 3"},
				{ID: "o4", Text: "Option 4"},
			},
			CorrectAnswerID: "o3",
			ExamType:        key.ExamType,
			Subject:         key.Subject,
			Topic:           key.Topic,
		})
	}
	return questions
}
