package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizwhiz-service/internal/domain"
)

// SessionRepository abstracts how live sessions are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Remove(sessionID string)
}

// QuestionRepository serves the read-only question catalog, keyed by topic.
type QuestionRepository interface {
	Questions(ctx context.Context, key domain.TopicKey) ([]domain.Question, error)
}

// ProgressStore is the durable per-user document store: the stats summary
// updated by partial deltas and the joker availability flags merged per field.
type ProgressStore interface {
	Summary(ctx context.Context, userID string) (domain.ProgressSummary, error)
	ApplyDelta(ctx context.Context, userID string, delta domain.ProgressDelta) (domain.ProgressSummary, error)
	SetJokers(ctx context.Context, userID string, flags domain.JokerFlags) error
	SetJoker(ctx context.Context, userID string, kind domain.JokerKind, available bool) error
}

// AccountStore keeps the fast per-user cache: energy, unlocked badges, the
// first-correct flag, and the completed-subject set.
type AccountStore interface {
	Energy(ctx context.Context, userID string) (domain.EnergyState, bool, error)
	SaveEnergy(ctx context.Context, userID string, st domain.EnergyState) error
	UnlockBadge(ctx context.Context, userID string, id domain.BadgeID) (bool, error)
	Badges(ctx context.Context, userID string) ([]domain.BadgeID, error)
	HasFirstCorrect(ctx context.Context, userID string) (bool, error)
	MarkFirstCorrect(ctx context.Context, userID string) error
	AddCompletedSubject(ctx context.Context, userID, subject string) (int, error)
	CompletedSubjects(ctx context.Context, userID string) ([]string, error)
}

// SessionService owns the quiz session state machine: question sequence,
// countdown, scoring, energy economy, jokers, badge evaluation, and the
// incremental commits of XP and stat changes. Persistence failures degrade a
// session (in-memory state stays authoritative) but never fail it.
type SessionService struct {
	sessions SessionRepository
	catalog  QuestionRepository
	progress ProgressStore
	accounts AccountStore
	rules    Rules
	now      func() time.Time

	// runTimers is cleared by the test constructor so ticks are driven manually.
	runTimers bool

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewSessionService(sessions SessionRepository, catalog QuestionRepository, progress ProgressStore, accounts AccountStore, rules Rules) *SessionService {
	return &SessionService{
		sessions:  sessions,
		catalog:   catalog,
		progress:  progress,
		accounts:  accounts,
		rules:     rules,
		now:       time.Now,
		runTimers: true,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSessionServiceWithClock is test-only: deterministic timestamps and no
// background countdown goroutine, so tests call Tick themselves.
func NewSessionServiceWithClock(sessions SessionRepository, catalog QuestionRepository, progress ProgressStore, accounts AccountStore, rules Rules, now func() time.Time) *SessionService {
	svc := NewSessionService(sessions, catalog, progress, accounts, rules)
	svc.now = now
	svc.runTimers = false
	return svc
}

// Rules returns the mechanics the service was built with.
func (s *SessionService) Rules() Rules { return s.rules }

// StartSession creates a session for one (examType, subject, topic) attempt:
// jokers are force-reset to a full loadout, energy is reconciled, the matching
// questions are shuffled and truncated to the per-quiz cap, and the countdown
// starts. An empty question pool yields an Empty-phase session, not an error.
func (s *SessionService) StartSession(ctx context.Context, userID string, key domain.TopicKey) (*Session, error) {
	title := fmt.Sprintf("%s (%s)", key.Topic, key.ExamType)
	sess := newSession(uuid.NewString(), userID, key, title, s.now)

	sess.mu.Lock()
	err := s.initializeLocked(ctx, sess)
	active := sess.phase == domain.PhaseActive
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.sessions.Put(sess)
	if active && s.runTimers {
		go s.runCountdown(sess)
	}
	return sess, nil
}

// Restart re-runs session initialization in place: fresh joker grant,
// reshuffled questions, full timer. Effects already committed stay committed.
func (s *SessionService) Restart(ctx context.Context, sessionID string) (domain.SessionView, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.stopTimerLocked()
	if err := s.initializeLocked(ctx, sess); err != nil {
		sess.mu.Unlock()
		return domain.SessionView{}, err
	}
	active := sess.phase == domain.PhaseActive
	sess.emitStateLocked()
	view := sess.viewLocked()
	sess.mu.Unlock()

	if active && s.runTimers {
		go s.runCountdown(sess)
	}
	return view, nil
}

// Close tears a session down: the countdown is cancelled deterministically and
// the session is dropped from the repository. Committed effects are kept.
func (s *SessionService) Close(sessionID string) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.stopTimerLocked()
	sess.mu.Unlock()
	s.sessions.Remove(sessionID)
}

// Subscribe returns a channel of state snapshots and notifications for a
// session. The caller must invoke the cancel function to avoid leaks.
func (s *SessionService) Subscribe(sessionID string) (<-chan domain.Event, func(), error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := sess.Subscribe()
	return ch, cancel, nil
}

// View returns the current presentation snapshot.
func (s *SessionService) View(sessionID string) (domain.SessionView, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}
	return sess.View(), nil
}

// SelectAnswer records a tentative choice for the current question. No side
// effects and no persistence; rejected while feedback is shown.
func (s *SessionService) SelectAnswer(sessionID, optionID string) (domain.SessionView, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	question, ok := sess.currentQuestionLocked()
	if !ok {
		return sess.viewLocked(), domain.ErrSessionNotActive
	}
	if sess.showFeedback {
		return sess.viewLocked(), domain.ErrAnswerLocked
	}
	if _, hidden := sess.disabled[optionID]; hidden {
		return sess.viewLocked(), domain.ErrOptionDisabled
	}
	found := false
	for _, opt := range question.Options {
		if opt.ID == optionID {
			found = true
			break
		}
	}
	if !found {
		return sess.viewLocked(), domain.ErrOptionNotFound
	}

	sess.selected = optionID
	sess.emitStateLocked()
	return sess.viewLocked(), nil
}

// SubmitAnswer grades the selected option. Energy is reconciled lazily and
// debited unless this is the free retry granted by the double-answer joker.
// Every outcome that changes correctness counters issues exactly one
// incremental progress update and recomputes the level from cumulative XP.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID string) (domain.SessionView, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	question, ok := sess.currentQuestionLocked()
	if !ok {
		return sess.viewLocked(), domain.ErrSessionNotActive
	}
	if sess.showFeedback {
		return sess.viewLocked(), domain.ErrAnswerLocked
	}
	if sess.selected == "" {
		return sess.viewLocked(), domain.ErrNoSelection
	}

	sess.energy = s.rules.RegenerateEnergy(sess.energy, s.now())
	freeRetry := sess.secondChanceActive && sess.firstAttemptConsumed
	if sess.energy.Value < s.rules.EnergyCostPerAnswer && !freeRetry {
		s.saveEnergyLocked(ctx, sess)
		return sess.viewLocked(), domain.ErrInsufficientEnergy
	}
	if !freeRetry {
		sess.energy.Value -= s.rules.EnergyCostPerAnswer
	}
	s.saveEnergyLocked(ctx, sess)

	correct := sess.selected == question.CorrectAnswerID

	if sess.secondChanceActive && !sess.firstAttemptConsumed {
		sess.firstAttemptConsumed = true
		if correct {
			sess.secondChanceActive = false
			s.revealAnswerLocked(sess, true)
			s.commitDeltaLocked(ctx, sess, domain.ProgressDelta{XP: s.rules.XPPerCorrect, CorrectAnswers: 1}, "correct answer")
		} else {
			// Wrong first attempt under the joker: the question stays open for
			// one retry, but the wrong answer is still counted.
			sess.selected = ""
			s.commitDeltaLocked(ctx, sess, domain.ProgressDelta{WrongAnswers: 1}, "")
			sess.emitNoticeLocked(domain.Notice{Kind: domain.NoticeSecondChance})
		}
		sess.emitStateLocked()
		return sess.viewLocked(), nil
	}

	if sess.secondChanceActive {
		// Second and final attempt of the armed cycle.
		sess.secondChanceActive = false
		s.revealAnswerLocked(sess, correct)
		if correct {
			s.commitDeltaLocked(ctx, sess, domain.ProgressDelta{XP: s.rules.XPPerCorrect, CorrectAnswers: 1}, "correct answer (second chance)")
		} else {
			s.commitDeltaLocked(ctx, sess, domain.ProgressDelta{WrongAnswers: 1}, "")
		}
		sess.emitStateLocked()
		return sess.viewLocked(), nil
	}

	s.revealAnswerLocked(sess, correct)
	if correct {
		sess.streak++
		s.commitDeltaLocked(ctx, sess, domain.ProgressDelta{XP: s.rules.XPPerCorrect, CorrectAnswers: 1}, "correct answer")
		s.evaluateAnswerBadgesLocked(ctx, sess)
	} else {
		sess.streak = 0
		s.commitDeltaLocked(ctx, sess, domain.ProgressDelta{WrongAnswers: 1}, "")
	}
	sess.emitStateLocked()
	return sess.viewLocked(), nil
}

// NextQuestion dismisses the feedback and advances, or finishes the session
// after the last question: completion bonus, total-tests increment, last-quiz
// metadata, and the finish-time badge evaluation.
func (s *SessionService) NextQuestion(ctx context.Context, sessionID string) (domain.SessionView, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.phase != domain.PhaseActive {
		return sess.viewLocked(), domain.ErrSessionNotActive
	}
	if !sess.showFeedback {
		return sess.viewLocked(), domain.ErrQuestionPending
	}

	sess.showFeedback = false
	sess.selected = ""
	sess.disabled = make(map[string]struct{})
	sess.secondChanceActive = false
	sess.firstAttemptConsumed = false

	sess.energy = s.rules.RegenerateEnergy(sess.energy, s.now())
	s.saveEnergyLocked(ctx, sess)

	if sess.index < len(sess.questions)-1 {
		sess.index++
		sess.emitStateLocked()
		return sess.viewLocked(), nil
	}

	s.finishLocked(ctx, sess, false)
	return sess.viewLocked(), nil
}

// UseJoker consumes one of the three power-ups. Jokers are usable once per
// session, only while no feedback is shown; consumption is persisted
// immediately, best-effort.
func (s *SessionService) UseJoker(ctx context.Context, sessionID string, kind domain.JokerKind) (domain.SessionView, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	question, active := sess.currentQuestionLocked()
	if !active {
		return sess.viewLocked(), domain.ErrSessionNotActive
	}
	if sess.showFeedback {
		return sess.viewLocked(), domain.ErrAnswerLocked
	}
	if !sess.jokerAvailable[kind] || sess.jokerUsed[kind] {
		return sess.viewLocked(), domain.ErrJokerUnavailable
	}
	if kind == domain.JokerSecondChance && sess.secondChanceActive {
		return sess.viewLocked(), domain.ErrJokerUnavailable
	}

	switch kind {
	case domain.JokerFiftyFifty:
		incorrect := make([]string, 0, len(question.Options))
		for _, opt := range question.Options {
			if opt.ID != question.CorrectAnswerID {
				incorrect = append(incorrect, opt.ID)
			}
		}
		s.rndMu.Lock()
		s.rnd.Shuffle(len(incorrect), func(i, j int) {
			incorrect[i], incorrect[j] = incorrect[j], incorrect[i]
		})
		s.rndMu.Unlock()
		n := s.rules.FiftyFiftyDisables
		if n > len(incorrect) {
			n = len(incorrect)
		}
		for _, id := range incorrect[:n] {
			sess.disabled[id] = struct{}{}
			if sess.selected == id {
				sess.selected = ""
			}
		}
	case domain.JokerExtraTime:
		sess.timeLeft += s.rules.ExtraTimeBonusSeconds
	case domain.JokerSecondChance:
		sess.secondChanceActive = true
		sess.firstAttemptConsumed = false
	default:
		return sess.viewLocked(), domain.ErrJokerUnavailable
	}

	sess.jokerUsed[kind] = true
	sess.jokerAvailable[kind] = false
	if err := s.progress.SetJoker(ctx, sess.userID, kind, false); err != nil {
		log.Printf("joker %s consumption not persisted for user %s: %v", kind, sess.userID, err)
	}

	sess.emitNoticeLocked(domain.Notice{Kind: domain.NoticeJokerUsed, Joker: kind})
	sess.emitStateLocked()
	return sess.viewLocked(), nil
}

// Tick applies one countdown second. Normally driven by the session's own
// ticker goroutine; exposed so tests can advance time deterministically.
func (s *SessionService) Tick(sessionID string) error {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.tick(sess)
	return nil
}

// tick reports whether the countdown should stop.
func (s *SessionService) tick(sess *Session) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.phase != domain.PhaseActive {
		return true
	}
	if sess.timeLeft > 0 {
		sess.timeLeft--
	}
	if sess.timeLeft <= 0 {
		s.finishLocked(context.Background(), sess, true)
		return true
	}
	sess.emitStateLocked()
	return false
}

// runCountdown is the scheduled callback owned by the session's lifetime; it
// exits when the session finishes or is torn down.
func (s *SessionService) runCountdown(sess *Session) {
	sess.mu.Lock()
	stop := sess.stopTimer
	sess.mu.Unlock()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.tick(sess) {
				return
			}
		}
	}
}

func (s *SessionService) initializeLocked(ctx context.Context, sess *Session) error {
	// A new session always grants the full joker loadout, regardless of what
	// the store says. The merge-write is best-effort.
	if err := s.progress.SetJokers(ctx, sess.userID, domain.AllJokersAvailable()); err != nil {
		log.Printf("joker reset not persisted for user %s, session proceeds: %v", sess.userID, err)
	}
	sess.jokerAvailable = map[domain.JokerKind]bool{
		domain.JokerFiftyFifty:   true,
		domain.JokerExtraTime:    true,
		domain.JokerSecondChance: true,
	}
	sess.jokerUsed = map[domain.JokerKind]bool{}

	if summary, err := s.progress.Summary(ctx, sess.userID); err != nil {
		log.Printf("stats summary unavailable for user %s: %v", sess.userID, err)
		sess.xp = 0
	} else {
		sess.xp = summary.XP
	}
	sess.level = domain.LevelForXP(sess.xp)

	now := s.now()
	st, found, err := s.accounts.Energy(ctx, sess.userID)
	if err != nil {
		log.Printf("energy read failed for user %s: %v", sess.userID, err)
		found = false
	}
	if !found {
		st = domain.EnergyState{Value: s.rules.EnergyMax, LastRegen: now}
	}
	sess.energy = s.rules.RegenerateEnergy(st, now)
	s.saveEnergyLocked(ctx, sess)

	pool, err := s.catalog.Questions(ctx, sess.key)
	if err != nil {
		return fmt.Errorf("load questions for %s/%s/%s: %w", sess.key.ExamType, sess.key.Subject, sess.key.Topic, err)
	}

	sess.questions = s.drawQuestions(pool)
	sess.index = 0
	sess.score = 0
	sess.selected = ""
	sess.showFeedback = false
	sess.streak = 0
	sess.disabled = make(map[string]struct{})
	sess.secondChanceActive = false
	sess.firstAttemptConsumed = false
	sess.timeLeft = s.rules.TimeLimitSeconds
	sess.startedAt = now

	if len(sess.questions) == 0 {
		sess.phase = domain.PhaseEmpty
		return nil
	}
	sess.phase = domain.PhaseActive
	sess.armTimerLocked()
	return nil
}

// drawQuestions uniformly permutes the pool (Fisher-Yates) and truncates to
// the per-quiz cap.
func (s *SessionService) drawQuestions(pool []domain.Question) []domain.Question {
	picked := make([]domain.Question, len(pool))
	copy(picked, pool)

	s.rndMu.Lock()
	for i := len(picked) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		picked[i], picked[j] = picked[j], picked[i]
	}
	s.rndMu.Unlock()

	if len(picked) > s.rules.QuestionsPerQuiz {
		picked = picked[:s.rules.QuestionsPerQuiz]
	}
	return picked
}

func (s *SessionService) revealAnswerLocked(sess *Session, correct bool) {
	sess.showFeedback = true
	sess.lastCorrect = correct
	if correct {
		sess.score++
	}
}

// commitDeltaLocked issues one incremental progress update, reconciles the
// session's XP snapshot, recomputes the level, and emits the XP and level-up
// notices. On store failure the delta is applied to the in-memory snapshot,
// which stays authoritative for the rest of the session.
func (s *SessionService) commitDeltaLocked(ctx context.Context, sess *Session, delta domain.ProgressDelta, xpReason string) {
	oldLevel := sess.level

	if summary, err := s.progress.ApplyDelta(ctx, sess.userID, delta); err != nil {
		log.Printf("progress update not persisted for user %s: %v", sess.userID, err)
		sess.xp += delta.XP
	} else {
		sess.xp = summary.XP
	}
	sess.level = domain.LevelForXP(sess.xp)

	if delta.XP > 0 && xpReason != "" {
		sess.emitNoticeLocked(domain.Notice{Kind: domain.NoticeXPGained, XP: delta.XP, Reason: xpReason})
	}
	if sess.level > oldLevel {
		sess.emitNoticeLocked(domain.Notice{Kind: domain.NoticeLevelUp, Level: sess.level})
	}
}

func (s *SessionService) evaluateAnswerBadgesLocked(ctx context.Context, sess *Session) {
	hasFirst, err := s.accounts.HasFirstCorrect(ctx, sess.userID)
	if err != nil {
		log.Printf("first-correct flag read failed for user %s: %v", sess.userID, err)
		hasFirst = true
	}
	ids := s.rules.AnswerBadges(hasFirst, sess.streak)
	if !hasFirst {
		if err := s.accounts.MarkFirstCorrect(ctx, sess.userID); err != nil {
			log.Printf("first-correct flag not persisted for user %s: %v", sess.userID, err)
		}
	}
	s.unlockBadgesLocked(ctx, sess, ids)
}

func (s *SessionService) unlockBadgesLocked(ctx context.Context, sess *Session, ids []domain.BadgeID) {
	for _, id := range ids {
		newly, err := s.accounts.UnlockBadge(ctx, sess.userID, id)
		if err != nil {
			log.Printf("badge %s not persisted for user %s: %v", id, sess.userID, err)
			continue
		}
		if !newly {
			continue
		}
		if badge, ok := BadgeByID(id); ok {
			sess.emitNoticeLocked(domain.Notice{Kind: domain.NoticeBadge, Badge: &badge})
		}
	}
}

// finishLocked is the single terminal transition; the phase guard in tick and
// the feedback guard in NextQuestion make the two finish paths mutually
// exclusive.
func (s *SessionService) finishLocked(ctx context.Context, sess *Session, timedOut bool) {
	sess.phase = domain.PhaseFinished
	sess.stopTimerLocked()
	now := s.now()

	s.commitDeltaLocked(ctx, sess, domain.ProgressDelta{
		XP:            s.rules.XPPerCompletion,
		TotalTests:    1,
		LastQuizTitle: sess.title,
		LastQuizDate:  now,
	}, "quiz completion bonus")

	completed, err := s.accounts.AddCompletedSubject(ctx, sess.userID, sess.key.Subject)
	if err != nil {
		log.Printf("completed subject not persisted for user %s: %v", sess.userID, err)
		completed = 0
	}

	ids := s.rules.CompletionBadges(now.Sub(sess.startedAt), sess.score, len(sess.questions), completed, timedOut)
	s.unlockBadgesLocked(ctx, sess, ids)

	if timedOut {
		sess.emitNoticeLocked(domain.Notice{Kind: domain.NoticeTimeExpired})
	}
	sess.emitStateLocked()
}

func (s *SessionService) saveEnergyLocked(ctx context.Context, sess *Session) {
	if err := s.accounts.SaveEnergy(ctx, sess.userID, sess.energy); err != nil {
		log.Printf("energy not persisted for user %s: %v", sess.userID, err)
	}
}
