package app

import (
	"sync"
	"time"

	"quizwhiz-service/internal/domain"
)

// Session holds the state of one quiz attempt. All fields behind mu are
// mutated only by SessionService methods while holding the lock, which is what
// serializes engine operations (user intents and timer ticks) per session.
type Session struct {
	id     string
	userID string
	key    domain.TopicKey
	title  string
	now    func() time.Time

	mu        sync.Mutex
	phase     domain.Phase
	questions []domain.Question
	index     int
	selected  string
	score     int
	timeLeft  int
	startedAt time.Time
	streak    int

	showFeedback bool
	lastCorrect  bool

	jokerAvailable map[domain.JokerKind]bool
	jokerUsed      map[domain.JokerKind]bool
	disabled       map[string]struct{}

	secondChanceActive   bool
	firstAttemptConsumed bool

	energy domain.EnergyState
	xp     int
	level  int

	subscribers map[chan domain.Event]struct{}

	stopTimer    chan struct{}
	timerStopped bool
}

func newSession(id, userID string, key domain.TopicKey, title string, now func() time.Time) *Session {
	return &Session{
		id:          id,
		userID:      userID,
		key:         key,
		title:       title,
		now:         now,
		subscribers: make(map[chan domain.Event]struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UserID returns the owning account.
func (s *Session) UserID() string { return s.userID }

// View returns a presentation snapshot of the session.
func (s *Session) View() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() domain.SessionView {
	view := domain.SessionView{
		SessionID:         s.id,
		UserID:            s.userID,
		Key:               s.key,
		Phase:             s.phase,
		Index:             s.index,
		TotalQuestions:    len(s.questions),
		SelectedAnswerID:  s.selected,
		Score:             s.score,
		TimeLeft:          s.timeLeft,
		ShowFeedback:      s.showFeedback,
		Energy:            s.energy.Value,
		XP:                s.xp,
		Level:             s.level,
		Jokers:            make(map[domain.JokerKind]domain.JokerView, 3),
		DisabledOptionIDs: make([]string, 0, len(s.disabled)),
		SecondChanceArmed: s.secondChanceActive,
	}
	for _, kind := range []domain.JokerKind{domain.JokerFiftyFifty, domain.JokerExtraTime, domain.JokerSecondChance} {
		view.Jokers[kind] = domain.JokerView{
			Available:       s.jokerAvailable[kind],
			UsedThisSession: s.jokerUsed[kind],
		}
	}
	for id := range s.disabled {
		view.DisabledOptionIDs = append(view.DisabledOptionIDs, id)
	}
	if s.phase == domain.PhaseActive && s.index < len(s.questions) {
		q := s.questions[s.index]
		view.Question = &q
		if s.showFeedback {
			view.CorrectAnswerID = q.CorrectAnswerID
			correct := s.lastCorrect
			view.LastAnswerCorrect = &correct
		}
	}
	return view
}

func (s *Session) currentQuestionLocked() (domain.Question, bool) {
	if s.phase != domain.PhaseActive || s.index >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

// Subscribe returns a channel of state snapshots and notifications for this
// session. The caller must invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.viewLocked()
	s.mu.Unlock()

	ch <- domain.Event{Kind: domain.EventState, View: &initial}

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) emitStateLocked() {
	view := s.viewLocked()
	s.emitLocked(domain.Event{Kind: domain.EventState, View: &view})
}

func (s *Session) emitNoticeLocked(notice domain.Notice) {
	n := notice
	s.emitLocked(domain.Event{Kind: domain.EventNotice, Notice: &n})
}

func (s *Session) emitLocked(event domain.Event) {
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Drop the oldest buffered event so a slow client never blocks the engine.
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}

func (s *Session) armTimerLocked() {
	s.stopTimer = make(chan struct{})
	s.timerStopped = false
}

func (s *Session) stopTimerLocked() {
	if s.stopTimer != nil && !s.timerStopped {
		s.timerStopped = true
		close(s.stopTimer)
	}
}
