package domain

import "time"

// Option represents a possible answer for a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question models an MCQ question. CorrectAnswerID matches exactly one option.
type Question struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Options         []Option `json:"options"`
	CorrectAnswerID string   `json:"correctAnswerId"`
	ExamType        string   `json:"examType"`
	Subject         string   `json:"subject"`
	Topic           string   `json:"topic"`
}

// TopicKey identifies a question pool: one topic of one subject of one exam type.
type TopicKey struct {
	ExamType string `json:"examType"`
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
}

// ProgressSummary is the durable per-user stats document.
type ProgressSummary struct {
	TotalTests     int       `json:"totalTests"`
	CorrectAnswers int       `json:"correctAnswers"`
	WrongAnswers   int       `json:"wrongAnswers"`
	XP             int       `json:"xp"`
	Level          int       `json:"level"`
	LastQuizTitle  string    `json:"lastQuizTitle"`
	LastQuizDate   time.Time `json:"lastQuizDate"`
}

// ProgressDelta is a partial merge-update of a ProgressSummary. Zero-valued
// counters mean "no change"; an empty LastQuizTitle leaves the stored one.
type ProgressDelta struct {
	TotalTests     int
	CorrectAnswers int
	WrongAnswers   int
	XP             int
	LastQuizTitle  string
	LastQuizDate   time.Time
}

// JokerKind names the three power-ups.
type JokerKind string

const (
	JokerFiftyFifty   JokerKind = "fiftyFifty"
	JokerExtraTime    JokerKind = "extraTime"
	JokerSecondChance JokerKind = "secondChance"
)

// JokerFlags holds the persisted availability of each joker.
type JokerFlags struct {
	FiftyFifty   bool `json:"fiftyFifty"`
	ExtraTime    bool `json:"extraTime"`
	SecondChance bool `json:"secondChance"`
}

// AllJokersAvailable is the loadout granted at the start of every session.
func AllJokersAvailable() JokerFlags {
	return JokerFlags{FiftyFifty: true, ExtraTime: true, SecondChance: true}
}

// EnergyState is the regenerating answer-submission budget of one account.
type EnergyState struct {
	Value     int       `json:"value"`
	LastRegen time.Time `json:"lastRegen"`
}

// XPPerLevel is the fixed size of one level band.
const XPPerLevel = 250

// LevelForXP derives the level from cumulative XP. Level is never stored
// authoritatively; it is recomputed whenever XP changes.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// BadgeID identifies an unlockable achievement.
type BadgeID string

const (
	BadgeFirstCorrect BadgeID = "first-correct"
	BadgeStreak       BadgeID = "streak"
	BadgeSpeed        BadgeID = "speed"
	BadgeDiversity    BadgeID = "diversity"
)

// Badge is a persistent achievement definition.
type Badge struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// Phase is the explicit session lifecycle state. Invalid flag combinations
// (finished mid-question, answering an empty pool) cannot be expressed.
type Phase string

const (
	// PhaseActive means questions are loaded and the countdown is running.
	PhaseActive Phase = "active"
	// PhaseEmpty means no questions matched the topic. Terminal, not an error.
	PhaseEmpty Phase = "empty"
	// PhaseFinished means the last feedback was dismissed or time expired.
	PhaseFinished Phase = "finished"
)

// JokerView reports one joker's state to the presentation layer.
type JokerView struct {
	Available       bool `json:"available"`
	UsedThisSession bool `json:"usedThisSession"`
}

// SessionView is the engine-to-presentation snapshot of a quiz session.
// The correct answer is revealed only while feedback is shown or after finish.
type SessionView struct {
	SessionID         string                  `json:"sessionId"`
	UserID            string                  `json:"userId"`
	Key               TopicKey                `json:"key"`
	Phase             Phase                   `json:"phase"`
	Question          *Question               `json:"question,omitempty"`
	CorrectAnswerID   string                  `json:"correctAnswerId,omitempty"`
	Index             int                     `json:"index"`
	TotalQuestions    int                     `json:"totalQuestions"`
	SelectedAnswerID  string                  `json:"selectedAnswerId,omitempty"`
	Score             int                     `json:"score"`
	TimeLeft          int                     `json:"timeLeft"`
	ShowFeedback      bool                    `json:"showFeedback"`
	LastAnswerCorrect *bool                   `json:"lastAnswerCorrect,omitempty"`
	Energy            int                     `json:"energy"`
	XP                int                     `json:"xp"`
	Level             int                     `json:"level"`
	Jokers            map[JokerKind]JokerView `json:"jokers"`
	DisabledOptionIDs []string                `json:"disabledOptionIds"`
	SecondChanceArmed bool                    `json:"secondChanceArmed"`
}

// NoticeKind tags the one-shot notifications the engine emits.
type NoticeKind string

const (
	NoticeXPGained     NoticeKind = "xpGained"
	NoticeLevelUp      NoticeKind = "levelUp"
	NoticeBadge        NoticeKind = "badgeUnlocked"
	NoticeJokerUsed    NoticeKind = "jokerUsed"
	NoticeSecondChance NoticeKind = "secondChanceRetry"
	NoticeTimeExpired  NoticeKind = "timeExpired"
)

// Notice is a user-visible, fire-once event (XP toast, level-up, badge unlock).
type Notice struct {
	Kind   NoticeKind `json:"kind"`
	XP     int        `json:"xp,omitempty"`
	Reason string     `json:"reason,omitempty"`
	Level  int        `json:"level,omitempty"`
	Badge  *Badge     `json:"badge,omitempty"`
	Joker  JokerKind  `json:"joker,omitempty"`
}

// EventKind distinguishes state snapshots from notifications on the stream.
type EventKind string

const (
	EventState  EventKind = "state"
	EventNotice EventKind = "notice"
)

// Event is one item on a session's subscription stream.
type Event struct {
	Kind   EventKind    `json:"kind"`
	View   *SessionView `json:"view,omitempty"`
	Notice *Notice      `json:"notice,omitempty"`
}
