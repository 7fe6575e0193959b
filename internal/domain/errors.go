package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session id is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionNotActive is returned for play actions on an empty or finished session.
	ErrSessionNotActive = errors.New("quiz session is not active")
	// ErrNoSelection is returned when submitting without a selected answer.
	ErrNoSelection = errors.New("no answer selected")
	// ErrInsufficientEnergy is returned when energy cannot cover a submission.
	ErrInsufficientEnergy = errors.New("insufficient energy")
	// ErrOptionNotFound indicates a selected option ID is not on the current question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrOptionDisabled indicates the option was removed by the fifty-fifty joker.
	ErrOptionDisabled = errors.New("option disabled by joker")
	// ErrAnswerLocked is returned when selecting or re-submitting during feedback.
	ErrAnswerLocked = errors.New("answer locked while feedback is shown")
	// ErrQuestionPending is returned when advancing before an answer was submitted.
	ErrQuestionPending = errors.New("current question not answered yet")
	// ErrJokerUnavailable is returned when a joker is spent or already used this session.
	ErrJokerUnavailable = errors.New("joker not available")
)
