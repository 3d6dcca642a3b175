package domain

import "errors"

// ErrorKind classifies a rejected operation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation covers malformed or illegal moves. The caller may resubmit.
	KindValidation
	// KindAuthorization covers moves by non-participants or out of turn.
	KindAuthorization
	// KindConflict means the document changed underneath the caller; re-read and retry.
	KindConflict
	// KindInvariant means the persisted document is corrupt; the game cannot continue.
	KindInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// RuleError is a classified engine error. The exported Err* values are the
// only instances; wrap them with fmt.Errorf("%w: ...") to add detail.
type RuleError struct {
	Kind ErrorKind
	Code string
	msg  string
}

func (e *RuleError) Error() string { return e.msg }

var (
	ErrNotParticipant      = &RuleError{KindAuthorization, "NotParticipant", "player is not a participant in this game"}
	ErrNotYourTurn         = &RuleError{KindAuthorization, "NotYourTurn", "not your turn"}
	ErrGameNotActive       = &RuleError{KindValidation, "GameNotActive", "game is not active"}
	ErrIllegalMoveForPhase = &RuleError{KindValidation, "IllegalMoveForPhase", "move is not legal in the current phase"}
	ErrInvalidCard         = &RuleError{KindValidation, "InvalidCard", "card is not held by the player"}
	ErrInvalidPayload      = &RuleError{KindValidation, "InvalidPayload", "malformed move payload"}
	ErrInvalidClaim        = &RuleError{KindValidation, "InvalidClaim", "claimed score is not allowed"}
	ErrCountExceeded       = &RuleError{KindValidation, "CountExceeded", "play would take the count past 31"}
	ErrMustPlay            = &RuleError{KindValidation, "MustPlay", "a playable card is held; go is not allowed"}
	ErrAlreadyDiscarded    = &RuleError{KindValidation, "AlreadyDiscarded", "discards already submitted this round"}
	ErrGameFull            = &RuleError{KindValidation, "GameFull", "game already has two players"}
	ErrGameNotFound        = &RuleError{KindValidation, "GameNotFound", "game not found"}
	ErrConcurrencyConflict = &RuleError{KindConflict, "ConcurrencyConflict", "game was modified concurrently"}
	ErrCorruptState        = &RuleError{KindInvariant, "CorruptState", "game document violates an invariant"}
)

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// CodeOf returns the stable error code of err, or "Internal".
func CodeOf(err error) string {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code
	}
	return "Internal"
}
