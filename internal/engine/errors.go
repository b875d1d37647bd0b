package engine

import "errors"

// Contract violations. These indicate a caller bug, not a runtime condition
// to recover from, so they are surfaced rather than swallowed.
var (
	ErrInactiveSession = errors.New("no active training session")
	ErrInvalidModule   = errors.New("unknown training module")
	ErrDuplicateBadge  = errors.New("badge already earned")
	ErrNegativeXP      = errors.New("xp amount must not be negative")
	ErrScoreOutOfRange = errors.New("score must be within [0,100]")
)
