package engine

import (
	"errors"
	"strings"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrInvalidConditions    = errors.New("invalid conditions")
	ErrNoCompatibleLure     = errors.New("no compatible lure")
	ErrNoLureAboveThreshold = errors.New("no lure above threshold")
)

// Error is the typed failure of a generation. Reason is a readable sentence,
// Hints are actions the caller can take.
type Error struct {
	Kind   error
	Reason string
	Hints  []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, reason string, hints ...string) *Error {
	return &Error{Kind: kind, Reason: reason, Hints: hints}
}
