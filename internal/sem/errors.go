package sem

import (
	"fmt"

	"github.com/vela-lang/vela/internal/syntax"
)

// SemError represents a semantic diagnostic.
type SemError struct {
	Pos syntax.Pos
	Msg string
}

// Error implements the error interface.
func (e *SemError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each diagnostic.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf records a diagnostic at the given position.
func (a *analyzer) errorf(pos syntax.Pos, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if a.first == nil {
		a.first = &SemError{Pos: pos, Msg: msg}
	}
	a.errors++

	if a.conf.Error != nil {
		a.conf.Error(pos, msg)
	}
}
