package coeff

import (
	"errors"
	"fmt"

	"github.com/notargets/blockcoupled/types"
)

var (
	ErrInactive      = errors.New("inactive coefficient level")
	ErrDemotion      = errors.New("coefficient demotion")
	ErrLevelMismatch = errors.New("unsupported coefficient level combination")
)

type LevelError struct {
	Requested, Active types.ActiveLevel
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("requested %s but active type is: %s", e.Requested, e.Active)
}

func (e *LevelError) Unwrap() error { return ErrInactive }

func inactive(requested, active types.ActiveLevel) {
	panic(&LevelError{Requested: requested, Active: active})
}

func demotion(to, from types.ActiveLevel) {
	panic(fmt.Errorf("detected demotion to %s from %s: %w", to, from, ErrDemotion))
}

func levelMismatch(op string, levels ...types.ActiveLevel) {
	panic(fmt.Errorf("%s %v: %w", op, levels, ErrLevelMismatch))
}
