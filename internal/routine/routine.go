package routine

import (
	"errors"
	"fmt"
	"time"

	"sweepd/internal/config"
	"sweepd/internal/pattern"
)

var errNonPositiveInterval = errors.New("routine interval must be positive")

// Routine couples a directory, a recurring scan interval, and a pattern
// selecting which of the directory's entries get removed. A Routine is
// immutable after construction and owned by exactly one goroutine.
type Routine struct {
	Directory string
	Interval  time.Duration
	Pattern   pattern.Pattern
}

// New validates the triple and builds a Routine.
func New(directory string, interval time.Duration, p pattern.Pattern) (Routine, error) {
	if interval <= 0 {
		return Routine{}, fmt.Errorf("routine %s: %w", directory, errNonPositiveInterval)
	}
	if p == nil {
		p = pattern.Any{}
	}
	return Routine{
		Directory: directory,
		Interval:  interval,
		Pattern:   p,
	}, nil
}

// FromConfig builds the routine list from validated configuration.
func FromConfig(cfg *config.Config) ([]Routine, error) {
	routines := make([]Routine, 0, len(cfg.Routines))
	for _, rc := range cfg.Routines {
		p, err := rc.Pattern.Compile()
		if err != nil {
			return nil, fmt.Errorf("routine %s: %w", rc.Directory, err)
		}
		r, err := New(rc.Directory, rc.Interval(), p)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, nil
}
