// Package quiz picks which questions a quiz session should ask.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the strategy used to build a quiz batch.
type Mode string

const (
	// ModeAdaptive asks due questions, chronically missed ones first.
	ModeAdaptive Mode = "adaptive"
	// ModeDifficult asks only questions with a low difficulty score.
	ModeDifficult Mode = "difficult"
	// ModeRandom asks every question in random order.
	ModeRandom Mode = "random"
)

var ErrUnknownMode = errors.New("unknown quiz mode")

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{ModeAdaptive, ModeDifficult, ModeRandom}
}

// ParseMode converts user input into a Mode.
func ParseMode(value string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(value)))
	for _, m := range Modes() {
		if m == mode {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
}

func (m Mode) String() string {
	return string(m)
}

// Set implements pflag.Value.
func (m *Mode) Set(value string) error {
	parsed, err := ParseMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}
