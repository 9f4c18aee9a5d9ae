package ecb

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Policy decides what apply playback does with records whose target was destroyed after recording.
type Policy uint8

const (
	// PolicyDrop skips the record and its payload.
	PolicyDrop Policy = iota
	// PolicyThrow aborts playback before the store is touched.
	PolicyThrow
	// PolicySubstitute writes the record into a throwaway entity that is destroyed once playback
	// is done. The payload is computed and discarded.
	PolicySubstitute
)

func (p Policy) String() string {
	switch p {
	case PolicyDrop:
		return "drop"
	case PolicyThrow:
		return "throw"
	case PolicySubstitute:
		return "substitute"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name, case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop", "":
		return PolicyDrop, nil
	case "throw":
		return PolicyThrow, nil
	case "substitute":
		return PolicySubstitute, nil
	default:
		return PolicyDrop, eris.Errorf("invalid destroyed target policy: %s (must be 'drop', 'throw', or 'substitute')", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so the policy can be read from the environment.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
