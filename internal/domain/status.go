package domain

import "fmt"

// Status is the outcome classification of a single test
type Status int

const (
	StatusPass Status = iota + 1
	StatusFail
	StatusError
	StatusSkip
)

// Code returns the single-letter prefix used in report display ids
func (s Status) Code() string {
	switch s {
	case StatusFail:
		return "f"
	case StatusError:
		return "e"
	case StatusSkip:
		return "s"
	default:
		return "p"
	}
}

// String returns the upper-case status name
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusError:
		return "ERROR"
	case StatusSkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the status by name so JSON exports stay readable
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStatus returns the status with the given name
func ParseStatus(name string) (Status, error) {
	switch name {
	case "PASS":
		return StatusPass, nil
	case "FAIL":
		return StatusFail, nil
	case "ERROR":
		return StatusError, nil
	case "SKIP":
		return StatusSkip, nil
	}
	return 0, fmt.Errorf("unknown status %q", name)
}
