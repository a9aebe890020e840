package values

import "fmt"

// Status represents the outcome of a compile job.
type Status string

const (
	// StatusPass indicates the compiler ran and reported no validation errors
	StatusPass Status = "pass"
	// StatusFail indicates the compiler ran and reported validation errors
	StatusFail Status = "fail"
	// StatusError indicates the compiler could not be run or crashed
	StatusError Status = "error"
	// StatusSkipped indicates the job was filtered out
	StatusSkipped Status = "skipped"
)

// Precedence returns the numeric precedence of this status.
// Higher values win when aggregating several job statuses.
//
// Precedence: Error (3) > Fail (2) > Pass (1) > Skipped (0)
func (s Status) Precedence() int {
	switch s {
	case StatusError:
		return 3
	case StatusFail:
		return 2
	case StatusPass:
		return 1
	case StatusSkipped:
		return 0
	default:
		return -1
	}
}

// IsFailure returns true if this status represents a failure or error
func (s Status) IsFailure() bool {
	return s == StatusFail || s == StatusError
}

// IsSuccess returns true if this status represents success
func (s Status) IsSuccess() bool {
	return s == StatusPass
}

// IsSkipped returns true if this status represents a skip
func (s Status) IsSkipped() bool {
	return s == StatusSkipped
}

// Validate returns an error if the status value is invalid
func (s Status) Validate() error {
	switch s {
	case StatusPass, StatusFail, StatusError, StatusSkipped:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", s)
	}
}

// WorstStatus returns the status with the highest precedence.
// An empty input yields StatusSkipped.
func WorstStatus(statuses ...Status) Status {
	worst := StatusSkipped
	for _, s := range statuses {
		if s.Precedence() > worst.Precedence() {
			worst = s
		}
	}
	return worst
}
