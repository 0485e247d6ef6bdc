package delivery

import "fmt"

/* Status represents the current state of a delivery job
 * Lifecycle: Pending -> InFlight -> Succeeded | Retrying -> Pending | DeadLettered
 * Blocked is a terminal policy rejection (allowlist), reached without retries
 */
type Status int

const (
	Pending Status = iota + 1
	InFlight
	Succeeded
	Retrying
	DeadLettered
	Blocked
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case InFlight:
		return "in_flight"
	case Succeeded:
		return "succeeded"
	case Retrying:
		return "retrying"
	case DeadLettered:
		return "dead_lettered"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// NewStatus creates a Status from a string
func NewStatus(str string) Status {
	switch str {
	case "pending":
		return Pending
	case "in_flight":
		return InFlight
	case "succeeded":
		return Succeeded
	case "retrying":
		return Retrying
	case "dead_lettered":
		return DeadLettered
	case "blocked":
		return Blocked
	default:
		return Pending
	}
}

// Validate checks if the status is valid
func (s Status) Validate() error {
	if s < Pending || s > Blocked {
		return fmt.Errorf("invalid status: %d", s)
	}
	return nil
}

// IsFinal returns true if the status is a terminal state
func (s Status) IsFinal() bool {
	return s == Succeeded || s == DeadLettered || s == Blocked
}
