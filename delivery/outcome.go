package delivery

import "fmt"

/* Outcome classifies the result of a single delivery attempt
 * Transient outcomes drive the retry state machine; DeniedByAllowlist is a
 * permanent policy rejection and never retried
 */
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeConnectionError
	OutcomeTimeout
	OutcomeInvalidResponse
	OutcomeRateLimited
	OutcomeDeniedByAllowlist
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeConnectionError:
		return "connection_error"
	case OutcomeTimeout:
		return "timeout_error"
	case OutcomeInvalidResponse:
		return "invalid_response"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeDeniedByAllowlist:
		return "denied_by_allowlist"
	default:
		return "unknown"
	}
}

// NewOutcome creates an Outcome from a string
func NewOutcome(str string) Outcome {
	switch str {
	case "success":
		return OutcomeSuccess
	case "connection_error":
		return OutcomeConnectionError
	case "timeout_error":
		return OutcomeTimeout
	case "invalid_response":
		return OutcomeInvalidResponse
	case "rate_limited":
		return OutcomeRateLimited
	case "denied_by_allowlist":
		return OutcomeDeniedByAllowlist
	default:
		return OutcomeConnectionError
	}
}

// Validate checks if the outcome is valid
func (o Outcome) Validate() error {
	if o < OutcomeSuccess || o > OutcomeDeniedByAllowlist {
		return fmt.Errorf("invalid outcome: %d", o)
	}
	return nil
}

// MarshalJSON encodes the outcome as its string form
func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", o.String())), nil
}

// UnmarshalJSON decodes the outcome from its string form
func (o *Outcome) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid outcome value: %s", s)
	}
	*o = NewOutcome(s[1 : len(s)-1])
	return nil
}

// Transient returns true for outcomes that are retried under backoff
func (o Outcome) Transient() bool {
	switch o {
	case OutcomeConnectionError, OutcomeTimeout, OutcomeInvalidResponse, OutcomeRateLimited:
		return true
	}
	return false
}
