package payload

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// eventTypePattern validates event types: hierarchical, full-stop delimited, [a-zA-Z0-9_.]
var eventTypePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)

/* Event is the canonical body sent to subscribers, in the Standard Webhooks
 * envelope. The byte encoding is stable (json.Marshal with fixed field order)
 * so the HMAC signature can be reproduced by the receiver.
 */
type Event struct {
	// Type is a full-stop delimited type associated with the event
	// Examples: "user.created", "invoice.paid", "order.shipped"
	Type string `json:"type"`

	// Timestamp is when the event occurred, ISO 8601 formatted on the wire
	Timestamp time.Time `json:"timestamp"`

	// Data is the actual event data associated with the event
	Data json.RawMessage `json:"data"`
}

// New creates an Event for the given type and data, stamped with now
func New(eventType string, data json.RawMessage) (Event, error) {
	evt := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	if err := evt.Validate(); err != nil {
		return Event{}, fmt.Errorf("validating event: %w", err)
	}

	return evt, nil
}

// Parse decodes and validates a JSON event body
func Parse(data []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		return Event{}, fmt.Errorf("unmarshaling event: %w", err)
	}

	if err := evt.Validate(); err != nil {
		return Event{}, fmt.Errorf("validating event: %w", err)
	}

	return evt, nil
}

// Validate checks the envelope invariants
func (e Event) Validate() error {
	if e.Type == "" {
		return fmt.Errorf("type is required")
	}

	if !eventTypePattern.MatchString(e.Type) {
		return fmt.Errorf("type must be hierarchical and contain only [a-zA-Z0-9_.]: %s", e.Type)
	}

	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}

	if len(e.Data) == 0 {
		return fmt.Errorf("data is required")
	}

	if !json.Valid(e.Data) {
		return fmt.Errorf("data must be valid JSON")
	}

	return nil
}

// Bytes returns the canonical JSON encoding, minified
func (e Event) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

// MarshalJSON encodes the timestamp as RFC 3339 with nanosecond precision
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339Nano),
		alias:     (*alias)(&e),
	})
}

// UnmarshalJSON accepts RFC 3339 timestamps with or without sub-second precision
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	aux := &struct {
		Timestamp string `json:"timestamp"`
		*alias
	}{
		alias: (*alias)(e),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("unmarshaling event: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, aux.Timestamp)
	if err != nil {
		ts, err = time.Parse(time.RFC3339, aux.Timestamp)
		if err != nil {
			return fmt.Errorf("parsing timestamp: %w", err)
		}
	}
	e.Timestamp = ts

	return nil
}

// ValidateEventType validates an event type or subscription pattern.
// A trailing ".*" wildcard is allowed in patterns.
func ValidateEventType(eventType string) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}

	trimmed := strings.TrimSuffix(eventType, ".*")
	if trimmed == "" || !eventTypePattern.MatchString(trimmed) {
		return fmt.Errorf("event type must be hierarchical and contain only [a-zA-Z0-9_.]: %s", eventType)
	}

	return nil
}

// MatchesEventType reports whether eventName matches any of the patterns.
// Patterns support exact matching and a trailing wildcard: "user.*" matches
// "user.created" but not "user" or "username.taken".
func MatchesEventType(eventName string, patterns []string) bool {
	for _, pattern := range patterns {
		if eventName == pattern {
			return true
		}

		if prefix, ok := strings.CutSuffix(pattern, ".*"); ok && prefix != "" {
			if strings.HasPrefix(eventName, prefix+".") {
				return true
			}
		}
	}
	return false
}
