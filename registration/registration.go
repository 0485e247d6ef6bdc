package registration

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/marcelsud/webhook-outbox/delivery/payload"
	"github.com/marcelsud/webhook-outbox/delivery/signature"
)

/* Registration represents a subscriber endpoint in the system
 * Uses value semantics as it represents data, not behavior
 */
type Registration struct {
	ID        string
	URL       string
	Events    []string
	Secret    string
	Headers   map[string]string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the registration invariants enforced on create and update
func (r Registration) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Reason: "cannot be empty"}
	}
	if err := validateURL(r.URL); err != nil {
		return err
	}
	if len(r.Events) == 0 {
		return &ValidationError{Field: "events", Reason: "cannot be empty"}
	}
	for _, eventType := range r.Events {
		if err := payload.ValidateEventType(eventType); err != nil {
			return &ValidationError{Field: "events", Reason: err.Error()}
		}
	}
	if r.Secret != "" {
		if _, err := signature.ParseSecret(r.Secret); err != nil {
			return &ValidationError{Field: "secret", Reason: err.Error()}
		}
	}
	return nil
}

// Subscribes reports whether this registration wants the given event.
// Patterns in Events support a trailing wildcard ("user.*").
func (r Registration) Subscribes(eventName string) bool {
	return payload.MatchesEventType(eventName, r.Events)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: "url", Reason: fmt.Sprintf("malformed: %v", err)}
	}
	if !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return &ValidationError{Field: "url", Reason: "scheme must be http or https"}
	}
	return nil
}
