package entities

import (
	"time"

	"github.com/google/uuid"
)

// Delivery states of a contact message.
const (
	ContactPending   = "pending"
	ContactDelivered = "delivered"
	ContactFailed    = "failed"
)

// Fields holds the submitted form values in submission order per name.
type Fields map[string][]string

// Get returns the first value of name.
func (f Fields) Get(name string) string {
	if v := f[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// ContactMessage is one submission of the contact form.
type ContactMessage struct {
	ID          uuid.UUID `json:"id"`
	Origin      string    `json:"origin"`
	Locale      Locale    `json:"locale"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	Fields      Fields    `json:"fields"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	SettledAt   time.Time `json:"settled_at,omitempty"`
}

// IsSettled reports whether the relay finished, successfully or not.
func (m *ContactMessage) IsSettled() bool {
	return m.Status == ContactDelivered || m.Status == ContactFailed
}

// Outcome of a contact form submission as shown to the visitor.
type Outcome string

const (
	OutcomeSent   Outcome = "sent"
	OutcomeFailed Outcome = "failed"
)

// FormStatus is the inline message shown under the contact form after a
// submission. Values are only retained when the submission failed, so the
// form renders cleared after a success.
type FormStatus struct {
	ID        uuid.UUID
	Outcome   Outcome
	Values    Fields
	ExpiresAt time.Time
}

// MessageKey is the dictionary key of the status text.
func (s FormStatus) MessageKey() string {
	if s.Outcome == OutcomeSent {
		return "form.sent"
	}
	return "form.error"
}

// Expired reports whether the status should no longer be displayed at now.
func (s FormStatus) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
