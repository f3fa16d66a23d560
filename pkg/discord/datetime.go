package discord

import (
	"time"

	"portfolio/pkg/tz"
)

// FormatSubmittedAt renders t in the site owner's timezone.
func FormatSubmittedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(tz.BuenosAires).Format("02/01/2006 15:04")
}
