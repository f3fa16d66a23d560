package domain

import "errors"

// Domain errors.
var (
	ErrPageNotFound           = errors.New("page not found")
	ErrUnsupportedLocale      = errors.New("unsupported locale")
	ErrFormDestinationMissing = errors.New("contact form has no destination")
	ErrRelayRejected          = errors.New("form endpoint rejected the submission")
	ErrMessageNotFound        = errors.New("contact message not found")
)

var codes = map[error]string{
	ErrPageNotFound:           "page_not_found",
	ErrUnsupportedLocale:      "unsupported_locale",
	ErrFormDestinationMissing: "form_destination_missing",
	ErrRelayRejected:          "relay_rejected",
	ErrMessageNotFound:        "message_not_found",
}

// Code returns the stable code of the domain error wrapped in err, or "" when
// err does not wrap one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}
