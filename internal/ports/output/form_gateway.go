package output

import (
	"context"

	"portfolio/internal/domain/entities"
)

// FormGateway delivers a contact form payload to the external form-processing
// endpoint. A nil error means the endpoint accepted the submission.
type FormGateway interface {
	Submit(ctx context.Context, destination string, fields entities.Fields) error
}

// Notifier announces a new contact message to the site owner.
type Notifier interface {
	Notify(ctx context.Context, msg *entities.ContactMessage) error
}
