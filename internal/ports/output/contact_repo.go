package output

import (
	"context"

	"github.com/google/uuid"

	"portfolio/internal/domain/entities"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *entities.ContactMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ContactMessage, error)
	// List returns the most recent messages first, at most limit of them.
	List(ctx context.Context, limit int) ([]entities.ContactMessage, error)
	UpdateStatus(ctx context.Context, msg *entities.ContactMessage) error
}
