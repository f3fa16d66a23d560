package input

import (
	"context"

	"portfolio/internal/application"
	"portfolio/internal/domain/entities"
)

type ContactUseCase interface {
	Submit(ctx context.Context, req application.ContactRequest) (*entities.ContactMessage, entities.FormStatus, error)
	Recent(ctx context.Context, limit int) ([]entities.ContactMessage, error)
}

var _ ContactUseCase = (*application.ContactService)(nil)
