package application

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

// DefaultStatusTTL is how long the inline status stays visible.
const DefaultStatusTTL = 5 * time.Second

// ContactRequest is one submission of the contact form as received.
type ContactRequest struct {
	Origin      string
	Destination string
	Locale      entities.Locale
	Fields      entities.Fields
}

type ContactService struct {
	repo      output.ContactRepository
	gateway   output.FormGateway
	notifier  output.Notifier
	policy    *bluemonday.Policy
	statusTTL time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// ContactOption customizes a ContactService.
type ContactOption func(*ContactService)

// WithNotifier announces every submission through n.
func WithNotifier(n output.Notifier) ContactOption {
	return func(s *ContactService) { s.notifier = n }
}

// WithStatusTTL overrides DefaultStatusTTL.
func WithStatusTTL(d time.Duration) ContactOption {
	return func(s *ContactService) {
		if d > 0 {
			s.statusTTL = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ContactOption {
	return func(s *ContactService) { s.now = now }
}

func NewContactService(
	repo output.ContactRepository,
	gateway output.FormGateway,
	logger *zap.Logger,
	opts ...ContactOption,
) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ContactService{
		repo:      repo,
		gateway:   gateway,
		policy:    bluemonday.StrictPolicy(),
		statusTTL: DefaultStatusTTL,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit relays req once to its destination and records the outcome. The
// returned status is always usable; err explains why the relay failed.
// Storage and notification problems are logged and never change the outcome.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*entities.ContactMessage, entities.FormStatus, error) {
	now := s.now()
	msg := &entities.ContactMessage{
		ID:          uuid.New(),
		Origin:      req.Origin,
		Locale:      req.Locale,
		Name:        s.clean(req.Fields.Get("name")),
		Email:       s.clean(req.Fields.Get("email")),
		Message:     s.clean(req.Fields.Get("message")),
		Fields:      s.cleanFields(req.Fields),
		Status:      entities.ContactPending,
		SubmittedAt: now,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Warn("contact: store submission", zap.Stringer("id", msg.ID), zap.Error(err))
	}

	relayErr := s.relay(ctx, req)

	// The status stays visible for statusTTL once the relay has settled.
	msg.SettledAt = s.now()
	status := entities.FormStatus{
		ID:        uuid.New(),
		Outcome:   entities.OutcomeSent,
		ExpiresAt: msg.SettledAt.Add(s.statusTTL),
	}
	if relayErr != nil {
		msg.Status = entities.ContactFailed
		msg.Error = relayErr.Error()
		status.Outcome = entities.OutcomeFailed
		status.Values = copyFields(req.Fields)
	} else {
		msg.Status = entities.ContactDelivered
	}

	if err := s.repo.UpdateStatus(ctx, msg); err != nil {
		s.logger.Warn("contact: update submission", zap.Stringer("id", msg.ID), zap.Error(err))
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Warn("contact: notify owner", zap.Stringer("id", msg.ID), zap.Error(err))
		}
	}
	return msg, status, relayErr
}

// Recent returns the latest stored submissions.
func (s *ContactService) Recent(ctx context.Context, limit int) ([]entities.ContactMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, limit)
}

func (s *ContactService) relay(ctx context.Context, req ContactRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return domain.ErrFormDestinationMissing
	}
	if err := s.gateway.Submit(ctx, req.Destination, req.Fields); err != nil {
		return fmt.Errorf("relay contact form: %w", err)
	}
	return nil
}

func (s *ContactService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *ContactService) cleanFields(f entities.Fields) entities.Fields {
	out := make(entities.Fields, len(f))
	for k, vs := range f {
		for _, v := range vs {
			out[k] = append(out[k], s.clean(v))
		}
	}
	return out
}

func copyFields(f entities.Fields) entities.Fields {
	out := make(entities.Fields, len(f))
	for k, vs := range f {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
