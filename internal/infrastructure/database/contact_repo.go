package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

var _ output.ContactRepository = (*ContactRepository)(nil)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, m *entities.ContactMessage) error {
	fields, err := fieldsToJSON(m.Fields)
	if err != nil {
		return fmt.Errorf("encode contact fields: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO contact_messages (`+contactColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.Origin, m.Locale.String(), m.Name, m.Email, m.Message,
		fields, m.Status, m.Error, timeToTimestamptz(m.SubmittedAt), timeToTimestamptz(m.SettledAt),
	)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ContactMessage, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id)
	m, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message by id: %w", err)
	}
	return &m, nil
}

func (r *ContactRepository) List(ctx context.Context, limit int) ([]entities.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contact_messages ORDER BY submitted_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var out []entities.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, m *entities.ContactMessage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_messages SET status = $2, error = $3, settled_at = $4 WHERE id = $1`,
		m.ID, m.Status, m.Error, timeToTimestamptz(m.SettledAt))
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
