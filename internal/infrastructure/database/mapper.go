package database

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"portfolio/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

const contactColumns = `id, origin, locale, name, email, message, fields, status, error, submitted_at, settled_at`

func scanContact(row pgx.Row) (entities.ContactMessage, error) {
	var (
		m         entities.ContactMessage
		locale    string
		fields    []byte
		submitted pgtype.Timestamptz
		settled   pgtype.Timestamptz
	)
	if err := row.Scan(&m.ID, &m.Origin, &locale, &m.Name, &m.Email, &m.Message,
		&fields, &m.Status, &m.Error, &submitted, &settled); err != nil {
		return m, err
	}
	m.Locale = entities.Locale(locale)
	m.SubmittedAt = pgtypeTimestamptzToTime(submitted)
	m.SettledAt = pgtypeTimestamptzToTime(settled)
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &m.Fields); err != nil {
			return m, err
		}
	}
	return m, nil
}

func fieldsToJSON(f entities.Fields) ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}
