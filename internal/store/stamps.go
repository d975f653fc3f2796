package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/datetimeng/internal/chrono"
)

// Stamp is a persisted DateTime.
type Stamp struct {
	ID          string
	Label       string
	Value       chrono.DateTime
	Fingerprint string
}

// orderKey returns the UTC instant of an aware value, or the local fields
// of a naive one, as (ordinal, nanoseconds of day).
func orderKey(dt chrono.DateTime) (aware bool, ordinal, nanos int64, err error) {
	if !dt.IsAware() {
		return false, dt.Ordinal(), dt.NanosOfDay(), nil
	}
	ordinal, nanos, err = dt.UTCInstant()
	if err != nil {
		return false, 0, 0, err
	}
	return true, ordinal, nanos, nil
}

// SaveDateTime stores dt under a fresh id.
func (s *Store) SaveDateTime(ctx context.Context, label string, dt chrono.DateTime) (Stamp, error) {
	record, err := s.codec.EncodeDateTime(dt)
	if err != nil {
		return Stamp{}, fmt.Errorf("save datetime: %w", err)
	}
	fp, err := s.codec.FingerprintDateTime(dt)
	if err != nil {
		return Stamp{}, fmt.Errorf("save datetime: %w", err)
	}
	aware, ord, nanos, err := orderKey(dt)
	if err != nil {
		return Stamp{}, fmt.Errorf("save datetime: %w", err)
	}

	st := Stamp{ID: s.ids.NewID(), Label: label, Value: dt, Fingerprint: fp}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO stamps (id, label, record, fingerprint, aware, key_ordinal, key_nanos)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, st.ID, label, string(record), fp, aware, ord, nanos)
	if err != nil {
		return Stamp{}, fmt.Errorf("save datetime: %w", err)
	}

	s.logger.Debug("datetime saved", "id", st.ID, "label", label, "value", dt.String())
	return st, nil
}

// LoadDateTime returns the stamp stored under id.
func (s *Store) LoadDateTime(ctx context.Context, id string) (Stamp, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, record, fingerprint FROM stamps WHERE id = ?
	`, id)
	st, err := s.scanStamp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Stamp{}, fmt.Errorf("load datetime %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Stamp{}, fmt.Errorf("load datetime %q: %w", id, err)
	}
	return st, nil
}

// ListDateTimes returns every stamp, aware values first by UTC instant,
// then naive values by local fields, ties broken by id.
func (s *Store) ListDateTimes(ctx context.Context) ([]Stamp, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, record, fingerprint
		FROM stamps
		ORDER BY aware DESC, key_ordinal ASC, key_nanos ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query stamps: %w", err)
	}
	defer rows.Close()

	stamps := []Stamp{}
	for rows.Next() {
		st, err := s.scanStamp(rows)
		if err != nil {
			return nil, err
		}
		stamps = append(stamps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stamps: %w", err)
	}
	return stamps, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanStamp(row scanner) (Stamp, error) {
	var st Stamp
	var record string
	if err := row.Scan(&st.ID, &st.Label, &record, &st.Fingerprint); err != nil {
		return Stamp{}, err
	}
	dt, err := s.codec.DecodeDateTime([]byte(record))
	if err != nil {
		return Stamp{}, fmt.Errorf("stamp %s: %w", st.ID, err)
	}
	st.Value = dt
	return st, nil
}
