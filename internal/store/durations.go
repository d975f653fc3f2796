package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/datetimeng/internal/chrono"
)

// StoredDuration is a persisted Duration.
type StoredDuration struct {
	ID          string
	Label       string
	Value       chrono.Duration
	Fingerprint string
}

// SaveDuration stores d under a fresh id. The canonical triple is also
// kept in plain columns for ad hoc queries.
func (s *Store) SaveDuration(ctx context.Context, label string, d chrono.Duration) (StoredDuration, error) {
	record, err := s.codec.EncodeDuration(d)
	if err != nil {
		return StoredDuration{}, fmt.Errorf("save duration: %w", err)
	}
	fp, err := s.codec.FingerprintDuration(d)
	if err != nil {
		return StoredDuration{}, fmt.Errorf("save duration: %w", err)
	}

	sd := StoredDuration{ID: s.ids.NewID(), Label: label, Value: d, Fingerprint: fp}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO durations (id, label, record, fingerprint, days, seconds, nanoseconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sd.ID, label, string(record), fp, d.Days(), d.Seconds(), d.Nanoseconds())
	if err != nil {
		return StoredDuration{}, fmt.Errorf("save duration: %w", err)
	}

	s.logger.Debug("duration saved", "id", sd.ID, "label", label, "value", d.String())
	return sd, nil
}

// LoadDuration returns the duration stored under id.
func (s *Store) LoadDuration(ctx context.Context, id string) (StoredDuration, error) {
	var sd StoredDuration
	var record string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, record, fingerprint FROM durations WHERE id = ?
	`, id).Scan(&sd.ID, &sd.Label, &record, &sd.Fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredDuration{}, fmt.Errorf("load duration %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return StoredDuration{}, fmt.Errorf("load duration %q: %w", id, err)
	}

	d, err := s.codec.DecodeDuration([]byte(record))
	if err != nil {
		return StoredDuration{}, fmt.Errorf("load duration %q: %w", id, err)
	}
	sd.Value = d
	return sd, nil
}
