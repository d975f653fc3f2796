package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/datetimeng/internal/codec"
	"github.com/roach88/datetimeng/internal/testutil"
	"github.com/roach88/datetimeng/internal/zone"
)

// createTestStore opens a fresh database with sequential ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, codec.New(zone.Default()),
		WithIDGenerator(testutil.NewSequenceIDs()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
