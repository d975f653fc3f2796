package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/datetimeng/internal/testutil"
)

func TestSaveAndList(t *testing.T) {
	opts := &RootOptions{ids: testutil.NewSequenceIDs()}
	db := filepath.Join(t.TempDir(), "stamps.db")

	saves := [][]string{
		{"save", "2002-10-27T01:30:00", "--in", "Eastern", "--fold", "1", "--db", db, "--label", "second"},
		{"save", "2002-10-27T01:30:00", "--in", "Eastern", "--db", db, "--label", "first"},
		{"save", "2002-10-27T01:30:00", "--db", db},
		{"save", "2002-10-27T06:00:00+00:00", "--db", db},
	}
	for i, args := range saves {
		out, err := executeCommand(t, opts, args...)
		require.NoError(t, err)
		assert.Equal(t, "00000000-0000-7000-8000-00000000000"+string(rune('1'+i))+"\n", out)
	}

	out, err := executeCommand(t, opts, "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`00000000-0000-7000-8000-000000000002  2002-10-27 01:30:00-04:00  EDT  "first"`,
		`00000000-0000-7000-8000-000000000004  2002-10-27 06:00:00+00:00  UTC`,
		`00000000-0000-7000-8000-000000000001  2002-10-27 01:30:00-05:00  EST  "second"`,
		`00000000-0000-7000-8000-000000000003  2002-10-27 01:30:00`,
	}, strings.Split(strings.TrimSuffix(out, "\n"), "\n"))
}

func TestSave_JSONIncludesFingerprint(t *testing.T) {
	opts := &RootOptions{ids: testutil.NewSequenceIDs()}
	db := filepath.Join(t.TempDir(), "stamps.db")

	out, err := executeCommand(t, opts, "--format", "json",
		"save", "2002-10-27T01:30:00", "--in", "Eastern", "--fold", "1", "--db", db)
	require.NoError(t, err)

	var resp struct {
		Data StampInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "00000000-0000-7000-8000-000000000001", resp.Data.ID)
	assert.Equal(t, 1, resp.Data.Fold)
	assert.Equal(t, "EST", resp.Data.ZoneName)
	assert.Len(t, resp.Data.Fingerprint, 64)
}

func TestSave_UnknownZone(t *testing.T) {
	db := filepath.Join(t.TempDir(), "stamps.db")
	_, err := executeCommand(t, nil, "save", "2002-10-27T01:30:00", "--in", "Atlantis", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
