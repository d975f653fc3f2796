package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data"`
	Error  *CLIError `json:"error"`
}

func decodeError(t *testing.T, out string) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestJSONErrorEnvelope(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
		exit int
	}{
		{"unknown zone", []string{"convert", "2002-10-27T01:30:00", "--in", "Nowhere"}, ErrCodeUnknownZone, ExitCommandError},
		{"malformed offset", []string{"convert", "2002-01-01T00:00:00+-1:30"}, ErrCodeParse, ExitCommandError},
		{"invalid date", []string{"info", "2002-02-30"}, ErrCodeParse, ExitCommandError},
		{"naive and aware", []string{"diff", "2002-10-27T00:00:00", "2002-10-27T00:00:00Z"}, ErrCodeType, ExitFailure},
		{"year out of range", []string{"psf", "10000"}, ErrCodeValue, ExitFailure},
		{"bad year", []string{"psf", "soon"}, ErrCodeUsage, ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, nil, append([]string{"--format", "json"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.exit, GetExitCode(err))

			resp := decodeError(t, out)
			assert.Equal(t, "error", resp.Status)
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, err.Error(), resp.Error.Message)
		})
	}
}

func TestJSONErrorEnvelope_ParseDetails(t *testing.T) {
	out, err := executeCommand(t, nil, "--format", "json", "convert", "2002-01-01T00:00:00+-1:30")
	require.Error(t, err)

	resp := decodeError(t, out)
	require.NotNil(t, resp.Error)
	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok, "details: %v", resp.Error.Details)
	assert.Equal(t, "2002-01-01T00:00:00+-1:30", details["input"])
	assert.Equal(t, float64(19), details["offset"])
}

func TestTextErrorsWriteNothingToStdout(t *testing.T) {
	out, err := executeCommand(t, nil, "convert", "2002-10-27T01:30:00", "--in", "Nowhere")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestJSONErrorEnvelope_ScenarioFailuresWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(`
name: wrong
description: wrong expected offset
steps:
  - op: localize
    value: "2002-07-04T12:00:00"
    zone: Eastern
    expect: "2002-07-04 12:00:00-05:00"
`), 0644))

	out, err := executeCommand(t, nil, "--format", "json", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeError(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeScenariosFailed, resp.Error.Code)
	assert.Equal(t, "1 of 1 scenarios failed", resp.Error.Message)
}
