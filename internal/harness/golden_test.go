package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioGoldenTraces(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
			assert.Len(t, result.Trace, len(scenario.Steps))
		})
	}
}

func TestAssertGoldenUsesCanonicalJSON(t *testing.T) {
	result := NewResult()
	result.Trace = append(result.Trace,
		TraceEvent{Step: 0, Op: OpLocalize, As: "x", Result: "2002-10-27 01:30:00-05:00"},
		TraceEvent{Step: 1, Op: OpSub, Error: "type"},
	)
	require.NoError(t, AssertGolden(t, "canonical_trace", result))
}
