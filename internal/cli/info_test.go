package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo_Golden(t *testing.T) {
	out, err := executeCommand(t, nil, "info", "2002-10-27")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "info_2002_10_27", []byte(out))
}

func TestInfo_JSON(t *testing.T) {
	out, err := executeCommand(t, nil, "--format", "json", "info", "2004-12-31")
	require.NoError(t, err)

	var resp struct {
		Data DateInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, DateInfo{
		Date:        "2004-12-31",
		Ordinal:     731946,
		Weekday:     "Friday",
		ISOCalendar: "2004-W53-5",
		YearDay:     366,
		DaysInMonth: 31,
		DaysInYear:  366,
		Leap:        true,
	}, resp.Data)
}

func TestInfo_InvalidDate(t *testing.T) {
	_, err := executeCommand(t, nil, "info", "1900-02-29")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
