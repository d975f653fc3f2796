package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/datetimeng/internal/chrono"
	"github.com/roach88/datetimeng/internal/codec"
	"github.com/roach88/datetimeng/internal/format"
	"github.com/roach88/datetimeng/internal/store"
	"github.com/roach88/datetimeng/internal/zone"
)

// Error codes for JSON error responses.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeUsage           = "E002" // Bad arguments or flags
	ErrCodeParse           = "E003" // Unparseable date or timestamp
	ErrCodeUnknownZone     = "E004" // Zone name not registered
	ErrCodeZoneDefinition  = "E005" // Invalid zone definition file
	ErrCodeNotFound        = "E006" // Stored record not found
	ErrCodeUnnamedZone     = "E007" // Zone cannot be written to a record
	ErrCodeValue           = "E101" // Field out of range
	ErrCodeRange           = "E102" // Result outside the representable range
	ErrCodeType            = "E103" // Naive and aware values mixed
	ErrCodeScenariosFailed = "E201" // One or more scenarios failed
)

// errorCode classifies err for the JSON envelope, most specific cause first.
func errorCode(err error) (string, any) {
	var parseErr *format.ParseError
	var defErr *zone.DefinitionError
	var engineErr *chrono.Error
	switch {
	case errors.As(err, &parseErr):
		return ErrCodeParse, map[string]any{"input": parseErr.Input, "offset": parseErr.Offset}
	case errors.Is(err, zone.ErrUnknownZone):
		return ErrCodeUnknownZone, nil
	case errors.As(err, &defErr):
		return ErrCodeZoneDefinition, map[string]any{"field": defErr.Field}
	case errors.Is(err, store.ErrNotFound):
		return ErrCodeNotFound, nil
	case errors.Is(err, codec.ErrUnnamedZone):
		return ErrCodeUnnamedZone, nil
	case errors.As(err, &engineErr):
		details := map[string]any{"op": engineErr.Op}
		switch engineErr.Kind {
		case chrono.KindValue:
			return ErrCodeValue, details
		case chrono.KindRange:
			return ErrCodeRange, details
		case chrono.KindType:
			return ErrCodeType, details
		}
	}
	if GetExitCode(err) == ExitCommandError {
		return ErrCodeUsage, nil
	}
	return ErrCodeGeneric, nil
}

// withErrorEnvelope makes a failing command write a JSON error response
// when --format json is set. The error is still returned for the exit code.
func withErrorEnvelope(opts *RootOptions, run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err == nil || opts.Format != "json" {
			return err
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.reported {
			return err
		}
		code, details := errorCode(err)
		_ = newFormatter(opts, cmd).Error(code, err.Error(), details)
		return err
	}
}
