package cli

import (
	"errors"

	"github.com/user/refindex_go/internal/parser"
)

// Error codes for non-parse failures.
const (
	ErrCodeIO     = "IO_ERROR"
	ErrCodeConfig = "CONFIG_ERROR"
	ErrCodeOutput = "OUTPUT_ERROR"
)

// reportFailure prints err through the formatter and returns the ExitError
// for it. Parse errors exit with ExitFailure, everything else with
// ExitCommandError under fallbackCode.
func reportFailure(f *OutputFormatter, fallbackCode string, err error) error {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		_ = f.Error(CLIError{Code: string(pe.Kind), Message: err.Error(), Line: pe.Line})
		return WrapExitError(ExitFailure, string(pe.Kind), err)
	}
	_ = f.Error(CLIError{Code: fallbackCode, Message: err.Error()})
	return WrapExitError(ExitCommandError, fallbackCode, err)
}
