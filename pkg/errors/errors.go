package errors

import (
	"fmt"
)

var (
	ErrInvalidArg     = fmt.Errorf("invalid arg")
	ErrInvalidState   = fmt.Errorf("invalid state")
	ErrNoErrorDetail  = fmt.Errorf("error response carried neither statusMessage nor errors")
	ErrUnknownStatus  = fmt.Errorf("unknown assessment status")
	ErrInvalidResults = fmt.Errorf("invalid assessment results")
	ErrReportRender   = fmt.Errorf("report failed to render")
)
