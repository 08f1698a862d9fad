package query

import "errors"

var (
	// ErrMissingTable is returned when a statement is rendered without a table.
	ErrMissingTable = errors.New("no table specified")
	// ErrMissingValues is returned when INSERT or UPDATE has nothing to set.
	ErrMissingValues = errors.New("no values specified")
	// ErrInterpolationUnavailable is returned when interpolation is enabled,
	// parameters are present and no literal quoter was configured.
	ErrInterpolationUnavailable = errors.New("interpolation not available without a literal quoter")
	// ErrParameterCountMismatch is returned when the number of placeholders
	// differs from the number of parameters.
	ErrParameterCountMismatch = errors.New("parameter count mismatch")
	// ErrNoExecutor is returned by Execute when no executor was injected.
	ErrNoExecutor = errors.New("execute called when no executor set")
)
