package query

import "context"

// Executor runs a rendered statement against a database. params is nil when
// the statement was rendered with interpolation. The returned value is passed
// back to the caller of Execute untouched.
type Executor interface {
	Execute(ctx context.Context, query string, params []any) (any, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, query string, params []any) (any, error)

func (f ExecutorFunc) Execute(ctx context.Context, query string, params []any) (any, error) {
	return f(ctx, query, params)
}

// LiteralQuoter renders a scalar as an escaped SQL literal. It is only
// consulted when interpolation is enabled.
type LiteralQuoter func(v any) string
