package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/sqlkit/dialect"
)

const (
	defaultIdentifierQuote = "`"
	defaultQuoteChar       = "'"
	defaultUnboundedLimit  = "18446744073709551615"
)

// Statement is the behaviour shared by every statement kind.
type Statement interface {
	Render() (string, []any, error)
	Execute(ctx context.Context) (any, error)
	Interpolating() bool
}

// Option configures the shared part of a statement.
type Option func(*base)

// WithExecutor injects the collaborator used by Execute.
func WithExecutor(e Executor) Option {
	return func(b *base) { b.executor = e }
}

// WithLiteralQuoter injects the collaborator used by interpolation.
func WithLiteralQuoter(q LiteralQuoter) Option {
	return func(b *base) { b.literal = q }
}

// WithIdentifierQuote overrides the identifier quote character. An empty
// string disables identifier quoting.
func WithIdentifierQuote(q string) Option {
	return func(b *base) { b.identifierQuote = q }
}

// WithQuoteChar overrides the string literal quote character.
func WithQuoteChar(q string) Option {
	return func(b *base) { b.quoteChar = q }
}

// WithInterpolation toggles literal interpolation of parameters.
func WithInterpolation(on bool) Option {
	return func(b *base) { b.interpolate = on }
}

// WithDialect takes quoting rules and the literal quoter from d.
func WithDialect(d dialect.Dialect) Option {
	return func(b *base) {
		b.identifierQuote = d.IdentifierQuote()
		b.quoteChar = d.LiteralQuote()
		b.literal = d.QuoteLiteral
		b.unboundedLimit = d.UnboundedLimit()
	}
}

type tableRef struct {
	name string
	expr Expression
	raw  bool
}

func (t tableRef) empty() bool {
	if t.raw {
		return t.expr.IsZero()
	}
	return t.name == ""
}

// base holds configuration and the per-render buffers. parts and params are
// truncated at the start of every Render; nothing is cached between calls.
type base struct {
	table           tableRef
	parts           []string
	params          []any
	interpolate     bool
	quoteChar       string
	identifierQuote string
	literal         LiteralQuoter
	executor        Executor
	unboundedLimit  string
	assemble        func() error
}

func (b *base) push(parts ...string) {
	b.parts = append(b.parts, parts...)
}

func (b *base) bind(params ...any) {
	b.params = append(b.params, params...)
}

func (b *base) quote(name string) string {
	return dialect.QuoteIdentifier(b.identifierQuote, name)
}

func (b *base) pushTable() error {
	return b.pushTableWith(b.quote)
}

func (b *base) pushTableWith(quote func(string) string) error {
	if b.table.empty() {
		return fmt.Errorf("query: %w", ErrMissingTable)
	}
	if b.table.raw {
		b.push(b.table.expr.String())
	} else {
		b.push(quote(b.table.name))
	}
	return nil
}

// Render assembles the statement. The parameter list is nil when
// interpolation is enabled.
func (b *base) Render() (string, []any, error) {
	query, err := b.build()
	if err != nil {
		return "", nil, err
	}
	if !b.interpolate {
		return query, b.Params(), nil
	}

	query, err = Interpolate(query, b.params, b.literal)
	if err != nil {
		return "", nil, err
	}
	return query, nil, nil
}

// build assembles the parameterized form into fresh buffers, ignoring the
// interpolation setting. Subqueries are embedded this way so that their
// parameters are bound or interpolated once, by the outer statement.
func (b *base) build() (string, error) {
	b.parts = b.parts[:0]
	b.params = b.params[:0]
	if err := b.assemble(); err != nil {
		return "", err
	}
	return strings.Join(b.parts, " "), nil
}

// Describe renders the statement for diagnostics. Unlike Render it never
// fails: an error is reported inline.
func (b *base) Describe() string {
	query, _, err := b.Render()
	if err != nil {
		return fmt.Sprintf("!(%v)", err)
	}
	return query
}

// Execute renders the statement and hands it to the injected executor.
func (b *base) Execute(ctx context.Context) (any, error) {
	if b.executor == nil {
		return nil, fmt.Errorf("query: %w", ErrNoExecutor)
	}
	query, params, err := b.Render()
	if err != nil {
		return nil, err
	}
	return b.executor.Execute(ctx, query, params)
}

// Parts returns the fragments produced by the last Render.
func (b *base) Parts() []string {
	return append([]string(nil), b.parts...)
}

// Params returns the parameters bound by the last Render.
func (b *base) Params() []any {
	return append([]any(nil), b.params...)
}

func (b *base) Interpolating() bool {
	return b.interpolate
}

func (b *base) QuoteChar() string {
	return b.quoteChar
}

// statement adds the fluent configuration methods to each concrete kind.
type statement[T any] struct {
	base
	self T
}

func (s *statement[T]) init(self T, assemble func() error, opts []Option) {
	s.self = self
	s.assemble = assemble
	s.quoteChar = defaultQuoteChar
	s.identifierQuote = defaultIdentifierQuote
	s.unboundedLimit = defaultUnboundedLimit
	for _, opt := range opts {
		opt(&s.base)
	}
}

// Table sets the target table. Dotted names are quoted per segment.
func (s *statement[T]) Table(name string) T {
	s.table = tableRef{name: name}
	return s.self
}

// TableExpr sets a raw table reference that is rendered verbatim.
func (s *statement[T]) TableExpr(e Expression) T {
	s.table = tableRef{expr: e, raw: true}
	return s.self
}

func (s *statement[T]) Interpolation(on bool) T {
	s.interpolate = on
	return s.self
}

// Configure applies options after construction.
func (s *statement[T]) Configure(opts ...Option) T {
	for _, opt := range opts {
		opt(&s.base)
	}
	return s.self
}
