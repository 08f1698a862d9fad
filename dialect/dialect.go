package dialect

import "fmt"

// Dialect describes how one SQL flavour quotes identifiers and literals.
type Dialect interface {
	Name() string
	// IdentifierQuote is the character wrapped around identifiers.
	IdentifierQuote() string
	// LiteralQuote is the character wrapped around string literals.
	LiteralQuote() string
	QuoteIdentifier(name string) string
	// QuoteLiteral renders v as a self-contained SQL literal.
	QuoteLiteral(v any) string
	Placeholder(n int) string
	// UnboundedLimit is the LIMIT operand meaning "no limit", needed when
	// an OFFSET is given without a LIMIT.
	UnboundedLimit() string
}

// ByName returns the dialect registered under name.
func ByName(name string) (Dialect, error) {
	switch name {
	case "mysql", "mariadb":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	}
	return nil, fmt.Errorf("dialect: unknown dialect %q", name)
}
