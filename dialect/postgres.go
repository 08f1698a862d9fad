package dialect

import "strconv"

// Postgres quotes identifiers with double quotes and uses numbered
// placeholders. Strings follow standard_conforming_strings, so backslashes
// are literal.
type Postgres struct {
	literals literalStyle
}

func NewPostgresDialect() Dialect {
	return &Postgres{
		literals: literalStyle{
			quote: "'",
			bytes: hexLiteral(`'\x`, "'::bytea"),
		},
	}
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) IdentifierQuote() string { return `"` }

func (p *Postgres) LiteralQuote() string { return p.literals.quote }

func (p *Postgres) QuoteIdentifier(name string) string {
	return QuoteIdentifier(p.IdentifierQuote(), name)
}

func (p *Postgres) QuoteLiteral(v any) string {
	return p.literals.render(v)
}

func (p *Postgres) UnboundedLimit() string { return "ALL" }

func (p *Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
