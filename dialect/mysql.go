package dialect

// MySQL quotes identifiers with backticks and strings with single quotes,
// escaping backslashes inside strings.
type MySQL struct {
	literals literalStyle
}

func NewMySQLDialect() Dialect {
	return newMySQL()
}

func newMySQL() *MySQL {
	return &MySQL{
		literals: literalStyle{
			quote:     "'",
			backslash: true,
			bytes:     hexLiteral("X'", "'"),
		},
	}
}

func (m *MySQL) Name() string { return "mysql" }

func (m *MySQL) IdentifierQuote() string { return "`" }

func (m *MySQL) LiteralQuote() string { return m.literals.quote }

func (m *MySQL) QuoteIdentifier(name string) string {
	return QuoteIdentifier(m.IdentifierQuote(), name)
}

func (m *MySQL) QuoteLiteral(v any) string {
	return m.literals.render(v)
}

// UnboundedLimit is the largest LIMIT MySQL accepts; it has no LIMIT ALL.
func (m *MySQL) UnboundedLimit() string { return "18446744073709551615" }

func (m *MySQL) Placeholder(n int) string {
	return "?"
}
