package query

// Expression is raw SQL text. It is rendered verbatim: never quoted as an
// identifier and never bound as a parameter.
type Expression struct {
	sql string
}

// Expr marks sql as raw SQL.
func Expr(sql string) Expression {
	return Expression{sql: sql}
}

func (e Expression) String() string {
	return e.sql
}

// IsZero reports whether the expression carries no text.
func (e Expression) IsZero() bool {
	return e.sql == ""
}
