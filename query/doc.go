// Package query assembles INSERT, UPDATE, DELETE and SELECT statements from
// a fluent mutation API.
//
// A statement accumulates ordered SQL fragments and bound parameters on each
// Render call and joins the fragments with single spaces:
//
//	q := query.NewInsert().
//		Table("users").
//		Value("name", "bob").
//		Value("age", 42)
//	sql, params, err := q.Render()
//	// INSERT INTO `users` SET `name` = ? , `age` = ?   [bob 42]
//
// Values wrapped in an Expression are emitted verbatim and never
// parameterized. With interpolation enabled, Render substitutes every
// parameter through the configured literal quoter and returns SQL with no
// placeholders.
//
// Statements are not safe for concurrent use: every Render rebuilds the
// fragment and parameter buffers owned by the instance.
package query
