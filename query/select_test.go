package query

import (
	"testing"

	"github.com/Konsultn-Engineering/sqlkit/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRender(t *testing.T) {
	tests := []struct {
		name   string
		build  func() *Select
		sql    string
		params []any
	}{
		{
			name:  "DefaultColumns",
			build: func() *Select { return NewSelect().From("users") },
			sql:   "SELECT * FROM `users`",
		},
		{
			name: "ColumnsAndAliases",
			build: func() *Select {
				return NewSelect().Columns("id", "u.name AS n", "p.*").From("users AS u")
			},
			sql: "SELECT `id` , `u`.`name` AS `n` , `p`.* FROM `users` AS `u`",
		},
		{
			name:  "NonASCIIColumns",
			build: func() *Select { return NewSelect().Columns("ſſ AS x", "ɐɐɐɐɐ as y", "naïve").From("t") },
			sql:   "SELECT `ſſ` AS `x` , `ɐɐɐɐɐ` AS `y` , `naïve` FROM `t`",
		},
		{
			name:  "NonASCIITableAlias",
			build: func() *Select { return NewSelect().From("ſtraße aS s") },
			sql:   "SELECT * FROM `ſtraße` AS `s`",
		},
		{
			name:  "ExpressionTable",
			build: func() *Select { return NewSelect().TableExpr(Expr("(SELECT 1) t")) },
			sql:   "SELECT * FROM (SELECT 1) t",
		},
		{
			name: "ExistsSubqueries",
			build: func() *Select {
				orders := NewSelect().Columns("id").From("orders").WhereExpr(Expr("orders.user_id = users.id")).Where("state", "open")
				bans := NewSelect().Columns("id").From("bans").Where("kind", "hard")
				return NewSelect().From("users").WhereExists(orders).WhereNotExists(bans)
			},
			sql: "SELECT * FROM `users` WHERE EXISTS (SELECT `id` FROM `orders` WHERE orders.user_id = users.id AND `state` = ?) " +
				"AND NOT EXISTS (SELECT `id` FROM `bans` WHERE `kind` = ?)",
			params: []any{"open", "hard"},
		},
		{
			name:  "OffsetWithoutLimit",
			build: func() *Select { return NewSelect().From("t").Offset(5) },
			sql:   "SELECT * FROM `t` LIMIT 18446744073709551615 OFFSET 5",
		},
		{
			name:  "PostgresOffsetWithoutLimit",
			build: func() *Select { return NewSelect(WithDialect(dialect.NewPostgresDialect())).From("t").Offset(5) },
			sql:   `SELECT * FROM "t" LIMIT ALL OFFSET 5`,
		},
		{
			name: "Full",
			build: func() *Select {
				return NewSelect().
					Distinct().
					Columns("u.id").
					ColumnExpr(Expr("COUNT(o.id) AS orders")).
					From("users AS u").
					LeftJoin("orders AS o", Expr("o.user_id = u.id")).
					Where("u.active", true).
					GroupBy("u.id").
					Having(Expr("COUNT(o.id) > ?"), 3).
					OrderBy("u.id", Asc).
					Limit(10).
					Offset(20).
					ForUpdate()
			},
			sql: "SELECT DISTINCT `u`.`id` , COUNT(o.id) AS orders FROM `users` AS `u` " +
				"LEFT JOIN `orders` AS `o` ON o.user_id = u.id WHERE `u`.`active` = ? " +
				"GROUP BY `u`.`id` HAVING COUNT(o.id) > ? ORDER BY `u`.`id` ASC LIMIT 10 OFFSET 20 FOR UPDATE",
			params: []any{true, 3},
		},
		{
			name: "InList",
			build: func() *Select {
				return NewSelect().From("t").WhereIn("id", 1, 2, 3).WhereNotIn("state", "x")
			},
			sql:    "SELECT * FROM `t` WHERE `id` IN (?, ?, ?) AND `state` NOT IN (?)",
			params: []any{1, 2, 3, "x"},
		},
		{
			name:  "EmptyInList",
			build: func() *Select { return NewSelect().From("t").WhereIn("id").WhereNotIn("id") },
			sql:   "SELECT * FROM `t` WHERE FALSE AND TRUE",
		},
		{
			name: "OrBetweenNull",
			build: func() *Select {
				return NewSelect().From("t").
					WhereBetween("age", 18, 30).
					OrWhere("vip", 1).
					WhereIsNull("deleted_at")
			},
			sql:    "SELECT * FROM `t` WHERE `age` BETWEEN ? AND ? OR `vip` = ? AND `deleted_at` IS NULL",
			params: []any{18, 30, 1},
		},
		{
			name: "Subqueries",
			build: func() *Select {
				active := NewSelect().Columns("user_id").From("sessions").Where("active", 1)
				banned := NewSelect().Columns("id").From("bans").WhereExpr(Expr("bans.user_id = users.id"))
				return NewSelect().From("users").
					WhereInQuery("id", active).
					WhereNotExists(banned).
					Where("role", "admin")
			},
			sql: "SELECT * FROM `users` WHERE `id` IN (SELECT `user_id` FROM `sessions` WHERE `active` = ?) " +
				"AND NOT EXISTS (SELECT `id` FROM `bans` WHERE bans.user_id = users.id) AND `role` = ?",
			params: []any{1, "admin"},
		},
		{
			name: "LikeAndJoin",
			build: func() *Select {
				return NewSelect().From("a").
					Join("b", Expr("a.id = b.a_id")).
					RightJoin("c", Expr("c.id = b.c_id")).
					WhereOp("a.name", "like", "bo%")
			},
			sql: "SELECT * FROM `a` INNER JOIN `b` ON a.id = b.a_id RIGHT JOIN `c` ON c.id = b.c_id " +
				"WHERE `a`.`name` LIKE ?",
			params: []any{"bo%"},
		},
		{
			name:  "OrderByExpression",
			build: func() *Select { return NewSelect().From("t").OrderByExpr(Expr("RAND()")).OrderBy("id", "") },
			sql:   "SELECT * FROM `t` ORDER BY RAND() , `id` ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params, err := tt.build().Render()
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestSelectErrors(t *testing.T) {
	_, _, err := NewSelect().Columns("id").Render()
	assert.ErrorIs(t, err, ErrMissingTable)

	_, _, err = NewSelect().From("t").WhereExpr(Expr("a = ? AND b = ?"), 1).Render()
	assert.ErrorIs(t, err, ErrParameterCountMismatch)

	_, _, err = NewSelect().From("t").Having(Expr("SUM(x) > 1"), 1).Render()
	assert.ErrorIs(t, err, ErrParameterCountMismatch)

	_, _, err = NewSelect().From("t").Having(Expr(""), 1).Render()
	assert.ErrorIs(t, err, ErrParameterCountMismatch)

	_, _, err = NewSelect().From("t").WhereInQuery("id", NewSelect()).Render()
	assert.ErrorIs(t, err, ErrMissingTable)
}
