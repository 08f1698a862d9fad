package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRender(t *testing.T) {
	tests := []struct {
		name   string
		build  func() *Insert
		sql    string
		params []any
	}{
		{
			name:   "TwoValues",
			build:  func() *Insert { return NewInsert().Table("t").Value("a", 1).Value("b", 2) },
			sql:    "INSERT INTO `t` SET `a` = ? , `b` = ?",
			params: []any{1, 2},
		},
		{
			name:   "ReplaceSuppressesIgnore",
			build:  func() *Insert { return NewInsert().Table("t").Value("a", 1).Replace(true).Ignore(true) },
			sql:    "REPLACE INTO `t` SET `a` = ?",
			params: []any{1},
		},
		{
			name:   "Ignore",
			build:  func() *Insert { return NewInsert().Table("t").Value("a", 1).Ignore(true) },
			sql:    "INSERT IGNORE INTO `t` SET `a` = ?",
			params: []any{1},
		},
		{
			name:   "DelayedIgnore",
			build:  func() *Insert { return NewInsert().Table("t").Value("a", 1).Delayed(true).Ignore(true) },
			sql:    "INSERT DELAYED IGNORE INTO `t` SET `a` = ?",
			params: []any{1},
		},
		{
			name: "OnDuplicateKeyUpdateExpression",
			build: func() *Insert {
				return NewInsert().Table("t").Value("a", 1).OnDuplicateKeyUpdate("a", Expr("a+1"))
			},
			sql:    "INSERT INTO `t` SET `a` = ? ON DUPLICATE KEY UPDATE `a` = a+1",
			params: []any{1},
		},
		{
			name: "OnDuplicateKeyUpdateParams",
			build: func() *Insert {
				return NewInsert().Table("t").Value("a", 1).Value("b", 2).
					OnDuplicateKeyUpdate("b", 3).
					OnDuplicateKeyUpdateExpr(Expr("`hits` = `hits` + 1"))
			},
			sql:    "INSERT INTO `t` SET `a` = ? , `b` = ? ON DUPLICATE KEY UPDATE `b` = ? , `hits` = `hits` + 1",
			params: []any{1, 2, 3},
		},
		{
			name:   "PositionalExpression",
			build:  func() *Insert { return NewInsert().Table("t").Value("a", 1).ValueExpr(Expr("`b` = NOW()")) },
			sql:    "INSERT INTO `t` SET `a` = ? , `b` = NOW()",
			params: []any{1},
		},
		{
			name:   "ExpressionValue",
			build:  func() *Insert { return NewInsert().Table("t").Value("created", Expr("NOW()")) },
			sql:    "INSERT INTO `t` SET `created` = NOW()",
			params: nil,
		},
		{
			name:   "MapSortedByKey",
			build:  func() *Insert { return NewInsert().Into("t").Values(map[string]any{"b": 2, "a": 1}) },
			sql:    "INSERT INTO `t` SET `a` = ? , `b` = ?",
			params: []any{1, 2},
		},
		{
			name: "AssignmentsKeepOrder",
			build: func() *Insert {
				return NewInsert().Into("t").Assignments(Assign("b", 2), Assign("a", 1))
			},
			sql:    "INSERT INTO `t` SET `b` = ? , `a` = ?",
			params: []any{2, 1},
		},
		{
			name:   "SetReplacesInPlace",
			build:  func() *Insert { return NewInsert().Table("t").Set("a", 1).Set("b", 2).Set("a", 3) },
			sql:    "INSERT INTO `t` SET `a` = ? , `b` = ?",
			params: []any{3, 2},
		},
		{
			name:   "NilValueIsBound",
			build:  func() *Insert { return NewInsert().Table("t").Value("a", nil) },
			sql:    "INSERT INTO `t` SET `a` = ?",
			params: []any{nil},
		},
		{
			name:   "DottedTable",
			build:  func() *Insert { return NewInsert().Table("db.t").Value("a", 1) },
			sql:    "INSERT INTO `db`.`t` SET `a` = ?",
			params: []any{1},
		},
		{
			name:   "ExpressionTableVerbatim",
			build:  func() *Insert { return NewInsert().TableExpr(Expr("db.t")).Value("a", 1) },
			sql:    "INSERT INTO db.t SET `a` = ?",
			params: []any{1},
		},
		{
			name:   "QuoteCharInIdentifier",
			build:  func() *Insert { return NewInsert().Table("t").Value("a`b", 1) },
			sql:    "INSERT INTO `t` SET `a``b` = ?",
			params: []any{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params, err := tt.build().Render()
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.params, params)
			assert.Equal(t, len(params), countPlaceholders(sql))
		})
	}
}

func TestInsertErrors(t *testing.T) {
	_, _, err := NewInsert().Value("a", 1).Render()
	assert.ErrorIs(t, err, ErrMissingTable)

	_, _, err = NewInsert().Table("t").Render()
	assert.ErrorIs(t, err, ErrMissingValues)

	_, _, err = NewInsert().Table("t").Values(map[string]any{}).Render()
	assert.ErrorIs(t, err, ErrMissingValues)
}

func TestInsertIgnoreWithoutValuesStillFails(t *testing.T) {
	_, _, err := NewInsert().Table("t").Ignore(true).Replace(true).Render()
	assert.ErrorIs(t, err, ErrMissingValues)
}
