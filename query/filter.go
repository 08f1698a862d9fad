package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Comparison operators accepted by WhereOp.
const (
	OpEq      = "="
	OpNotEq   = "!="
	OpNe      = "<>"
	OpLt      = "<"
	OpLte     = "<="
	OpGt      = ">"
	OpGte     = ">="
	OpLike    = "LIKE"
	OpNotLike = "NOT LIKE"
)

var comparisonOps = map[string]struct{}{
	OpEq: {}, OpNotEq: {}, OpNe: {}, OpLt: {}, OpLte: {},
	OpGt: {}, OpGte: {}, OpLike: {}, OpNotLike: {},
}

// Order is an ORDER BY direction.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

type conditionKind uint8

const (
	condCompare conditionKind = iota
	condIn
	condNotIn
	condIsNull
	condIsNotNull
	condBetween
	condNotBetween
	condExpr
	condInQuery
	condExists
	condNotExists
)

type condition struct {
	kind   conditionKind
	or     bool
	column string
	op     string
	args   []any
	expr   Expression
	sub    *Select
}

type ordering struct {
	column string
	expr   Expression
	raw    bool
	dir    Order
}

// filter is the WHERE / ORDER BY / LIMIT layer shared by UPDATE, DELETE and
// SELECT.
type filter[T any] struct {
	owner     T
	where     []condition
	orders    []ordering
	limit     int
	hasLimit  bool
	offset    int
	hasOffset bool
}

func (f *filter[T]) add(c condition) T {
	f.where = append(f.where, c)
	return f.owner
}

// Where adds `column` = ?.
func (f *filter[T]) Where(column string, v any) T {
	return f.add(condition{kind: condCompare, column: column, op: OpEq, args: []any{v}})
}

// OrWhere is Where joined with OR.
func (f *filter[T]) OrWhere(column string, v any) T {
	return f.add(condition{kind: condCompare, or: true, column: column, op: OpEq, args: []any{v}})
}

// WhereOp adds `column` op ?. Unknown operators fail at render time.
func (f *filter[T]) WhereOp(column, op string, v any) T {
	return f.add(condition{kind: condCompare, column: column, op: strings.ToUpper(op), args: []any{v}})
}

func (f *filter[T]) OrWhereOp(column, op string, v any) T {
	return f.add(condition{kind: condCompare, or: true, column: column, op: strings.ToUpper(op), args: []any{v}})
}

// WhereIn adds `column` IN (?, ...). An empty list matches nothing.
func (f *filter[T]) WhereIn(column string, values ...any) T {
	return f.add(condition{kind: condIn, column: column, args: values})
}

// WhereNotIn adds `column` NOT IN (?, ...). An empty list matches everything.
func (f *filter[T]) WhereNotIn(column string, values ...any) T {
	return f.add(condition{kind: condNotIn, column: column, args: values})
}

// WhereInQuery adds `column` IN (subquery), merging the subquery parameters.
func (f *filter[T]) WhereInQuery(column string, sub *Select) T {
	return f.add(condition{kind: condInQuery, column: column, sub: sub})
}

func (f *filter[T]) WhereExists(sub *Select) T {
	return f.add(condition{kind: condExists, sub: sub})
}

func (f *filter[T]) WhereNotExists(sub *Select) T {
	return f.add(condition{kind: condNotExists, sub: sub})
}

func (f *filter[T]) WhereIsNull(column string) T {
	return f.add(condition{kind: condIsNull, column: column})
}

func (f *filter[T]) WhereIsNotNull(column string) T {
	return f.add(condition{kind: condIsNotNull, column: column})
}

func (f *filter[T]) WhereBetween(column string, low, high any) T {
	return f.add(condition{kind: condBetween, column: column, args: []any{low, high}})
}

func (f *filter[T]) WhereNotBetween(column string, low, high any) T {
	return f.add(condition{kind: condNotBetween, column: column, args: []any{low, high}})
}

// WhereExpr adds a raw condition. Its '?' count must match len(params).
func (f *filter[T]) WhereExpr(e Expression, params ...any) T {
	return f.add(condition{kind: condExpr, expr: e, args: params})
}

func (f *filter[T]) OrWhereExpr(e Expression, params ...any) T {
	return f.add(condition{kind: condExpr, or: true, expr: e, args: params})
}

// OrderBy appends column in direction dir.
func (f *filter[T]) OrderBy(column string, dir Order) T {
	f.orders = append(f.orders, ordering{column: column, dir: dir})
	return f.owner
}

// OrderByExpr appends a raw ordering term.
func (f *filter[T]) OrderByExpr(e Expression) T {
	f.orders = append(f.orders, ordering{expr: e, raw: true})
	return f.owner
}

func (f *filter[T]) Limit(n int) T {
	f.limit, f.hasLimit = n, true
	return f.owner
}

// Offset is rendered by SELECT only.
func (f *filter[T]) Offset(n int) T {
	f.offset, f.hasOffset = n, true
	return f.owner
}

func (f *filter[T]) pushWhere(b *base) error {
	if len(f.where) == 0 {
		return nil
	}
	b.push("WHERE")
	for i, c := range f.where {
		if i > 0 {
			if c.or {
				b.push("OR")
			} else {
				b.push("AND")
			}
		}
		if err := pushCondition(b, c); err != nil {
			return err
		}
	}
	return nil
}

func pushCondition(b *base, c condition) error {
	switch c.kind {
	case condCompare:
		if _, ok := comparisonOps[c.op]; !ok {
			return fmt.Errorf("query: unsupported operator %q", c.op)
		}
		b.push(b.quote(c.column), c.op)
		pushOperand(b, c.args[0])
	case condIn, condNotIn:
		if len(c.args) == 0 {
			if c.kind == condIn {
				b.push("FALSE")
			} else {
				b.push("TRUE")
			}
			return nil
		}
		b.push(b.quote(c.column))
		if c.kind == condIn {
			b.push("IN")
		} else {
			b.push("NOT IN")
		}
		b.push("(" + strings.TrimSuffix(strings.Repeat("?, ", len(c.args)), ", ") + ")")
		b.bind(c.args...)
	case condIsNull:
		b.push(b.quote(c.column), "IS NULL")
	case condIsNotNull:
		b.push(b.quote(c.column), "IS NOT NULL")
	case condBetween, condNotBetween:
		b.push(b.quote(c.column))
		if c.kind == condBetween {
			b.push("BETWEEN")
		} else {
			b.push("NOT BETWEEN")
		}
		pushOperand(b, c.args[0])
		b.push("AND")
		pushOperand(b, c.args[1])
	case condExpr:
		if n := strings.Count(c.expr.String(), "?"); n != len(c.args) {
			return fmt.Errorf("query: %w: %d placeholders, %d parameters", ErrParameterCountMismatch, n, len(c.args))
		}
		b.push(c.expr.String())
		b.bind(c.args...)
	case condInQuery, condExists, condNotExists:
		sql, err := c.sub.build()
		if err != nil {
			return err
		}
		switch c.kind {
		case condInQuery:
			b.push(b.quote(c.column), "IN")
		case condExists:
			b.push("EXISTS")
		default:
			b.push("NOT EXISTS")
		}
		b.push("(" + sql + ")")
		b.bind(c.sub.params...)
	}
	return nil
}

func pushOperand(b *base, v any) {
	if e, ok := v.(Expression); ok {
		b.push(e.String())
		return
	}
	b.push("?")
	b.bind(v)
}

func (f *filter[T]) pushOrder(b *base) {
	if len(f.orders) == 0 {
		return
	}
	b.push("ORDER BY")
	for i, o := range f.orders {
		if i > 0 {
			b.push(",")
		}
		if o.raw {
			b.push(o.expr.String())
			continue
		}
		dir := o.dir
		if dir != Desc {
			dir = Asc
		}
		b.push(b.quote(o.column), string(dir))
	}
}

// pushLimit renders LIMIT and, when withOffset is set, OFFSET. An OFFSET
// without a LIMIT is preceded by the dialect's unbounded LIMIT.
func (f *filter[T]) pushLimit(b *base, withOffset bool) {
	offset := withOffset && f.hasOffset
	switch {
	case f.hasLimit:
		b.push("LIMIT", strconv.Itoa(f.limit))
	case offset:
		b.push("LIMIT", b.unboundedLimit)
	}
	if offset {
		b.push("OFFSET", strconv.Itoa(f.offset))
	}
}
