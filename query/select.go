package query

import "fmt"

type joinKind string

const (
	innerJoin joinKind = "INNER JOIN"
	leftJoin  joinKind = "LEFT JOIN"
	rightJoin joinKind = "RIGHT JOIN"
)

type join struct {
	kind  joinKind
	table string
	on    Expression
}

type column struct {
	spec string
	expr Expression
	raw  bool
}

// Select renders
//
//	SELECT [DISTINCT] cols FROM t [joins] [WHERE] [GROUP BY] [HAVING]
//	[ORDER BY] [LIMIT] [OFFSET] [FOR UPDATE]
//
// Columns default to *.
type Select struct {
	statement[*Select]
	filter[*Select]
	columns      []column
	distinct     bool
	joins        []join
	groupBy      []string
	having       Expression
	havingParams []any
	forUpdate    bool
}

func NewSelect(opts ...Option) *Select {
	s := &Select{}
	s.init(s, s.assembleSelect, opts)
	s.owner = s
	return s
}

// Columns appends column specs such as "id", "u.name" or "name AS n".
func (s *Select) Columns(specs ...string) *Select {
	for _, spec := range specs {
		s.columns = append(s.columns, column{spec: spec})
	}
	return s
}

// ColumnExpr appends a raw select term such as Expr("COUNT(*)").
func (s *Select) ColumnExpr(e Expression) *Select {
	s.columns = append(s.columns, column{expr: e, raw: true})
	return s
}

func (s *Select) Distinct() *Select {
	s.distinct = true
	return s
}

// From is an alias for Table.
func (s *Select) From(table string) *Select {
	return s.Table(table)
}

// Join adds an INNER JOIN. on is emitted verbatim.
func (s *Select) Join(table string, on Expression) *Select {
	s.joins = append(s.joins, join{kind: innerJoin, table: table, on: on})
	return s
}

func (s *Select) LeftJoin(table string, on Expression) *Select {
	s.joins = append(s.joins, join{kind: leftJoin, table: table, on: on})
	return s
}

func (s *Select) RightJoin(table string, on Expression) *Select {
	s.joins = append(s.joins, join{kind: rightJoin, table: table, on: on})
	return s
}

func (s *Select) GroupBy(columns ...string) *Select {
	s.groupBy = append(s.groupBy, columns...)
	return s
}

// Having sets a raw HAVING condition. Its '?' count must match len(params).
func (s *Select) Having(e Expression, params ...any) *Select {
	s.having = e
	s.havingParams = params
	return s
}

func (s *Select) ForUpdate() *Select {
	s.forUpdate = true
	return s
}

func (s *Select) assembleSelect() error {
	s.push("SELECT")
	if s.distinct {
		s.push("DISTINCT")
	}

	if len(s.columns) == 0 {
		s.push("*")
	}
	for i, c := range s.columns {
		if i > 0 {
			s.push(",")
		}
		if c.raw {
			s.push(c.expr.String())
		} else {
			s.push(s.quoteColumn(c.spec))
		}
	}

	s.push("FROM")
	if err := s.pushTableWith(s.quoteColumn); err != nil {
		return err
	}

	for _, j := range s.joins {
		s.push(string(j.kind), s.quoteColumn(j.table), "ON", j.on.String())
	}

	if err := s.pushWhere(&s.base); err != nil {
		return err
	}

	if len(s.groupBy) > 0 {
		s.push("GROUP BY")
		for i, g := range s.groupBy {
			if i > 0 {
				s.push(",")
			}
			s.push(s.quote(g))
		}
	}

	if s.having.IsZero() && len(s.havingParams) > 0 {
		return fmt.Errorf("query: %w: HAVING has no expression for %d parameters",
			ErrParameterCountMismatch, len(s.havingParams))
	}
	if !s.having.IsZero() {
		s.push("HAVING")
		if err := pushCondition(&s.base, condition{kind: condExpr, expr: s.having, args: s.havingParams}); err != nil {
			return err
		}
	}

	s.pushOrder(&s.base)
	s.pushLimit(&s.base, true)

	if s.forUpdate {
		s.push("FOR UPDATE")
	}
	return nil
}
