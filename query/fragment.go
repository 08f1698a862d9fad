package query

import (
	"fmt"
	"sort"
)

type assignmentKind uint8

const (
	keyedAssignment assignmentKind = iota
	rawAssignment
)

// Assignment is one entry of a SET or ON DUPLICATE KEY UPDATE list: either a
// column bound to a value or a raw expression emitted as is.
type Assignment struct {
	kind   assignmentKind
	column string
	value  any
	expr   Expression
}

// Assign binds column to v. An Expression value is emitted verbatim instead
// of being parameterized.
func Assign(column string, v any) Assignment {
	return Assignment{kind: keyedAssignment, column: column, value: v}
}

// Raw is a positional assignment such as Expr("`hits` = `hits` + 1").
func Raw(e Expression) Assignment {
	return Assignment{kind: rawAssignment, expr: e}
}

// valueList keeps assignments in insertion order. Setting a column that is
// already present replaces its value in place.
type valueList struct {
	entries []Assignment
	index   map[string]int
}

func (l *valueList) add(a Assignment) {
	if a.kind == rawAssignment {
		l.entries = append(l.entries, a)
		return
	}
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[a.column]; ok {
		l.entries[i] = a
		return
	}
	l.index[a.column] = len(l.entries)
	l.entries = append(l.entries, a)
}

func (l *valueList) reset() {
	l.entries = nil
	l.index = nil
}

// replaceMap swaps the list for m. Keys are sorted to give maps a stable
// rendering order.
func (l *valueList) replaceMap(m map[string]any) {
	l.reset()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		l.add(Assign(k, m[k]))
	}
}

func (l *valueList) replace(as []Assignment) {
	l.reset()
	for _, a := range as {
		l.add(a)
	}
}

func (l *valueList) len() int {
	return len(l.entries)
}

// pushValues emits `col` = ? pairs separated by "," fragments. It is shared
// by INSERT ... SET, UPDATE ... SET and ON DUPLICATE KEY UPDATE.
func (b *base) pushValues(l *valueList) error {
	if l.len() == 0 {
		return fmt.Errorf("query: %w", ErrMissingValues)
	}
	for i, a := range l.entries {
		if i > 0 {
			b.push(",")
		}
		if a.kind == rawAssignment {
			b.push(a.expr.String())
			continue
		}
		b.push(b.quote(a.column), "=")
		if e, ok := a.value.(Expression); ok {
			b.push(e.String())
			continue
		}
		b.push("?")
		b.bind(a.value)
	}
	return nil
}
