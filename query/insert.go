package query

// Insert renders INSERT (or REPLACE) ... SET statements with an optional
// ON DUPLICATE KEY UPDATE clause.
type Insert struct {
	statement[*Insert]
	values     valueList
	duplicates valueList
	replace    bool
	delayed    bool
	ignore     bool
}

func NewInsert(opts ...Option) *Insert {
	i := &Insert{}
	i.init(i, i.assembleInsert, opts)
	return i
}

// Into is an alias for Table.
func (i *Insert) Into(table string) *Insert {
	return i.Table(table)
}

// Value sets column to v, replacing any earlier value for column.
func (i *Insert) Value(column string, v any) *Insert {
	i.values.add(Assign(column, v))
	return i
}

// ValueExpr appends a positional raw assignment.
func (i *Insert) ValueExpr(e Expression) *Insert {
	i.values.add(Raw(e))
	return i
}

// Values replaces all values with m, rendered in key order.
func (i *Insert) Values(m map[string]any) *Insert {
	i.values.replaceMap(m)
	return i
}

// Assignments replaces all values, keeping the given order.
func (i *Insert) Assignments(as ...Assignment) *Insert {
	i.values.replace(as)
	return i
}

// Set is an alias for Value.
func (i *Insert) Set(column string, v any) *Insert {
	return i.Value(column, v)
}

// SetMap is an alias for Values.
func (i *Insert) SetMap(m map[string]any) *Insert {
	return i.Values(m)
}

func (i *Insert) Replace(on bool) *Insert {
	i.replace = on
	return i
}

func (i *Insert) Delayed(on bool) *Insert {
	i.delayed = on
	return i
}

// Ignore adds IGNORE. It has no effect on a REPLACE statement.
func (i *Insert) Ignore(on bool) *Insert {
	i.ignore = on
	return i
}

func (i *Insert) OnDuplicateKeyUpdate(column string, v any) *Insert {
	i.duplicates.add(Assign(column, v))
	return i
}

func (i *Insert) OnDuplicateKeyUpdateExpr(e Expression) *Insert {
	i.duplicates.add(Raw(e))
	return i
}

// OnDuplicateKeyUpdateValues replaces the update list with m, rendered in
// key order.
func (i *Insert) OnDuplicateKeyUpdateValues(m map[string]any) *Insert {
	i.duplicates.replaceMap(m)
	return i
}

func (i *Insert) assembleInsert() error {
	if i.replace {
		i.push("REPLACE")
	} else {
		i.push("INSERT")
	}
	if i.delayed {
		i.push("DELAYED")
	}
	if i.ignore && !i.replace {
		i.push("IGNORE")
	}

	i.push("INTO")
	if err := i.pushTable(); err != nil {
		return err
	}

	i.push("SET")
	if err := i.pushValues(&i.values); err != nil {
		return err
	}

	if i.duplicates.len() > 0 {
		i.push("ON DUPLICATE KEY UPDATE")
		if err := i.pushValues(&i.duplicates); err != nil {
			return err
		}
	}
	return nil
}
