package query

// Update renders UPDATE ... SET ... [WHERE] [ORDER BY] [LIMIT].
type Update struct {
	statement[*Update]
	filter[*Update]
	values valueList
}

func NewUpdate(opts ...Option) *Update {
	u := &Update{}
	u.init(u, u.assembleUpdate, opts)
	u.owner = u
	return u
}

// UpdateTable sets the table and, when values is not empty, replaces the
// values as Values does.
func (u *Update) UpdateTable(table string, values map[string]any) *Update {
	u.Table(table)
	if len(values) > 0 {
		u.Values(values)
	}
	return u
}

// Value sets column to v, replacing any earlier value for column.
func (u *Update) Value(column string, v any) *Update {
	u.values.add(Assign(column, v))
	return u
}

// ValueExpr appends a positional raw assignment.
func (u *Update) ValueExpr(e Expression) *Update {
	u.values.add(Raw(e))
	return u
}

// Values replaces all values with m, rendered in key order.
func (u *Update) Values(m map[string]any) *Update {
	u.values.replaceMap(m)
	return u
}

func (u *Update) Assignments(as ...Assignment) *Update {
	u.values.replace(as)
	return u
}

func (u *Update) Set(column string, v any) *Update {
	return u.Value(column, v)
}

func (u *Update) SetMap(m map[string]any) *Update {
	return u.Values(m)
}

func (u *Update) assembleUpdate() error {
	u.push("UPDATE")
	if err := u.pushTable(); err != nil {
		return err
	}
	u.push("SET")
	if err := u.pushValues(&u.values); err != nil {
		return err
	}
	if err := u.pushWhere(&u.base); err != nil {
		return err
	}
	u.pushOrder(&u.base)
	u.pushLimit(&u.base, false)
	return nil
}
