package query

// Delete renders DELETE FROM ... [WHERE] [ORDER BY] [LIMIT].
type Delete struct {
	statement[*Delete]
	filter[*Delete]
}

func NewDelete(opts ...Option) *Delete {
	d := &Delete{}
	d.init(d, d.assembleDelete, opts)
	d.owner = d
	return d
}

// From is an alias for Table.
func (d *Delete) From(table string) *Delete {
	return d.Table(table)
}

func (d *Delete) assembleDelete() error {
	d.push("DELETE FROM")
	if err := d.pushTable(); err != nil {
		return err
	}
	if err := d.pushWhere(&d.base); err != nil {
		return err
	}
	d.pushOrder(&d.base)
	d.pushLimit(&d.base, false)
	return nil
}
