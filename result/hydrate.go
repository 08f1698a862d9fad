package result

import (
	"reflect"

	"github.com/Konsultn-Engineering/sqlkit/schema"
)

// One hydrates the next row into a new T and releases the cursor. ok is
// false when there are no rows.
func One[T any](r *Result) (row *T, ok bool, err error) {
	defer r.Release()
	return scanInto(r, func() *T { return new(T) })
}

// All hydrates every remaining row into a new T and releases the cursor.
func All[T any](r *Result) ([]*T, error) {
	return AllWith(r, func() *T { return new(T) })
}

// AllWith is All with a caller supplied constructor, for types that need
// fields set before columns are scanned into them.
func AllWith[T any](r *Result, factory func() *T) ([]*T, error) {
	if !r.Active() {
		return nil, ErrNoActiveResult
	}
	defer r.Release()

	var out []*T
	for {
		row, ok, err := scanInto(r, factory)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, row)
	}
}

func scanInto[T any](r *Result, factory func() *T) (*T, bool, error) {
	if !r.Active() {
		return nil, false, ErrNoActiveResult
	}
	meta, err := schema.Introspect[T]()
	if err != nil {
		return nil, false, err
	}
	cols, err := r.Columns()
	if err != nil {
		return nil, false, err
	}
	if !r.rows.Next() {
		return nil, false, r.rows.Err()
	}

	dest := factory()
	if err := r.rows.Scan(meta.ScanTargets(reflect.ValueOf(dest), cols)...); err != nil {
		return nil, false, err
	}
	return dest, true, nil
}
