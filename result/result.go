// Package result reads rows produced by a SELECT.
package result

import (
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/sqlkit/database"
)

var (
	// ErrInvalidFetchMode is returned for a FetchMode outside the known set.
	ErrInvalidFetchMode = errors.New("result: invalid fetch mode")
	// ErrNoActiveResult is returned when reading from a released result.
	ErrNoActiveResult = errors.New("result: no active result")
)

// FetchMode selects the shape of each fetched row.
type FetchMode int

const (
	FetchAssoc  FetchMode = iota // map[string]any keyed by column
	FetchNum                     // []any in column order
	FetchColumn                  // a single column value
	FetchObject                  // a struct, see One and All
)

func (m FetchMode) valid() bool {
	return m >= FetchAssoc && m <= FetchObject
}

func (m FetchMode) String() string {
	switch m {
	case FetchAssoc:
		return "assoc"
	case FetchNum:
		return "num"
	case FetchColumn:
		return "column"
	case FetchObject:
		return "object"
	default:
		return fmt.Sprintf("FetchMode(%d)", int(m))
	}
}

// Result wraps an open cursor. FetchRow and FetchAll release it, after
// which every fetch fails with ErrNoActiveResult.
type Result struct {
	rows    database.Rows
	columns []string
	mode    FetchMode
	column  int
}

// New takes ownership of rows.
func New(rows database.Rows) *Result {
	return &Result{rows: rows, mode: FetchAssoc}
}

// SetFetchMode selects the row shape for Fetch, FetchRow and FetchAll.
func (r *Result) SetFetchMode(mode FetchMode) error {
	if !mode.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFetchMode, int(mode))
	}
	r.mode = mode
	return nil
}

// SetFetchColumn selects which column FetchColumn returns.
func (r *Result) SetFetchColumn(index int) {
	r.column = index
}

func (r *Result) FetchMode() FetchMode {
	return r.mode
}

// Active reports whether the cursor is still open.
func (r *Result) Active() bool {
	return r.rows != nil
}

func (r *Result) Columns() ([]string, error) {
	if r.rows == nil {
		return nil, ErrNoActiveResult
	}
	if r.columns == nil {
		cols, err := r.rows.Columns()
		if err != nil {
			return nil, err
		}
		r.columns = cols
	}
	return r.columns, nil
}

// Fetch returns the next row in the current mode, or nil at the end of
// the result. The cursor is left open.
func (r *Result) Fetch() (any, error) {
	row, _, err := r.next()
	return row, err
}

// next separates the end of the result from a NULL value in column mode.
func (r *Result) next() (any, bool, error) {
	if r.rows == nil {
		return nil, false, ErrNoActiveResult
	}
	if r.mode == FetchObject {
		return nil, false, fmt.Errorf("%w: object rows are read with One or All", ErrInvalidFetchMode)
	}
	if !r.rows.Next() {
		return nil, false, r.rows.Err()
	}
	row, err := r.scan()
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

// FetchRow returns the first row and releases the cursor.
func (r *Result) FetchRow() (any, error) {
	defer r.Release()
	return r.Fetch()
}

// FetchAll returns every remaining row and releases the cursor.
func (r *Result) FetchAll() ([]any, error) {
	if r.rows == nil {
		return nil, ErrNoActiveResult
	}
	defer r.Release()

	var out []any
	for {
		row, ok, err := r.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, row)
	}
}

// Release closes the cursor. It is safe to call more than once.
func (r *Result) Release() error {
	if r.rows == nil {
		return nil
	}
	err := r.rows.Close()
	r.rows = nil
	return err
}

func (r *Result) scan() (any, error) {
	cols, err := r.Columns()
	if err != nil {
		return nil, err
	}
	vals, err := r.scanValues(len(cols))
	if err != nil {
		return nil, err
	}

	switch r.mode {
	case FetchNum:
		return vals, nil
	case FetchColumn:
		if r.column < 0 || r.column >= len(vals) {
			return nil, fmt.Errorf("result: column index %d out of range", r.column)
		}
		return vals[r.column], nil
	default:
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		return row, nil
	}
}

func (r *Result) scanValues(n int) ([]any, error) {
	vals := make([]any, n)
	ptrs := make([]any, n)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}
	return vals, nil
}
