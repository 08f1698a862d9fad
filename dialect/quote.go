package dialect

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// QuoteIdentifier doubles every occurrence of q inside name and then wraps
// each dot separated segment of name in q, so `db.table` becomes
// q+db+q + "." + q+table+q.
func QuoteIdentifier(q, name string) string {
	if q == "" {
		return name
	}
	escaped := strings.ReplaceAll(name, q, q+q)
	return q + strings.ReplaceAll(escaped, ".", q+"."+q) + q
}

// literalStyle holds the per-dialect knobs of literal rendering.
type literalStyle struct {
	quote     string
	backslash bool // escape backslashes as well as quotes
	bytes     func(b []byte) string
}

// QuoteString escapes s for use between two q characters and wraps it.
func QuoteString(q string, s string, backslash bool) string {
	if backslash && strings.Contains(s, `\`) {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	if q != "" && strings.Contains(s, q) {
		s = strings.ReplaceAll(s, q, q+q)
	}
	return q + s + q
}

func (ls literalStyle) render(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return QuoteString(ls.quote, val, ls.backslash)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return ls.quote + val.Format("2006-01-02 15:04:05.000000") + ls.quote
	case []byte:
		return ls.bytes(val)
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return QuoteString(ls.quote, fmt.Sprint(v), ls.backslash)
		}
		return ls.render(inner)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "NULL"
		}
		return ls.render(rv.Elem().Interface())
	}
	return QuoteString(ls.quote, fmt.Sprint(v), ls.backslash)
}

func hexLiteral(prefix, suffix string) func([]byte) string {
	return func(b []byte) string {
		return prefix + hex.EncodeToString(b) + suffix
	}
}
