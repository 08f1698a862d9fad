package query

import (
	"fmt"
	"strings"
)

// Interpolate replaces each '?' in query, left to right, with the literal
// form of the matching parameter. A query without parameters is returned
// unchanged even when quote is nil.
func Interpolate(query string, params []any, quote LiteralQuoter) (string, error) {
	if len(params) == 0 {
		return query, nil
	}
	if quote == nil {
		return "", fmt.Errorf("query: %w", ErrInterpolationUnavailable)
	}
	if n := strings.Count(query, "?"); n != len(params) {
		return "", fmt.Errorf("query: %w: %d placeholders, %d parameters", ErrParameterCountMismatch, n, len(params))
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8*len(params))
	i := 0
	for {
		idx := strings.IndexByte(query, '?')
		if idx < 0 {
			break
		}
		sb.WriteString(query[:idx])
		sb.WriteString(quote(params[i]))
		query = query[idx+1:]
		i++
	}
	sb.WriteString(query)
	return sb.String(), nil
}
