package query

import "strings"

// parseColumnString splits "table.column AS alias" into its parts. Any of
// the results can be empty.
func parseColumnString(spec string) (name, alias string) {
	spec = strings.TrimSpace(spec)
	if asIdx := indexAlias(spec); asIdx > 0 {
		alias = strings.TrimSpace(spec[asIdx+4:])
		spec = strings.TrimSpace(spec[:asIdx])
	}
	return spec, alias
}

// indexAlias finds " AS " in any letter case. Offsets are taken from spec
// itself, so multi-byte identifiers keep their boundaries.
func indexAlias(spec string) int {
	for i := 0; i+4 <= len(spec); i++ {
		if spec[i] == ' ' && spec[i+3] == ' ' && spec[i+1]|0x20 == 'a' && spec[i+2]|0x20 == 's' {
			return i
		}
	}
	return -1
}

// quoteColumn quotes a column or table spec, keeping "*" and "t.*" wildcards
// and an optional AS alias.
func (b *base) quoteColumn(spec string) string {
	name, alias := parseColumnString(spec)

	var quoted string
	switch {
	case name == "*":
		quoted = name
	case strings.HasSuffix(name, ".*"):
		quoted = b.quote(strings.TrimSuffix(name, ".*")) + ".*"
	default:
		quoted = b.quote(name)
	}

	if alias != "" {
		quoted += " AS " + b.quote(alias)
	}
	return quoted
}
