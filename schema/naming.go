package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

var pluralizeClient = pluralizer.NewClient()

// NamingStrategy maps Go identifiers to column and table names.
type NamingStrategy interface {
	ColumnName(fieldName string) string
	TableName(structName string) string
}

// Case is an identifier convention.
type Case int

const (
	SnakeCase  Case = iota // user_id, blog_posts
	CamelCase              // userId, blogPosts
	PascalCase             // UserId, BlogPosts
)

func (c Case) apply(name string) string {
	switch c {
	case CamelCase:
		return toCamelCase(name)
	case PascalCase:
		return toPascalCase(name)
	default:
		return toSnakeCase(name)
	}
}

type namingStrategy struct {
	columns      Case
	tables       Case
	pluralTables bool
}

// NewNamingStrategy combines a column convention with a table convention.
func NewNamingStrategy(columns, tables Case, pluralTables bool) NamingStrategy {
	return namingStrategy{columns: columns, tables: tables, pluralTables: pluralTables}
}

// DefaultNamingStrategy gives snake_case columns and plural snake_case tables.
func DefaultNamingStrategy() NamingStrategy {
	return NewNamingStrategy(SnakeCase, SnakeCase, true)
}

func (s namingStrategy) ColumnName(fieldName string) string {
	return s.columns.apply(fieldName)
}

func (s namingStrategy) TableName(structName string) string {
	name := s.tables.apply(structName)
	if s.pluralTables {
		return pluralize(name)
	}
	return name
}

// toSnakeCase converts any naming convention to snake_case. Acronym runs
// are kept together: HTTPServer -> http_server, UserID -> user_id.
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	var result strings.Builder
	result.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

func toCamelCase(name string) string {
	pascal := toPascalCase(name)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func toPascalCase(name string) string {
	parts := strings.Split(toSnakeCase(name), "_")

	var result strings.Builder
	result.Grow(len(name))
	for _, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		result.WriteString(string(runes))
	}
	return result.String()
}

// pluralize pluralizes the last word of name.
func pluralize(name string) string {
	if name == "" {
		return ""
	}
	cut := strings.LastIndexFunc(name, func(r rune) bool { return r == '_' || unicode.IsUpper(r) })
	if cut < 0 {
		return preserveCase(name, pluralizeClient.Plural(name))
	}
	head, last := name[:cut], name[cut:]
	if last[0] == '_' {
		return head + "_" + preserveCase(last[1:], pluralizeClient.Plural(last[1:]))
	}
	return head + preserveCase(last, pluralizeClient.Plural(last))
}

func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// preserveCase copies the case pattern of original onto result.
func preserveCase(original, result string) string {
	if original == "" || result == "" {
		return result
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(result)
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(result)
	}
	if unicode.IsUpper(rune(original[0])) {
		return strings.ToUpper(result[:1]) + strings.ToLower(result[1:])
	}
	return strings.ToLower(result)
}
