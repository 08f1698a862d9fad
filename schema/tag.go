package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ParsedTag is the parsed form of a `db` struct tag.
type ParsedTag struct {
	ColumnName string
	Skip       bool
	Primary    bool
	Unique     bool
	ReadOnly   bool // selected but never written
	Default    string

	AutoNowAdd bool // set to the current time on insert
	AutoNow    bool // set to the current time on insert and update

	AutoGenerate bool
	Generator    string
}

// TagParser parses and caches struct tags.
//
// Supported syntax:
//
//	`db:"column_name"`
//	`db:"column:custom_name;primary"`
//	`db:"primary;generator:ulid"`
//	`db:"created_at;auto_now_add"`
//	`db:"-"`
type TagParser struct {
	tagName        string
	namingStrategy NamingStrategy
	cache          map[string]*ParsedTag
	cacheMu        sync.RWMutex
}

func NewTagParser(tagName string, namingStrategy NamingStrategy) *TagParser {
	return &TagParser{
		tagName:        tagName,
		namingStrategy: namingStrategy,
		cache:          make(map[string]*ParsedTag, 64),
	}
}

func (p *TagParser) ParseTag(fieldName string, tag reflect.StructTag) (*ParsedTag, error) {
	tagValue := tag.Get(p.tagName)
	if tagValue == "" {
		return &ParsedTag{ColumnName: p.namingStrategy.ColumnName(fieldName)}, nil
	}

	cacheKey := fieldName + ":" + tagValue
	p.cacheMu.RLock()
	if cached, ok := p.cache[cacheKey]; ok {
		p.cacheMu.RUnlock()
		return cached, nil
	}
	p.cacheMu.RUnlock()

	parsed, err := p.parseTagValue(fieldName, tagValue)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", fieldName, err)
	}

	p.cacheMu.Lock()
	p.cache[cacheKey] = parsed
	p.cacheMu.Unlock()
	return parsed, nil
}

func (p *TagParser) parseTagValue(fieldName, tagValue string) (*ParsedTag, error) {
	if tagValue == "-" {
		return &ParsedTag{Skip: true}, nil
	}

	parsed := &ParsedTag{ColumnName: p.namingStrategy.ColumnName(fieldName)}
	for i, option := range strings.Split(tagValue, ";") {
		option = strings.TrimSpace(option)
		if option == "" {
			continue
		}
		if key, value, ok := strings.Cut(option, ":"); ok {
			if err := parseKeyValue(parsed, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
				return nil, err
			}
			continue
		}
		if parseFlag(parsed, option) {
			continue
		}
		// A leading bare word that is not a flag names the column.
		if i == 0 {
			parsed.ColumnName = option
			continue
		}
		return nil, fmt.Errorf("unknown tag option %q", option)
	}
	return parsed, nil
}

func parseFlag(tag *ParsedTag, flag string) bool {
	switch flag {
	case "primary", "primary_key", "pk":
		tag.Primary = true
	case "unique":
		tag.Unique = true
	case "readonly", "read_only":
		tag.ReadOnly = true
	case "auto_now_add":
		tag.AutoNowAdd = true
	case "auto_now":
		tag.AutoNow = true
	case "auto_generate", "auto":
		tag.AutoGenerate = true
	default:
		return false
	}
	return true
}

func parseKeyValue(tag *ParsedTag, key, value string) error {
	switch key {
	case "column", "name":
		if value == "" {
			return fmt.Errorf("empty column name")
		}
		tag.ColumnName = value
	case "default":
		tag.Default = value
	case "generator", "gen":
		if _, ok := LookupGenerator(value); !ok {
			return fmt.Errorf("unknown generator %q", value)
		}
		tag.Generator = value
		tag.AutoGenerate = true
	default:
		return fmt.Errorf("unknown tag key %q", key)
	}
	return nil
}

// GetGenerator returns the configured generator or nil.
func (tag *ParsedTag) GetGenerator() IDGenerator {
	if tag.Generator == "" {
		return nil
	}
	gen, _ := LookupGenerator(tag.Generator)
	return gen
}
