package schema

import (
	"fmt"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Context introspects structs and caches the results.
type Context struct {
	namingStrategy NamingStrategy
	tagName        string
	cacheSize      int
	onEvict        func(reflect.Type, *EntityMeta)

	parser      *TagParser
	entityCache *lru.Cache[reflect.Type, *EntityMeta]
}

type Option func(*Context)

// WithNamingStrategy sets the naming strategy for untagged fields and tables.
func WithNamingStrategy(strategy NamingStrategy) Option {
	return func(ctx *Context) { ctx.namingStrategy = strategy }
}

// WithTagName sets the struct tag key. Defaults to "db".
func WithTagName(tagName string) Option {
	return func(ctx *Context) { ctx.tagName = tagName }
}

// WithCacheSize bounds the number of cached struct descriptions.
func WithCacheSize(size int) Option {
	return func(ctx *Context) { ctx.cacheSize = size }
}

func WithEvictionCallback(onEvict func(reflect.Type, *EntityMeta)) Option {
	return func(ctx *Context) { ctx.onEvict = onEvict }
}

func New(options ...Option) *Context {
	ctx := &Context{
		namingStrategy: DefaultNamingStrategy(),
		tagName:        "db",
		cacheSize:      256,
	}
	for _, opt := range options {
		opt(ctx)
	}
	if ctx.cacheSize <= 0 {
		ctx.cacheSize = 256
	}

	ctx.parser = NewTagParser(ctx.tagName, ctx.namingStrategy)
	cache, _ := lru.NewWithEvict(ctx.cacheSize, func(t reflect.Type, m *EntityMeta) {
		if ctx.onEvict != nil {
			ctx.onEvict(t, m)
		}
	})
	ctx.entityCache = cache
	return ctx
}

var defaultContext = New()

// Default returns the shared Context used by package level helpers.
func Default() *Context {
	return defaultContext
}

// Introspect describes t, which must be a struct or pointer to struct.
func (ctx *Context) Introspect(t reflect.Type) (*EntityMeta, error) {
	if t == nil {
		return nil, fmt.Errorf("schema: nil type")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: invalid model type: %s (expected struct)", t.Kind())
	}
	if meta, ok := ctx.entityCache.Get(t); ok {
		return meta, nil
	}

	meta, err := ctx.buildMeta(t)
	if err != nil {
		return nil, err
	}
	ctx.entityCache.Add(t, meta)
	return meta, nil
}

// Introspect describes T using the default Context.
func Introspect[T any]() (*EntityMeta, error) {
	return defaultContext.Introspect(reflect.TypeOf((*T)(nil)).Elem())
}

func (ctx *Context) buildMeta(t reflect.Type) (*EntityMeta, error) {
	meta := &EntityMeta{
		Type:      t,
		Name:      t.Name(),
		FieldMap:  make(map[string]*FieldMeta),
		ColumnMap: make(map[string]*FieldMeta),
	}

	if tn, ok := reflect.New(t).Interface().(TableNamer); ok {
		meta.TableName = tn.TableName()
	} else {
		meta.TableName = ctx.namingStrategy.TableName(t.Name())
	}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		if embeddedThroughPointer(t, f.Index) {
			continue
		}

		tag, err := ctx.parser.ParseTag(f.Name, f.Tag)
		if err != nil {
			return nil, fmt.Errorf("schema: %s: %w", t.Name(), err)
		}
		if tag.Skip {
			continue
		}
		if _, dup := meta.ColumnMap[tag.ColumnName]; dup {
			return nil, fmt.Errorf("schema: %s: duplicate column %q", t.Name(), tag.ColumnName)
		}

		fm := &FieldMeta{
			Name:      f.Name,
			Column:    tag.ColumnName,
			Type:      f.Type,
			Index:     f.Index,
			Tag:       tag,
			Generator: tag.GetGenerator(),
		}
		meta.Fields = append(meta.Fields, fm)
		meta.FieldMap[f.Name] = fm
		meta.ColumnMap[fm.Column] = fm
		if tag.Primary && meta.PrimaryKey == nil {
			meta.PrimaryKey = fm
		}
	}

	if meta.PrimaryKey == nil {
		meta.PrimaryKey = meta.ColumnMap["id"]
	}
	return meta, nil
}

// embeddedThroughPointer reports whether reaching index passes through an
// embedded pointer, which FieldByIndex cannot do on a zero value.
func embeddedThroughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Ptr {
			return true
		}
		t = f.Type
	}
	return false
}
