// Package table binds statements to a single table described by a struct.
package table

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/Konsultn-Engineering/sqlkit/database"
	"github.com/Konsultn-Engineering/sqlkit/engine"
	"github.com/Konsultn-Engineering/sqlkit/query"
	"github.com/Konsultn-Engineering/sqlkit/result"
	"github.com/Konsultn-Engineering/sqlkit/schema"
)

var (
	ErrNoPrimaryKey = errors.New("table: no primary key")
	ErrNoTableName  = errors.New("table: no table name")
)

type config struct {
	name       string
	primaryKey string
	generator  schema.IDGenerator
	now        func() time.Time
}

type Option func(*config)

// WithTableName overrides the table name derived from the entity type.
func WithTableName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithPrimaryKey overrides the primary key column.
func WithPrimaryKey(column string) Option {
	return func(c *config) { c.primaryKey = column }
}

// WithIDGenerator sets the generator used for rows created without a
// primary key value.
func WithIDGenerator(g schema.IDGenerator) Option {
	return func(c *config) { c.generator = g }
}

// WithClock replaces time.Now for auto_now and auto_now_add fields.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Table is a typed gateway to one table. Rows are hydrated into T.
type Table[T any] struct {
	engine     *engine.Engine
	meta       *schema.EntityMeta
	name       string
	primaryKey string
	generator  schema.IDGenerator
	now        func() time.Time
}

// New describes T and binds it to e. The table name and primary key come
// from the struct unless overridden.
func New[T any](e *engine.Engine, opts ...Option) (*Table[T], error) {
	meta, err := schema.Introspect[T]()
	if err != nil {
		return nil, err
	}

	c := config{name: meta.TableName, now: time.Now}
	if meta.PrimaryKey != nil {
		c.primaryKey = meta.PrimaryKey.Column
		c.generator = meta.PrimaryKey.Generator
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.name == "" {
		return nil, ErrNoTableName
	}

	return &Table[T]{
		engine:     e,
		meta:       meta,
		name:       c.name,
		primaryKey: c.primaryKey,
		generator:  c.generator,
		now:        c.now,
	}, nil
}

func (t *Table[T]) Name() string       { return t.name }
func (t *Table[T]) PrimaryKey() string { return t.primaryKey }

// Select returns a SELECT over the mapped columns of T.
func (t *Table[T]) Select() *query.Select {
	return t.engine.Select(t.meta.Columns()...).From(t.name)
}

func (t *Table[T]) Insert() *query.Insert {
	return t.engine.Insert().Into(t.name)
}

func (t *Table[T]) Update() *query.Update {
	return t.engine.Update().Table(t.name)
}

func (t *Table[T]) Delete() *query.Delete {
	return t.engine.Delete().From(t.name)
}

// Find loads the row whose primary key is id. ok is false when no row
// matches.
func (t *Table[T]) Find(ctx context.Context, id any) (row *T, ok bool, err error) {
	if t.primaryKey == "" {
		return nil, false, ErrNoPrimaryKey
	}
	r, err := t.engine.Query(ctx, t.Select().Where(t.primaryKey, id).Limit(1))
	if err != nil {
		return nil, false, err
	}
	return result.One[T](r)
}

// FindMany loads every row whose primary key is in ids.
func (t *Table[T]) FindMany(ctx context.Context, ids ...any) ([]*T, error) {
	if t.primaryKey == "" {
		return nil, ErrNoPrimaryKey
	}
	if len(ids) == 0 {
		return nil, nil
	}
	r, err := t.engine.Query(ctx, t.Select().WhereIn(t.primaryKey, ids...))
	if err != nil {
		return nil, err
	}
	return result.All[T](r)
}

// Create inserts values and returns the primary key of the new row. A key
// given in values is returned as is. A missing key is generated when the
// table has an ID generator, otherwise it is read back from the driver.
func (t *Table[T]) Create(ctx context.Context, values map[string]any) (any, error) {
	values, id, err := t.withKey(values)
	if err != nil {
		return nil, err
	}
	res, err := t.engine.Exec(ctx, t.Insert().Values(values))
	if err != nil {
		return nil, err
	}
	if id != nil {
		return id, nil
	}
	return lastInsertID(res)
}

// CreateEntity inserts entity, stamping auto_now fields and filling in its
// primary key.
func (t *Table[T]) CreateEntity(ctx context.Context, entity *T) error {
	t.meta.Touch(entity, t.now(), true)

	values, err := t.meta.Values(entity, true)
	if err != nil {
		return err
	}
	values, id, err := t.withKey(values)
	if err != nil {
		return err
	}
	res, err := t.engine.Exec(ctx, t.Insert().Values(values))
	if err != nil {
		return err
	}
	if id == nil {
		if id, err = lastInsertID(res); err != nil || id == nil {
			return err
		}
	}
	pk := t.keyField()
	if pk == nil {
		return nil
	}
	return t.meta.SetField(entity, pk, id)
}

// UpdateEntity writes every mapped field of entity to the row with the same
// primary key and returns the number of affected rows.
func (t *Table[T]) UpdateEntity(ctx context.Context, entity *T) (int64, error) {
	pk := t.keyField()
	if pk == nil {
		return 0, ErrNoPrimaryKey
	}
	t.meta.Touch(entity, t.now(), false)

	values, err := t.meta.Values(entity, false)
	if err != nil {
		return 0, err
	}
	id := values[pk.Column]
	delete(values, pk.Column)

	res, err := t.engine.Exec(ctx, t.Update().Values(values).Where(pk.Column, id))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByID removes the row whose primary key is id.
func (t *Table[T]) DeleteByID(ctx context.Context, id any) (int64, error) {
	if t.primaryKey == "" {
		return 0, ErrNoPrimaryKey
	}
	res, err := t.engine.Exec(ctx, t.Delete().Where(t.primaryKey, id))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// keyField is the mapped field of the primary key column, if any.
func (t *Table[T]) keyField() *schema.FieldMeta {
	if t.primaryKey == "" {
		return nil
	}
	return t.meta.ColumnMap[t.primaryKey]
}

// withKey resolves the primary key of a row about to be inserted. A key
// already present in values is returned unchanged. A missing key is
// generated and added to a copy of values when a generator is configured.
// id is nil when the key is left to the database.
func (t *Table[T]) withKey(values map[string]any) (map[string]any, any, error) {
	if t.primaryKey == "" {
		return values, nil, nil
	}
	if v, ok := values[t.primaryKey]; ok && !isZero(v) {
		return values, v, nil
	}
	if t.generator == nil {
		return values, nil, nil
	}
	id, err := t.generator.Generate()
	if err != nil {
		return nil, nil, fmt.Errorf("table: generate %s key: %w", t.generator.Type(), err)
	}

	out := make(map[string]any, len(values)+1)
	for k, v := range values {
		out[k] = v
	}
	out[t.primaryKey] = id
	return out, id, nil
}

func lastInsertID(res database.Result) (any, error) {
	id, err := res.LastInsertId()
	if errors.Is(err, database.ErrLastInsertIdUnsupported) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return id, nil
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
