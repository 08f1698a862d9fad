package schema

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =========================================================================
// Test Data Structures
// =========================================================================

type User struct {
	ID        uint64    `db:"id"`
	FirstName string    `db:"first_name"`
	Email     string    `db:"email;unique"`
	Age       int32     `db:"age"`
	CreatedAt time.Time `db:"created_at;auto_now_add"`
	UpdatedAt time.Time `db:"updated_at;auto_now"`
	Secret    string    `db:"-"`
	internal  string
}

type Product struct {
	SKU   string  `db:"sku;primary;generator:ulid"`
	Price float64 `db:"price"`
	Notes sql.NullString
}

type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
}

type Post struct {
	Timestamps
	ID    int64
	Title string
	Views int `db:"views;readonly"`
}

type Legacy struct {
	Key string `db:"pk"`
}

func (Legacy) TableName() string { return "tbl_legacy" }

type BadTag struct {
	Name string `db:"name;frobnicate"`
}

type DupColumn struct {
	A string `db:"x"`
	B string `db:"x"`
}

// =========================================================================
// Introspection Tests
// =========================================================================

func TestIntrospect(t *testing.T) {
	tests := []struct {
		name       string
		inputType  reflect.Type
		expectErr  bool
		columns    []string
		table      string
		primaryKey string
	}{
		{
			name:       "TaggedStruct",
			inputType:  reflect.TypeOf(User{}),
			columns:    []string{"id", "first_name", "email", "age", "created_at", "updated_at"},
			table:      "users",
			primaryKey: "id",
		},
		{
			name:       "PointerAndPrimaryFlag",
			inputType:  reflect.TypeOf(&Product{}),
			columns:    []string{"sku", "price", "notes"},
			table:      "products",
			primaryKey: "sku",
		},
		{
			name:       "EmbeddedStruct",
			inputType:  reflect.TypeOf(Post{}),
			columns:    []string{"created_at", "id", "title", "views"},
			table:      "posts",
			primaryKey: "id",
		},
		{
			name:       "TableNamer",
			inputType:  reflect.TypeOf(Legacy{}),
			columns:    []string{"key"},
			table:      "tbl_legacy",
			primaryKey: "key",
		},
		{name: "NotAStruct", inputType: reflect.TypeOf(42), expectErr: true},
		{name: "UnknownTagOption", inputType: reflect.TypeOf(BadTag{}), expectErr: true},
		{name: "DuplicateColumn", inputType: reflect.TypeOf(DupColumn{}), expectErr: true},
	}

	ctx := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ctx.Introspect(tt.inputType)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.columns, meta.Columns())
			assert.Equal(t, tt.table, meta.TableName)
			require.NotNil(t, meta.PrimaryKey)
			assert.Equal(t, tt.primaryKey, meta.PrimaryKey.Column)
		})
	}
}

func TestIntrospectCaches(t *testing.T) {
	evicted := 0
	ctx := New(WithCacheSize(1), WithEvictionCallback(func(reflect.Type, *EntityMeta) { evicted++ }))

	a, err := ctx.Introspect(reflect.TypeOf(User{}))
	require.NoError(t, err)
	b, err := ctx.Introspect(reflect.TypeOf(&User{}))
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = ctx.Introspect(reflect.TypeOf(Product{}))
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)
}

func TestIntrospectGeneric(t *testing.T) {
	meta, err := Introspect[Product]()
	require.NoError(t, err)
	require.NotNil(t, meta.PrimaryKey.Generator)
	assert.Equal(t, "ulid", meta.PrimaryKey.Generator.Type())
}

func TestTagName(t *testing.T) {
	type Row struct {
		Name string `sql:"full_name"`
	}
	meta, err := New(WithTagName("sql")).Introspect(reflect.TypeOf(Row{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"full_name"}, meta.Columns())
}

// =========================================================================
// Entity Helpers
// =========================================================================

func TestScanTargets(t *testing.T) {
	meta, err := New().Introspect(reflect.TypeOf(User{}))
	require.NoError(t, err)

	var u User
	targets := meta.ScanTargets(reflect.ValueOf(&u), []string{"email", "unknown", "id"})
	require.Len(t, targets, 3)

	*targets[0].(*string) = "a@example.com"
	*targets[2].(*uint64) = 9
	assert.IsType(t, new(any), targets[1])
	assert.Equal(t, "a@example.com", u.Email)
	assert.Equal(t, uint64(9), u.ID)
}

func TestValues(t *testing.T) {
	meta, err := New().Introspect(reflect.TypeOf(Post{}))
	require.NoError(t, err)

	p := &Post{Title: "hello", Views: 10}
	values, err := meta.Values(p, true)
	require.NoError(t, err)
	assert.NotContains(t, values, "id")
	assert.NotContains(t, values, "views")
	assert.Equal(t, "hello", values["title"])
	assert.Contains(t, values, "created_at")

	p.ID = 5
	values, err = meta.Values(*p, true)
	require.NoError(t, err)
	assert.Equal(t, int64(5), values["id"])

	_, err = meta.Values(User{}, false)
	assert.Error(t, err)
}

func TestTouch(t *testing.T) {
	meta, err := New().Introspect(reflect.TypeOf(User{}))
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := &User{}
	meta.Touch(u, now, false)
	assert.True(t, u.CreatedAt.IsZero())
	assert.Equal(t, now, u.UpdatedAt)

	meta.Touch(u, now, true)
	assert.Equal(t, now, u.CreatedAt)
}

func TestSetPrimaryKey(t *testing.T) {
	meta, err := New().Introspect(reflect.TypeOf(User{}))
	require.NoError(t, err)

	u := &User{}
	require.NoError(t, meta.SetPrimaryKey(u, int64(42)))
	assert.Equal(t, uint64(42), u.ID)
	assert.Error(t, meta.SetPrimaryKey(u, "nope"))

	pmeta, err := New().Introspect(reflect.TypeOf(Product{}))
	require.NoError(t, err)
	p := &Product{}
	require.NoError(t, pmeta.SetPrimaryKey(p, "01HZX"))
	assert.Equal(t, "01HZX", p.SKU)

	assert.Error(t, pmeta.SetPrimaryKey(p, int64(0)))
	assert.Error(t, pmeta.SetPrimaryKey(p, nil))
	assert.Equal(t, "01HZX", p.SKU)
}
