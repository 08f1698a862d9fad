package schema

import (
	"fmt"
	"reflect"
	"time"
)

// TableNamer overrides the derived table name of an entity.
type TableNamer interface {
	TableName() string
}

// EntityMeta describes how a struct maps onto a table.
type EntityMeta struct {
	Type       reflect.Type
	Name       string
	TableName  string
	Fields     []*FieldMeta
	FieldMap   map[string]*FieldMeta // Go field name -> FieldMeta
	ColumnMap  map[string]*FieldMeta // column name -> FieldMeta
	PrimaryKey *FieldMeta
}

type FieldMeta struct {
	Name      string
	Column    string
	Type      reflect.Type
	Index     []int
	Tag       *ParsedTag
	Generator IDGenerator
}

// Columns lists mapped columns in declaration order.
func (m *EntityMeta) Columns() []string {
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = f.Column
	}
	return cols
}

// ScanTargets returns one Scan destination per column, pointing into the
// struct held by dest. Unmapped columns are scanned into a throwaway value.
func (m *EntityMeta) ScanTargets(dest reflect.Value, columns []string) []any {
	dest = reflect.Indirect(dest)
	targets := make([]any, len(columns))
	for i, col := range columns {
		if f, ok := m.ColumnMap[col]; ok {
			targets[i] = dest.FieldByIndex(f.Index).Addr().Interface()
			continue
		}
		targets[i] = new(any)
	}
	return targets
}

// Values maps columns to the field values of entity for writing. ReadOnly
// fields are left out, as is a zero primary key when omitZeroPK is set.
func (m *EntityMeta) Values(entity any, omitZeroPK bool) (map[string]any, error) {
	v := reflect.Indirect(reflect.ValueOf(entity))
	if v.Type() != m.Type {
		return nil, fmt.Errorf("schema: expected %s, got %s", m.Type, v.Type())
	}

	values := make(map[string]any, len(m.Fields))
	for _, f := range m.Fields {
		if f.Tag.ReadOnly {
			continue
		}
		fv := v.FieldByIndex(f.Index)
		if omitZeroPK && f == m.PrimaryKey && fv.IsZero() {
			continue
		}
		values[f.Column] = fv.Interface()
	}
	return values, nil
}

// Touch stamps auto_now fields, and auto_now_add fields when inserting.
func (m *EntityMeta) Touch(entity any, now time.Time, inserting bool) {
	v := reflect.Indirect(reflect.ValueOf(entity))
	for _, f := range m.Fields {
		if !(f.Tag.AutoNow || (inserting && f.Tag.AutoNowAdd)) {
			continue
		}
		fv := v.FieldByIndex(f.Index)
		if fv.CanSet() && f.Type == reflect.TypeOf(now) {
			fv.Set(reflect.ValueOf(now))
		}
	}
}

// SetPrimaryKey assigns id to the primary key field of entity, converting
// between compatible kinds.
func (m *EntityMeta) SetPrimaryKey(entity any, id any) error {
	if m.PrimaryKey == nil {
		return fmt.Errorf("schema: %s has no primary key", m.Name)
	}
	return m.SetField(entity, m.PrimaryKey, id)
}

// SetField assigns v to field f of entity. Numeric kinds convert into each
// other and strings into string kinds; a number is never turned into a
// string.
func (m *EntityMeta) SetField(entity any, f *FieldMeta, v any) error {
	fv := reflect.Indirect(reflect.ValueOf(entity)).FieldByIndex(f.Index)
	if v == nil {
		return fmt.Errorf("schema: cannot assign nil to %s.%s", m.Name, f.Name)
	}
	iv := reflect.ValueOf(v)
	switch {
	case iv.Type().AssignableTo(fv.Type()):
		fv.Set(iv)
	case iv.Kind() == reflect.String && fv.Kind() == reflect.String:
		fv.SetString(iv.String())
	case iv.Kind() != reflect.String && fv.Kind() != reflect.String && iv.Type().ConvertibleTo(fv.Type()):
		fv.Set(iv.Convert(fv.Type()))
	default:
		return fmt.Errorf("schema: cannot assign %T to %s.%s", v, m.Name, f.Name)
	}
	return nil
}
