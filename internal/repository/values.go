package repository

import (
	"reflect"
	"sort"
	"strings"
)

// Values maps column names to the values written to them
type Values map[string]any

// Columns returns the column names in a stable order
func (v Values) Columns() []string {
	cols := make([]string, 0, len(v))
	for col := range v {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Clone returns a shallow copy of v
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

type presence interface {
	Present() bool
	ColumnValue() any
}

// ValuesOf collects the `db`-tagged fields of a request struct. Optional
// fields contribute only when present, pointers only when non-nil, and
// fields tagged `db:"-"` are skipped.
func ValuesOf(req any) Values {
	values := Values{}
	rv := reflect.ValueOf(req)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return values
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return values
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if col == "" || col == "-" {
			continue
		}

		fv := rv.Field(i)
		if p, ok := fv.Interface().(presence); ok {
			if p.Present() {
				values[col] = p.ColumnValue()
			}
			continue
		}
		if fv.Kind() == reflect.Pointer {
			if !fv.IsNil() {
				values[col] = fv.Elem().Interface()
			}
			continue
		}
		values[col] = fv.Interface()
	}
	return values
}
