// Package crud implements a generic CRUD engine over PostgreSQL. One engine
// instance per entity provides get, list, count, bulk create, update and
// safety-capped bulk delete with a shared error taxonomy and transaction
// policy; the per-entity specifics live in a Binding.
package crud

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// FieldMapper is implemented by create and update input types. FieldMap
// returns column name to value pairs for every writable field of the input.
type FieldMapper interface {
	FieldMap() map[string]any
}

// Binding describes how an entity maps onto its table: the table name, the
// full column list, and the subset of columns writable through create and
// update inputs. Column lists double as the allow-list for filter and sort
// names, so no reflection is needed at query time.
//
// Bindings are immutable after construction and safe for concurrent use.
type Binding[R any] struct {
	// Table is the table name, pluralized from the entity name.
	Table string
	// Columns is the ordered select list. It must match the db tags of R.
	Columns []string
	// Writable is the ordered column list bound by create and update
	// inputs. Create and update payloads share their field set for every
	// entity in this system.
	Writable []string
	// Sensitive marks tables whose filter values are redacted in error
	// messages and logs.
	Sensitive bool

	columnSet map[string]struct{}
}

// NewBinding builds a Binding for the given entity name. The table name is
// the plural of entity ("tenant" becomes "tenants").
func NewBinding[R any](entity string, columns, writable []string, sensitive bool) *Binding[R] {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return &Binding[R]{
		Table:     inflection.Plural(entity),
		Columns:   columns,
		Writable:  writable,
		Sensitive: sensitive,
		columnSet: set,
	}
}

// HasColumn reports whether name is a column of the bound table.
func (b *Binding[R]) HasColumn(name string) bool {
	_, ok := b.columnSet[name]
	return ok
}

func (b *Binding[R]) selectList() string {
	return strings.Join(b.Columns, ", ")
}
