// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table implements the in-memory data model shared by the table
// decoders and the search engine.
//
// A Table is an ordered list of field descriptors and a list of records.
// Records are always created through their owning Table so that the keys of
// every record are exactly the table's field names.
package table

import (
	"strings"
)

// DefaultMaxRecords is the default maximum number of records loaded into a
// single table.
const DefaultMaxRecords = 50000

// Kind is the kind of source a table was loaded from.
type Kind int

const (
	// DBF is a table decoded from a binary fixed-record-length file.
	DBF Kind = iota

	// Spreadsheet is a table read from a workbook.
	Spreadsheet
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case DBF:
		return "DBF"
	case Spreadsheet:
		return "Excel"
	default:
		return "Unknown"
	}
}

// Field describes one column of a table.
type Field struct {
	// Name is the trimmed field name.
	Name string

	// Type is the single-character type code (e.g. 'C', 'N', 'D', 'L'). The
	// code is stored as-is and no type-specific decoding is done.
	Type byte

	// Length is the declared byte length of the field.
	Length int
}

// Record is one row of a table. Values are keyed by field name.
type Record struct {
	values map[string]string
	sheet  string
}

// Value returns the value of the named field. It returns the empty string if
// the field does not exist.
func (r *Record) Value(name string) string {
	return r.values[name]
}

// Lookup returns the value of the named field and whether the field exists.
func (r *Record) Lookup(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return len(r.values)
}

// Keys returns the record's field names in no particular order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	return keys
}

// Map returns a copy of the record's values keyed by field name.
func (r *Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Sheet returns the name of the sub-sheet the record came from. It is empty
// for sources that are not partitioned.
func (r *Record) Sheet() string {
	return r.sheet
}

// Table is a named table holding its schema and records.
type Table struct {
	// ID identifies the table, usually the source file name.
	ID string

	// Kind is the kind of source the table was loaded from.
	Kind Kind

	// Fields is the ordered list of field descriptors.
	Fields []Field

	// Records holds the table's records in source order.
	Records []*Record
}

// New returns a new empty table with the given schema.
func New(id string, kind Kind, fields []Field) *Table {
	return &Table{
		ID:     id,
		Kind:   kind,
		Fields: fields,
	}
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.Records)
}

// FieldNames returns the table's field names in schema order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Append adds a record built from values to the table. Only keys naming one
// of the table's fields are kept. Fields missing from values are set to the
// empty string.
func (t *Table) Append(values map[string]string) *Record {
	return t.AppendFrom("", values)
}

// AppendFrom is like Append but tags the record with the name of the
// sub-sheet it came from.
func (t *Table) AppendFrom(sheet string, values map[string]string) *Record {
	r := &Record{
		values: make(map[string]string, len(t.Fields)),
		sheet:  sheet,
	}
	for _, f := range t.Fields {
		r.values[f.Name] = values[f.Name]
	}
	t.Records = append(t.Records, r)
	return r
}

// FieldByName returns the field with the given name. Names are compared
// case-insensitively.
func (t *Table) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}
