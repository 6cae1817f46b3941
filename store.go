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

package partlookup

import (
	"github.com/ianlewis/go-partlookup/table"
)

// Store is an in-memory collection of tables in insertion order. The zero
// value is an empty store ready to use.
type Store struct {
	tables []*table.Table
	index  map[string]int
}

// NewStore returns a new empty Store.
func NewStore() *Store {
	return &Store{}
}

// AddTable adds t to the store. A table with the same ID is replaced in
// place.
func (s *Store) AddTable(t *table.Table) {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if i, ok := s.index[t.ID]; ok {
		s.tables[i] = t
		return
	}
	s.index[t.ID] = len(s.tables)
	s.tables = append(s.tables, t)
}

// Tables returns the store's tables in insertion order.
func (s *Store) Tables() []*table.Table {
	return s.tables
}

// Table returns the table with the given ID.
func (s *Store) Table(id string) (*table.Table, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.tables[i], true
}

// Len returns the number of tables in the store.
func (s *Store) Len() int {
	return len(s.tables)
}

// Records returns the total number of records in the store.
func (s *Store) Records() int {
	var n int
	for _, t := range s.tables {
		n += t.Len()
	}
	return n
}

// Reset removes all tables from the store.
func (s *Store) Reset() {
	s.tables = nil
	s.index = nil
}
