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

// Package search implements part number search over loaded tables.
//
// Search does a linear scan. For each table it selects candidate fields whose
// names contain a keyword such as PART or ITEM, falling back to every field
// when none match, and reports the records where the query is a substring of
// a candidate field's value.
package search

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-partlookup/table"
)

// ErrEmptyQuery indicates that the query was empty after normalization.
var ErrEmptyQuery = errors.New("empty query")

// DefaultKeywords is the default set of field name keywords identifying part
// number fields.
var DefaultKeywords = []string{"PART", "ITEM", "NUMBER", "PN"}

// ExtendedKeywords extends DefaultKeywords for localized schemas.
var ExtendedKeywords = []string{"PART", "ITEM", "NUMBER", "PN", "CODIGO"}

// Source is a collection of tables to search.
type Source interface {
	// Tables returns the tables in search order.
	Tables() []*table.Table
}

// Options are options for searching.
type Options struct {
	// Keywords are matched against folded field names to select candidate
	// fields. Keywords are folded before use. A nil value uses
	// DefaultKeywords.
	Keywords []string

	// Folder returns a [transform.Transformer] that performs folding on the
	// query, field names and values. A nil value uses upper case folding.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for a search.
var DefaultOptions = &Options{
	Keywords: DefaultKeywords,
	Folder: func() transform.Transformer {
		return cases.Upper(language.Und)
	},
}

// Group is the set of records matching a query in one table.
type Group struct {
	// Table is the table the records came from.
	Table *table.Table

	// Records are the matching records in table order.
	Records []*table.Record
}

// ID returns the table's identifier.
func (g *Group) ID() string {
	return g.Table.ID
}

// Fields returns the table's fields.
func (g *Group) Fields() []table.Field {
	return g.Table.Fields
}

// Searcher searches tables for part numbers.
type Searcher struct {
	keywords []string
	folder   func() transform.Transformer
}

// New returns a new Searcher.
func New(options *Options) (*Searcher, error) {
	if options == nil {
		options = DefaultOptions
	}

	s := &Searcher{
		keywords: DefaultOptions.Keywords,
		folder:   DefaultOptions.Folder,
	}
	if options.Folder != nil {
		s.folder = options.Folder
	}
	if options.Keywords != nil {
		s.keywords = options.Keywords
	}

	tr := s.folder()
	keywords := make([]string, 0, len(s.keywords))
	for _, k := range s.keywords {
		folded, err := fold(tr, strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("folding keyword %q: %w", k, err)
		}
		if folded != "" {
			keywords = append(keywords, folded)
		}
	}
	s.keywords = keywords

	return s, nil
}

// Search is a convenience function that creates a Searcher with the given
// options and searches src for query.
func Search(src Source, query string, options *Options) ([]*Group, error) {
	s, err := New(options)
	if err != nil {
		return nil, err
	}
	return s.Search(src, query)
}

// Search returns the groups of records in src matching query. Groups are in
// the order of src's tables. Tables without matches are omitted.
func (s *Searcher) Search(src Source, query string) ([]*Group, error) {
	tr := s.folder()
	q, err := normalize(tr, query)
	if err != nil {
		return nil, err
	}
	if q == "" {
		return nil, ErrEmptyQuery
	}

	var groups []*Group
	for _, t := range src.Tables() {
		g, err := s.searchTable(tr, t, q)
		if err != nil {
			return nil, err
		}
		if g != nil {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// Normalize trims and folds query.
func (s *Searcher) Normalize(query string) (string, error) {
	return normalize(s.folder(), query)
}

func normalize(tr transform.Transformer, query string) (string, error) {
	q, err := fold(tr, strings.TrimSpace(query))
	if err != nil {
		return "", fmt.Errorf("folding query %q: %w", query, err)
	}
	return q, nil
}

// CandidateFields returns the names of the fields of t that are searched.
func (s *Searcher) CandidateFields(t *table.Table) ([]string, error) {
	return s.candidateFields(s.folder(), t)
}

func (s *Searcher) candidateFields(tr transform.Transformer, t *table.Table) ([]string, error) {
	var names []string
	for _, f := range t.Fields {
		name, err := fold(tr, f.Name)
		if err != nil {
			return nil, fmt.Errorf("folding field name %q: %w", f.Name, err)
		}
		for _, k := range s.keywords {
			if strings.Contains(name, k) {
				names = append(names, f.Name)
				break
			}
		}
	}

	// Search every field when the schema has no recognizable part fields.
	if len(names) == 0 {
		names = t.FieldNames()
	}
	return names, nil
}

func (s *Searcher) searchTable(tr transform.Transformer, t *table.Table, q string) (*Group, error) {
	fields, err := s.candidateFields(tr, t)
	if err != nil {
		return nil, err
	}

	var matches []*table.Record
	for _, r := range t.Records {
		for _, name := range fields {
			v, err := fold(tr, r.Value(name))
			if err != nil {
				return nil, fmt.Errorf("folding value in %q: %w", t.ID, err)
			}
			if strings.Contains(v, q) {
				matches = append(matches, r)
				break
			}
		}
	}

	if len(matches) == 0 {
		return nil, nil
	}
	return &Group{
		Table:   t,
		Records: matches,
	}, nil
}

// fold folds str with tr. [transform.String] resets tr before use so a
// single transformer serves a whole search.
func fold(tr transform.Transformer, str string) (string, error) {
	folded, _, err := transform.String(tr, str)
	if err != nil {
		return "", err //nolint:wrapcheck // callers wrap with context.
	}
	return folded, nil
}

// Total returns the number of records in groups.
func Total(groups []*Group) int {
	var n int
	for _, g := range groups {
		n += len(g.Records)
	}
	return n
}
