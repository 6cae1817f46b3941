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

package dbf

import (
	"github.com/ianlewis/go-partlookup/table"
)

// DefaultMaxRecords is the default maximum number of records read from a
// single table.
const DefaultMaxRecords = table.DefaultMaxRecords

// Options are options for decoding a table file.
type Options struct {
	// MaxRecords is the maximum number of record slots read from a file.
	// Values less than or equal to zero use DefaultMaxRecords.
	MaxRecords int
}

// DefaultOptions is the default options for decoding.
var DefaultOptions = &Options{
	MaxRecords: DefaultMaxRecords,
}

func (o *Options) maxRecords() int {
	if o == nil || o.MaxRecords <= 0 {
		return DefaultMaxRecords
	}
	return o.MaxRecords
}

// Scanner scans the active records of an in-memory table file from start to
// end.
type Scanner struct {
	data   []byte
	header *Header
	fields []table.Field

	// pos is the offset of the next record slot.
	pos int

	// slots is the number of record slots left to read.
	slots int

	record    map[string]string
	deleted   int
	truncated bool
}

// NewScanner returns a new Scanner over the full content of a table file.
// The header and field descriptors are parsed immediately.
func NewScanner(b []byte, options *Options) (*Scanner, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}

	slots := min(int(h.RecordCount), options.maxRecords())
	if h.RecordLength == 0 {
		slots = 0
	}

	return &Scanner{
		data:   b,
		header: h,
		fields: parseFields(h, b),
		pos:    int(h.HeaderLength),
		slots:  slots,
	}, nil
}

// Header returns the file header.
func (s *Scanner) Header() *Header {
	return s.header
}

// Fields returns the table's field descriptors in declared order.
func (s *Scanner) Fields() []table.Field {
	return s.fields
}

// Scan advances to the next active record. It returns false when the
// declared number of records has been read, the record limit is reached or
// the remaining data is shorter than one record.
func (s *Scanner) Scan() bool {
	s.record = nil
	recordLen := int(s.header.RecordLength)
	for s.slots > 0 {
		if s.pos+recordLen > len(s.data) {
			s.truncated = true
			s.slots = 0
			return false
		}

		b := s.data[s.pos : s.pos+recordLen]
		s.pos += recordLen
		s.slots--

		if b[0] != ActiveFlag {
			s.deleted++
			continue
		}

		s.record = s.decodeRecord(b)
		return true
	}
	return false
}

// Record returns the values of the current record keyed by field name.
func (s *Scanner) Record() map[string]string {
	return s.record
}

// Deleted returns the number of deleted records skipped so far.
func (s *Scanner) Deleted() int {
	return s.deleted
}

// Truncated reports whether the data ended before all record slots could be
// read.
func (s *Scanner) Truncated() bool {
	return s.truncated
}

// decodeRecord decodes the field values of one record slot. Values are
// clamped to the slot when the descriptors declare more bytes than the
// record holds.
func (s *Scanner) decodeRecord(b []byte) map[string]string {
	values := make(map[string]string, len(s.fields))
	offset := 1 // Skip the deletion flag.
	for _, f := range s.fields {
		start := min(offset, len(b))
		end := min(offset+f.Length, len(b))
		values[f.Name] = decodeText(b[start:end], false)
		offset += f.Length
	}
	return values
}
