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

package dbf_test

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-partlookup/dbf"
	"github.com/ianlewis/go-partlookup/internal/testutil"
	"github.com/ianlewis/go-partlookup/table"
)

// singleFieldFile returns a file with a 64 byte header holding one PARTNO
// descriptor and one record with the given deletion flag.
func singleFieldFile(flag byte) []byte {
	b := make([]byte, 64)
	binary.LittleEndian.PutUint32(b[4:8], 1)
	binary.LittleEndian.PutUint16(b[8:10], 64)
	binary.LittleEndian.PutUint16(b[10:12], 21)
	copy(b[32:43], "PARTNO")
	b[43] = 'C'
	b[48] = 20

	b = append(b, flag)
	b = append(b, "AB123               "...)
	return b
}

// records returns the record values of t.
func records(t *table.Table) []map[string]string {
	var r []map[string]string
	for _, rec := range t.Records {
		r = append(r, rec.Map())
	}
	return r
}

var partFields = []table.Field{
	{Name: "PARTNO", Type: 'C', Length: 10},
	{Name: "DESC", Type: 'C', Length: 15},
	{Name: "QTY", Type: 'N', Length: 4},
}

// TestDecode tests Decode.
func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte

		fields   []table.Field
		expected []map[string]string
		err      error
	}{
		{
			name: "single active record",
			data: singleFieldFile(dbf.ActiveFlag),
			fields: []table.Field{
				{Name: "PARTNO", Type: 'C', Length: 20},
			},
			expected: []map[string]string{
				{"PARTNO": "AB123"},
			},
		},
		{
			name: "single deleted record",
			data: singleFieldFile(dbf.DeletedFlag),
			fields: []table.Field{
				{Name: "PARTNO", Type: 'C', Length: 20},
			},
		},
		{
			name: "unknown deletion flag",
			data: singleFieldFile('X'),
			fields: []table.Field{
				{Name: "PARTNO", Type: 'C', Length: 20},
			},
		},
		{
			name: "multiple fields",
			data: testutil.MakeDBF(partFields, []testutil.DBFRecord{
				{Values: []string{"AB123", "hex bolt", "12"}},
				{Deleted: true, Values: []string{"AB124", "washer", "3"}},
				{Values: []string{"CD-9", "", "0"}},
			}),
			fields: partFields,
			expected: []map[string]string{
				{"PARTNO": "AB123", "DESC": "hex bolt", "QTY": "12"},
				{"PARTNO": "CD-9", "DESC": "", "QTY": "0"},
			},
		},
		{
			name: "empty data",
			data: []byte{},
			err:  dbf.ErrShortHeader,
		},
		{
			name: "short header",
			data: make([]byte, 31),
			err:  dbf.ErrShortHeader,
		},
		{
			name: "header length too small",
			data: func() []byte {
				b := make([]byte, 32)
				binary.LittleEndian.PutUint16(b[8:10], 16)
				return b
			}(),
			err: dbf.ErrInvalidHeader,
		},
		{
			name:   "header only",
			data:   testutil.MakeDBF(partFields, nil),
			fields: partFields,
		},
		{
			name: "zero record length",
			data: func() []byte {
				b := testutil.MakeDBF(partFields, []testutil.DBFRecord{
					{Values: []string{"AB123", "hex bolt", "12"}},
				})
				binary.LittleEndian.PutUint16(b[10:12], 0)
				return b
			}(),
			fields: partFields,
		},
		{
			name: "non-ascii bytes dropped",
			data: func() []byte {
				b := testutil.MakeDBF(partFields[:1], []testutil.DBFRecord{
					{Values: []string{"AB123"}},
				})
				// Replace the last padding byte of the value.
				b[len(b)-1] = 0xE9
				b[len(b)-2] = 'X'
				return b
			}(),
			fields: partFields[:1],
			expected: []map[string]string{
				{"PARTNO": "AB123   X"},
			},
		},
		{
			name: "fields longer than record",
			data: func() []byte {
				b := testutil.MakeDBF(partFields[:2], []testutil.DBFRecord{
					{Values: []string{"AB123", "hex bolt"}},
					{Values: []string{"EF456", "nut"}},
				})
				// Declare a record length that cuts off DESC.
				binary.LittleEndian.PutUint16(b[10:12], 15)
				binary.LittleEndian.PutUint32(b[4:8], 1)
				return b
			}(),
			fields: partFields[:2],
			expected: []map[string]string{
				{"PARTNO": "AB123", "DESC": "hex"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tbl, err := dbf.Decode(test.data, nil)
			if !errors.Is(err, test.err) {
				t.Fatalf("Decode: want error %v, got %v", test.err, err)
			}
			if tbl == nil {
				t.Fatal("Decode: nil table")
			}
			if diff := cmp.Diff(test.fields, tbl.Fields); diff != "" {
				t.Fatalf("Decode fields (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, records(tbl)); diff != "" {
				t.Fatalf("Decode records (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestDecode_FieldDescriptors tests parsing of the field descriptor list.
func TestDecode_FieldDescriptors(t *testing.T) {
	t.Parallel()

	t.Run("early terminator", func(t *testing.T) {
		t.Parallel()

		b := testutil.MakeDBF(partFields, nil)
		// Replace the second descriptor with a terminator.
		b[64] = dbf.FieldTerminator

		tbl, err := dbf.Decode(b, nil)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if diff := cmp.Diff(partFields[:1], tbl.Fields); diff != "" {
			t.Fatalf("Decode fields (-want, +got):\n%s", diff)
		}
	})

	t.Run("no terminator", func(t *testing.T) {
		t.Parallel()

		// Two descriptors and a header length that only holds the first.
		b := testutil.MakeDBF(partFields[:2], nil)
		binary.LittleEndian.PutUint16(b[8:10], 64+31)

		tbl, err := dbf.Decode(b, nil)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if diff := cmp.Diff(partFields[:1], tbl.Fields); diff != "" {
			t.Fatalf("Decode fields (-want, +got):\n%s", diff)
		}
	})

	t.Run("header length past end of data", func(t *testing.T) {
		t.Parallel()

		b := testutil.MakeDBF(partFields, nil)
		binary.LittleEndian.PutUint16(b[8:10], 1024)

		tbl, err := dbf.Decode(b, nil)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if diff := cmp.Diff(partFields, tbl.Fields); diff != "" {
			t.Fatalf("Decode fields (-want, +got):\n%s", diff)
		}
		if got := tbl.Len(); got != 0 {
			t.Fatalf("Len: want 0, got %d", got)
		}
	})

	t.Run("nul padded name", func(t *testing.T) {
		t.Parallel()

		b := testutil.MakeDBF([]table.Field{{Name: "PART", Type: 'C', Length: 5}}, nil)
		// Surround the name with spaces and embed a NUL byte.
		copy(b[32:43], " PA\x00RT\x00\x00\x00\x00 ")

		tbl, err := dbf.Decode(b, nil)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if diff := cmp.Diff([]string{"PART"}, tbl.FieldNames()); diff != "" {
			t.Fatalf("FieldNames (-want, +got):\n%s", diff)
		}
	})
}

// TestDecode_Truncated tests that truncated data returns the records decoded
// before the truncation.
func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	b := testutil.MakeDBF(partFields, []testutil.DBFRecord{
		{Values: []string{"AB1"}},
		{Values: []string{"AB2"}},
		{Values: []string{"AB3"}},
	})
	recordLen := 1 + 10 + 15 + 4

	for cut := 1; cut < recordLen*2; cut++ {
		data := b[:len(b)-cut]
		want := 3 - (cut+recordLen-1)/recordLen

		tbl, err := dbf.Decode(data, nil)
		if err != nil {
			t.Fatalf("Decode (cut %d): %v", cut, err)
		}
		if got := tbl.Len(); got != want {
			t.Fatalf("Decode (cut %d): want %d records, got %d", cut, want, got)
		}
	}
}

// TestDecode_MaxRecords tests that the number of records is bounded by the
// declared count and the record limit.
func TestDecode_MaxRecords(t *testing.T) {
	t.Parallel()

	var recs []testutil.DBFRecord
	for range 10 {
		recs = append(recs, testutil.DBFRecord{Values: []string{"AB"}})
	}

	tests := []struct {
		name        string
		recordCount uint32
		maxRecords  int

		expected int
	}{
		{
			name:        "declared count",
			recordCount: 10,
			expected:    10,
		},
		{
			name:        "declared count smaller than data",
			recordCount: 4,
			expected:    4,
		},
		{
			name:        "declared count larger than data",
			recordCount: 1000,
			expected:    10,
		},
		{
			name:        "record limit",
			recordCount: 10,
			maxRecords:  3,
			expected:    3,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b := testutil.MakeDBF(partFields, recs)
			binary.LittleEndian.PutUint32(b[4:8], test.recordCount)

			tbl, err := dbf.Decode(b, &dbf.Options{MaxRecords: test.maxRecords})
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := tbl.Len(); got != test.expected {
				t.Fatalf("Len: want %d, got %d", test.expected, got)
			}
		})
	}
}

// TestDecode_DefaultMaxRecords tests the default record limit.
func TestDecode_DefaultMaxRecords(t *testing.T) {
	t.Parallel()

	fields := []table.Field{{Name: "PN", Type: 'C', Length: 1}}
	recs := make([]testutil.DBFRecord, dbf.DefaultMaxRecords+5)
	b := testutil.MakeDBF(fields, recs)

	tbl, err := dbf.Decode(b, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := tbl.Len(), dbf.DefaultMaxRecords; got != want {
		t.Fatalf("Len: want %d, got %d", want, got)
	}
}

// TestDecode_Deterministic tests that decoding the same data twice gives the
// same table and that every record holds exactly the table's fields.
func TestDecode_Deterministic(t *testing.T) {
	t.Parallel()

	b := testutil.MakeDBF(partFields, []testutil.DBFRecord{
		{Values: []string{"AB123", "hex bolt", "12"}},
		{Values: []string{"AB124"}},
		{Deleted: true, Values: []string{"AB125"}},
	})

	first, err := dbf.Decode(b, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	second, err := dbf.Decode(b, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if diff := cmp.Diff(first.Fields, second.Fields); diff != "" {
		t.Fatalf("Decode fields (-first, +second):\n%s", diff)
	}
	if diff := cmp.Diff(records(first), records(second)); diff != "" {
		t.Fatalf("Decode records (-first, +second):\n%s", diff)
	}

	for i, r := range first.Records {
		if got, want := r.Len(), len(first.Fields); got != want {
			t.Fatalf("record %d: want %d keys, got %d", i, want, got)
		}
		for _, name := range first.FieldNames() {
			if _, ok := r.Lookup(name); !ok {
				t.Fatalf("record %d: missing key %q", i, name)
			}
		}
	}
}

// TestScanner tests the Scanner accessors.
func TestScanner(t *testing.T) {
	t.Parallel()

	b := testutil.MakeDBF(partFields, []testutil.DBFRecord{
		{Deleted: true, Values: []string{"AB1"}},
		{Values: []string{"AB2"}},
		{Deleted: true, Values: []string{"AB3"}},
	})
	b = b[:len(b)-1]

	s, err := dbf.NewScanner(b, nil)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}

	want := &dbf.Header{
		RecordCount:  3,
		HeaderLength: 32 + 3*32 + 1,
		RecordLength: 30,
	}
	if diff := cmp.Diff(want, s.Header()); diff != "" {
		t.Fatalf("Header (-want, +got):\n%s", diff)
	}

	var n int
	for s.Scan() {
		n++
		if got := s.Record()["PARTNO"]; got != "AB2" {
			t.Fatalf("Record: want %q, got %q", "AB2", got)
		}
	}
	if n != 1 {
		t.Fatalf("Scan: want 1 record, got %d", n)
	}
	if got := s.Deleted(); got != 1 {
		t.Fatalf("Deleted: want 1, got %d", got)
	}
	if !s.Truncated() {
		t.Fatal("Truncated: want true")
	}
	if s.Record() != nil {
		t.Fatal("Record: want nil after scan ends")
	}
}

// TestReadFile tests ReadFile.
func TestReadFile(t *testing.T) {
	t.Parallel()

	data := testutil.MakeDBF(partFields, []testutil.DBFRecord{
		{Values: []string{"AB123", "hex bolt", "12"}},
	})
	expected := []map[string]string{
		{"PARTNO": "AB123", "DESC": "hex bolt", "QTY": "12"},
	}

	tests := []struct {
		name        string
		fileName    string
		compression testutil.Compression

		id string
	}{
		{
			name:     "plain",
			fileName: "INVENT.DBF",
			id:       "INVENT.DBF",
		},
		{
			name:        "gzip",
			fileName:    "INVENT.DBF.gz",
			compression: testutil.Gzip,
			id:          "INVENT.DBF",
		},
		{
			name:        "dictzip",
			fileName:    "KIT.dbf.dz",
			compression: testutil.DictZip,
			id:          "KIT.dbf",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := testutil.WriteFile(t, t.TempDir(), test.fileName, data, test.compression)

			tbl, err := dbf.ReadFile(path, nil)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if got := tbl.ID; got != test.id {
				t.Fatalf("ID: want %q, got %q", test.id, got)
			}
			if got := tbl.Kind; got != table.DBF {
				t.Fatalf("Kind: want %v, got %v", table.DBF, got)
			}
			if diff := cmp.Diff(expected, records(tbl)); diff != "" {
				t.Fatalf("ReadFile records (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestReadFile_Errors tests that ReadFile returns an empty table on failure.
func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{
			name: "missing file",
			path: filepath.Join(dir, "MISSING.DBF"),
		},
		{
			name: "short file",
			path: testutil.WriteFile(t, dir, "SHORT.DBF", []byte("short"), testutil.NoCompression),
		},
		{
			name: "bad gzip",
			path: testutil.WriteFile(t, dir, "BAD.DBF.gz", []byte("not gzip"), testutil.NoCompression),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tbl, err := dbf.ReadFile(test.path, nil)
			if err == nil {
				t.Fatal("ReadFile: expected failure")
			}
			if tbl == nil {
				t.Fatal("ReadFile: nil table")
			}
			if tbl.Len() != 0 || len(tbl.Fields) != 0 {
				t.Fatalf("ReadFile: want empty table, got %d fields, %d records", len(tbl.Fields), tbl.Len())
			}
		})
	}
}
