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

package testutil

import (
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-partlookup/table"
)

// DBFRecord is a record written by MakeDBF.
type DBFRecord struct {
	// Deleted marks the record as deleted.
	Deleted bool

	// Values are the field values in field order. Values are space padded
	// or truncated to the field length.
	Values []string
}

// MakeDBF makes a test table file given a list of fields and records.
func MakeDBF(fields []table.Field, records []DBFRecord) []byte {
	headerLen := 32 + 32*len(fields) + 1
	recordLen := 1
	for _, f := range fields {
		recordLen += f.Length
	}

	b := make([]byte, 32, headerLen)
	b[0] = 0x03
	//nolint:gosec // test code, sizes are small.
	binary.LittleEndian.PutUint32(b[4:8], uint32(len(records)))
	//nolint:gosec // test code, sizes are small.
	binary.LittleEndian.PutUint16(b[8:10], uint16(headerLen))
	//nolint:gosec // test code, sizes are small.
	binary.LittleEndian.PutUint16(b[10:12], uint16(recordLen))

	for _, f := range fields {
		d := make([]byte, 32)
		copy(d[:11], f.Name)
		d[11] = f.Type
		//nolint:gosec // test code, field lengths are less than 256.
		d[16] = byte(f.Length)
		b = append(b, d...)
	}
	b = append(b, 0x0D)

	for _, r := range records {
		if r.Deleted {
			b = append(b, 0x2A)
		} else {
			b = append(b, 0x20)
		}
		for i, f := range fields {
			var v string
			if i < len(r.Values) {
				v = r.Values[i]
			}
			if len(v) > f.Length {
				v = v[:f.Length]
			}
			b = append(b, v+strings.Repeat(" ", f.Length-len(v))...)
		}
	}

	return b
}

// Compression is a compression format for test files.
type Compression int

const (
	// NoCompression writes data as-is.
	NoCompression Compression = iota

	// Gzip compresses data with gzip.
	Gzip

	// DictZip compresses data with dictzip.
	DictZip
)

// WriteFile writes data to a file name under dir using the given compression
// and returns the file path.
func WriteFile(t *testing.T, dir, name string, data []byte, c Compression) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch c {
	case Gzip:
		z := gzip.NewWriter(f)
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}

	return path
}
