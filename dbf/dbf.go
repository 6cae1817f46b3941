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
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-partlookup/table"
)

// Decode decodes the full content of a table file. Decode always returns a
// non-nil table. If the header cannot be parsed the table is empty and the
// error explains why.
func Decode(b []byte, options *Options) (*table.Table, error) {
	s, err := NewScanner(b, options)
	if err != nil {
		return table.New("", table.DBF, nil), err
	}

	t := table.New("", table.DBF, s.Fields())
	for s.Scan() {
		t.Append(s.Record())
	}
	return t, nil
}

// ReadFile reads and decodes the table file at path. Files ending in .gz are
// decompressed with gzip and files ending in .dz with dictzip. The table's ID
// is the file's base name without the compression extension.
//
// ReadFile always returns a non-nil table. On failure the table is empty.
func ReadFile(path string, options *Options) (*table.Table, error) {
	id := TableID(path)

	b, err := readAll(path)
	if err != nil {
		return table.New(id, table.DBF, nil), err
	}

	t, err := Decode(b, options)
	t.ID = id
	if err != nil {
		return t, fmt.Errorf("decoding %q: %w", path, err)
	}
	return t, nil
}

// TableID returns the table identifier for the file at path.
func TableID(path string) string {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".gz", ".dz":
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		r = io.NewSectionReader(z, 0, math.MaxInt64)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return buf.Bytes(), nil
}
