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

// Package xlsx reads spreadsheet workbooks into tables.
//
// Every worksheet is read in workbook order. The first row of a sheet holds
// the column headers and each following non-empty row becomes a record
// tagged with the sheet's name. The table's schema is taken from the first
// sheet that has headers.
package xlsx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ianlewis/go-partlookup/table"
)

// FieldLength is the declared length of spreadsheet fields.
const FieldLength = 255

// Options are options for reading workbooks.
type Options struct {
	// MaxRecords is the maximum number of records read from a workbook.
	// Values less than or equal to zero use table.DefaultMaxRecords.
	MaxRecords int
}

// DefaultOptions is the default options for reading workbooks.
var DefaultOptions = &Options{
	MaxRecords: table.DefaultMaxRecords,
}

func (o *Options) maxRecords() int {
	if o == nil || o.MaxRecords <= 0 {
		return table.DefaultMaxRecords
	}
	return o.MaxRecords
}

// ReadFile reads the workbook at path. The table's ID is the file's base
// name. ReadFile always returns a non-nil table; on failure it holds the
// records read before the error.
func ReadFile(path string, options *Options) (*table.Table, error) {
	id := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return table.New(id, table.Spreadsheet, nil), fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, id, options)
	if err != nil {
		return t, fmt.Errorf("reading %q: %w", path, err)
	}
	return t, nil
}

// Read reads a workbook from r into a table with the given ID.
func Read(r io.Reader, id string, options *Options) (*table.Table, error) {
	t := table.New(id, table.Spreadsheet, nil)

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return t, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	limit := options.maxRecords()
	for _, sheet := range wb.GetSheetList() {
		if t.Len() >= limit {
			break
		}

		rows, err := wb.GetRows(sheet)
		if err != nil {
			return t, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		headers := parseHeaders(rows[0])
		if len(headers) == 0 {
			continue
		}

		if t.Fields == nil {
			for _, h := range headers {
				if h == "" {
					continue
				}
				t.Fields = append(t.Fields, table.Field{
					Name:   h,
					Type:   'C',
					Length: FieldLength,
				})
			}
		}

		for _, row := range rows[1:] {
			if t.Len() >= limit {
				break
			}
			if isEmpty(row) {
				continue
			}

			values := make(map[string]string, len(headers))
			for i, v := range row {
				if i >= len(headers) || headers[i] == "" {
					continue
				}
				values[headers[i]] = strings.TrimSpace(v)
			}
			t.AppendFrom(sheet, values)
		}
	}

	return t, nil
}

// parseHeaders returns the trimmed header cells by column. Columns with an
// empty header are kept as empty strings so that data cells stay aligned.
// It returns nil if no header cell is set.
func parseHeaders(row []string) []string {
	headers := make([]string, len(row))
	var n int
	for i, c := range row {
		headers[i] = strings.TrimSpace(c)
		if headers[i] != "" {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return headers
}

func isEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
