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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-partlookup/dbf"
	"github.com/ianlewis/go-partlookup/table"
	"github.com/ianlewis/go-partlookup/xlsx"
)

var (
	// ErrNoData indicates that no table with records was loaded.
	ErrNoData = errors.New("no data loaded")

	// ErrNoDataDir indicates that none of the candidate data directories
	// exist.
	ErrNoDataDir = errors.New("data directory not found")

	// ErrUnsupported indicates that a file is not a supported table file.
	ErrUnsupported = errors.New("unsupported file")

	// ErrSpreadsheetsDisabled indicates that a spreadsheet was found but
	// spreadsheet support is disabled.
	ErrSpreadsheetsDisabled = errors.New("spreadsheet support disabled")
)

// DefaultFiles are the table files loaded from a data directory by default,
// in load order.
var DefaultFiles = []string{
	"INVENT.DBF",
	"POITEM.DBF",
	"BUYQUOTE.DBF",
	"ALTPART.DBF",
	"KIT.DBF",
	"INVENTORIO ACTUAL GENTHRUST.xlsx",
}

// Options are options for loading tables.
type Options struct {
	// Files are the file names loaded from each directory, in order. Missing
	// files are skipped. If Files is empty every supported file in the
	// directory is loaded in lexical order.
	Files []string

	// Spreadsheets enables reading .xlsx workbooks.
	Spreadsheets bool

	// MaxRecords is the maximum number of records loaded per table. Values
	// less than or equal to zero use table.DefaultMaxRecords.
	MaxRecords int

	// Logger receives load progress and per-file failures. A nil value uses
	// slog.Default().
	Logger *slog.Logger
}

// DefaultOptions is the default options for Load.
var DefaultOptions = &Options{
	Files:        DefaultFiles,
	Spreadsheets: true,
	MaxRecords:   table.DefaultMaxRecords,
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// FindDataDir returns the first of candidates that is an existing directory.
func FindDataDir(candidates []string) (string, error) {
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrNoDataDir, strings.Join(candidates, ", "))
}

// Load loads the tables in dirs into a new Store. Failures loading a single
// file never abort the load; Load returns the store along with every error
// that occurred. Tables without records are not added. If no table was
// loaded the errors include ErrNoData.
func Load(dirs []string, options *Options) (*Store, []error) {
	if options == nil {
		options = DefaultOptions
	}
	log := options.logger()

	s := NewStore()
	var errs []error
	for _, dir := range dirs {
		paths, err := tablePaths(dir, options)
		if err != nil {
			log.Warn("reading data directory", "dir", dir, "error", err)
			errs = append(errs, err)
			continue
		}

		for _, path := range paths {
			t, err := LoadFile(path, options)
			switch {
			case errors.Is(err, ErrSpreadsheetsDisabled):
				log.Warn("skipping spreadsheet", "file", path, "reason", err)
				continue
			case err != nil:
				log.Warn("loading table", "file", path, "error", err)
				errs = append(errs, err)
			}

			if t.Len() == 0 {
				log.Debug("no records", "file", path)
				continue
			}

			s.AddTable(t)
			log.Info("loaded table",
				"table", t.ID,
				"kind", t.Kind,
				"fields", len(t.Fields),
				"records", t.Len(),
			)
		}
	}

	if s.Len() == 0 {
		errs = append(errs, fmt.Errorf("%w from %s", ErrNoData, strings.Join(dirs, ", ")))
	}
	return s, errs
}

// LoadFile loads a single table file. The file kind is determined by its
// extension. LoadFile always returns a non-nil table.
func LoadFile(path string, options *Options) (*table.Table, error) {
	if options == nil {
		options = DefaultOptions
	}

	switch {
	case isDBF(path):
		return dbf.ReadFile(path, &dbf.Options{MaxRecords: options.MaxRecords})
	case isSpreadsheet(path):
		if !options.Spreadsheets {
			return table.New(filepath.Base(path), table.Spreadsheet, nil),
				fmt.Errorf("%w: %q", ErrSpreadsheetsDisabled, path)
		}
		return xlsx.ReadFile(path, &xlsx.Options{MaxRecords: options.MaxRecords})
	default:
		return table.New(filepath.Base(path), table.DBF, nil), fmt.Errorf("%w: %q", ErrUnsupported, path)
	}
}

// tablePaths returns the paths of the table files to load from dir.
func tablePaths(dir string, options *Options) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reading %q: not a directory", dir)
	}

	if len(options.Files) > 0 {
		var paths []string
		for _, name := range options.Files {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					return nil, fmt.Errorf("checking %q: %w", path, err)
				}
				options.logger().Debug("file not found", "file", path)
				continue
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	// NOTE: os.ReadDir returns entries sorted by file name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isDBF(e.Name()) || isSpreadsheet(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func isDBF(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{".dbf", ".dbf.gz", ".dbf.dz"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func isSpreadsheet(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xlsx"
}
