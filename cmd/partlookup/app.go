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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	partlookup "github.com/ianlewis/go-partlookup"
	"github.com/ianlewis/go-partlookup/internal/logging"
	"github.com/ianlewis/go-partlookup/search"
	"github.com/ianlewis/go-partlookup/table"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeNoData is the exit code when no data could be loaded.
	ExitCodeNoData
)

// dataDirName is the name of the data directory searched for next to the
// executable.
const dataDirName = "AirDataDatabase"

// ErrPartlookup is a parent error for all command errors.
var ErrPartlookup = errors.New("partlookup")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrPartlookup)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

// exitCode returns the process exit code for err.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, partlookup.ErrNoData), errors.Is(err, partlookup.ErrNoDataDir):
		return ExitCodeNoData
	default:
		return ExitCodeUnknownError
	}
}

// exeLocations returns the candidate data directories relative to the
// executable.
func exeLocations() []string {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	base := filepath.Dir(execPath)
	return []string{
		filepath.Join(base, dataDirName),
		filepath.Join(base, "assets", dataDirName),
		filepath.Join(filepath.Dir(base), "assets", dataDirName),
	}
}

const loggerKey = "logger"

// setupLogging creates the app's logger from the global flags.
func setupLogging(c *cli.Context) error {
	l, err := logging.New(c.App.ErrWriter, c.String("log-level"), c.String("log-format"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	c.App.Metadata[loggerKey] = l
	return nil
}

func logger(c *cli.Context) *slog.Logger {
	if l, ok := c.App.Metadata[loggerKey].(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// loadStore loads the tables selected by the global flags.
func loadStore(c *cli.Context) (*partlookup.Store, error) {
	dirs := c.StringSlice("data-dir")
	if !c.IsSet("data-dir") {
		dir, err := partlookup.FindDataDir(dirs)
		if err != nil {
			return nil, err
		}
		dirs = []string{dir}
	}

	opts := &partlookup.Options{
		Files:        c.StringSlice("file"),
		Spreadsheets: !c.Bool("no-spreadsheets"),
		MaxRecords:   c.Int("max-records"),
		Logger:       logger(c),
	}
	if c.Bool("all") {
		opts.Files = nil
	}

	store, errs := partlookup.Load(dirs, opts)
	for _, err := range errs {
		if errors.Is(err, partlookup.ErrNoData) {
			return nil, err
		}
	}

	support := "enabled"
	if !opts.Spreadsheets {
		support = "disabled"
	}
	fmt.Fprintf(c.App.ErrWriter, "Data loaded from %d files (spreadsheet support %s). %d records ready to search.\n",
		store.Len(), support, store.Records())

	return store, nil
}

// findTable returns the loaded table named id.
func findTable(store *partlookup.Store, id string) (*table.Table, error) {
	if t, ok := store.Table(id); ok {
		return t, nil
	}
	for _, t := range store.Tables() {
		if strings.EqualFold(t.ID, id) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: table %q not loaded", ErrPartlookup, id)
}

func newPartlookupApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search legacy table files for part numbers.",
		Description: strings.Join([]string{
			"Offline part number lookup written in Go.",
			"http://github.com/ianlewis/go-partlookup",
		}, "\n"),
		Metadata:  map[string]interface{}{},
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "load tables from `DIR`",
				Aliases: []string{"d"},
				EnvVars: []string{"PARTLOOKUP_DATA_DIR"},
				Value:   cli.NewStringSlice(dataLocations()...),
			},
			&cli.StringSliceFlag{
				Name:    "file",
				Usage:   "load table `FILE` from each data directory",
				Aliases: []string{"f"},
				Value:   cli.NewStringSlice(partlookup.DefaultFiles...),
			},
			&cli.BoolFlag{
				Name:               "all",
				Usage:              "load every supported file in the data directories",
				Aliases:            []string{"a"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "no-spreadsheets",
				Usage:              "do not read .xlsx workbooks",
				EnvVars:            []string{"PARTLOOKUP_NO_SPREADSHEETS"},
				DisableDefaultText: true,
			},
			&cli.IntFlag{
				Name:  "max-records",
				Usage: "load at most `N` records per table",
				Value: table.DefaultMaxRecords,
			},
			&cli.StringSliceFlag{
				Name:    "keyword",
				Usage:   "search fields whose name contains `WORD`",
				Aliases: []string{"k"},
				EnvVars: []string{"PARTLOOKUP_KEYWORDS"},
				Value:   cli.NewStringSlice(search.ExtendedKeywords...),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log `LEVEL` (debug, info, warn, error)",
				EnvVars: []string{"PARTLOOKUP_LOG_LEVEL"},
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT` (text, json)",
				Value: "text",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Before: setupLogging,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			//nolint:wrapcheck // help errors are returned as-is.
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			newQueryCommand(),
			newListCommand(),
			newFieldsCommand(),
		},
	}
}
