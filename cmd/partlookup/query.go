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
	"bufio"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-partlookup/search"
)

func newQueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Search loaded tables for part numbers",
		ArgsUsage: "[QUERY...]",
		Description: "Loads the data files once and searches them for each QUERY. " +
			"If no QUERY is given, queries are read from standard input, one per line.",
		Action: func(c *cli.Context) error {
			store, err := loadStore(c)
			if err != nil {
				return err
			}

			s, err := search.New(&search.Options{
				Keywords: c.StringSlice("keyword"),
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrPartlookup, err)
			}

			run := func(query string) error {
				groups, err := s.Search(store, query)
				if errors.Is(err, search.ErrEmptyQuery) {
					fmt.Fprintln(c.App.ErrWriter, "Please enter a part number.")
					return nil
				}
				if err != nil {
					return fmt.Errorf("%w: %w", ErrPartlookup, err)
				}

				q, err := s.Normalize(query)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrPartlookup, err)
				}
				//nolint:wrapcheck // error is already wrapped.
				return search.WriteText(c.App.Writer, q, groups)
			}

			if c.NArg() > 0 {
				for _, query := range c.Args().Slice() {
					if err := run(query); err != nil {
						return err
					}
				}
				return nil
			}

			scanner := bufio.NewScanner(c.App.Reader)
			for scanner.Scan() {
				if err := run(scanner.Text()); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("%w: reading queries: %w", ErrPartlookup, err)
			}
			return nil
		},
	}
}
