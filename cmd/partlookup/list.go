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
	"fmt"

	texttable "github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List loaded tables",
		Action: func(c *cli.Context) error {
			store, err := loadStore(c)
			if err != nil {
				return err
			}

			tbl := texttable.New("Table", "Kind", "Fields", "Records").WithWriter(c.App.Writer)
			for _, t := range store.Tables() {
				tbl.AddRow(t.ID, t.Kind, len(t.Fields), t.Len())
			}
			tbl.Print()

			return nil
		},
	}
}

func newFieldsCommand() *cli.Command {
	return &cli.Command{
		Name:      "fields",
		Usage:     "Show the fields of a loaded table",
		ArgsUsage: "TABLE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected one TABLE argument, got %d", ErrFlagParse, c.NArg())
			}

			store, err := loadStore(c)
			if err != nil {
				return err
			}

			t, err := findTable(store, c.Args().First())
			if err != nil {
				return err
			}

			tbl := texttable.New("Name", "Type", "Length").WithWriter(c.App.Writer)
			for _, f := range t.Fields {
				tbl.AddRow(f.Name, string(f.Type), f.Length)
			}
			tbl.Print()

			return nil
		},
	}
}
