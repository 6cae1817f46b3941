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

package search

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var (
	groupSeparator  = strings.Repeat("=", 80)
	recordSeparator = strings.Repeat("-", 40)
)

// WriteText writes a human readable report of groups to w. Each group names
// its source table and lists every non-empty field of its matching records.
func WriteText(w io.Writer, query string, groups []*Group) error {
	bw := bufio.NewWriter(w)

	if len(groups) == 0 {
		fmt.Fprintf(bw, "No matches found for part number: %s\n\n", query)
		fmt.Fprintln(bw, "Try searching with a partial part number or check the spelling.")
		return flush(bw)
	}

	fmt.Fprintf(bw, "Found %d matches for part number: %s\n", Total(groups), query)
	fmt.Fprintf(bw, "%s\n\n", groupSeparator)

	for _, g := range groups {
		fmt.Fprintf(bw, "FILE: %s (%s)\n", g.ID(), g.Table.Kind)
		fmt.Fprintln(bw, recordSeparator)

		for i, r := range g.Records {
			fmt.Fprintf(bw, "\nRecord %d:", i+1)
			if sheet := r.Sheet(); sheet != "" {
				fmt.Fprintf(bw, " [Sheet: %s]", sheet)
			}
			fmt.Fprintln(bw)

			for _, f := range g.Fields() {
				if v := r.Value(f.Name); strings.TrimSpace(v) != "" {
					fmt.Fprintf(bw, "  %s: %s\n", f.Name, v)
				}
			}
			fmt.Fprintln(bw)
		}

		fmt.Fprintf(bw, "\n%s\n\n", groupSeparator)
	}

	return flush(bw)
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
