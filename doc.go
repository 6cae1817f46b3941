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

// Package partlookup implements an offline part number lookup over legacy
// table files.
//
// A data directory holds binary table files (.DBF, optionally compressed
// with gzip or dictzip) and optional .xlsx workbooks. Load decodes them into
// an in-memory Store which is then searched with the search package:
//
//	store, errs := partlookup.Load([]string{dir}, nil)
//	for _, err := range errs {
//		log.Println(err)
//	}
//	groups, err := search.Search(store, "AB123", nil)
//
// The Store is written once by Load and is read-only afterwards.
package partlookup
