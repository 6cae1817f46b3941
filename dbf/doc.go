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

// Package dbf implements reading legacy fixed-record-length binary table
// files.
//
// A table file comes in three parts:
//  1. A 32 byte header. Bytes 4-7 hold the record count as a little-endian
//     uint32, bytes 8-9 the total header length and bytes 10-11 the length
//     of one record, both as little-endian uint16.
//  2. A list of 32 byte field descriptors following the header. Bytes 0-10
//     of a descriptor hold the NUL padded field name, byte 11 the type code
//     and byte 16 the field length. The list is terminated by a 0x0D byte.
//  3. Fixed-length records starting at the header length offset. The first
//     byte of each record is a deletion flag; a space (0x20) marks an active
//     record. The remaining bytes are the field values in descriptor order.
//
// Decoding is best-effort. Short or inconsistent data truncates the table
// rather than failing.
package dbf
