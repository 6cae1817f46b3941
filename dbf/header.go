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
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-partlookup/internal/folding"
	"github.com/ianlewis/go-partlookup/table"
)

const (
	// HeaderSize is the size of the fixed file header.
	HeaderSize = 32

	// DescriptorSize is the size of one field descriptor.
	DescriptorSize = 32

	// FieldTerminator ends the field descriptor list.
	FieldTerminator = 0x0D

	// ActiveFlag is the deletion flag value of an active record.
	ActiveFlag = 0x20

	// DeletedFlag is the deletion flag value commonly used for deleted
	// records. Any value other than ActiveFlag marks a record as deleted.
	DeletedFlag = 0x2A

	// nameSize is the size of the field name slot in a descriptor.
	nameSize = 11
)

var (
	// ErrShortHeader indicates that the data is too short to hold a header.
	ErrShortHeader = errors.New("short header")

	// ErrInvalidHeader indicates that the header declares a header length
	// smaller than the fixed header.
	ErrInvalidHeader = errors.New("invalid header")
)

// Header is the fixed file header.
type Header struct {
	// RecordCount is the declared number of records.
	RecordCount uint32

	// HeaderLength is the total header length in bytes including the field
	// descriptors and terminator.
	HeaderLength uint16

	// RecordLength is the length of one record including the deletion flag.
	RecordLength uint16
}

// ParseHeader parses the fixed header at the start of b.
func ParseHeader(b []byte) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(b))
	}

	h := &Header{
		RecordCount:  binary.LittleEndian.Uint32(b[4:8]),
		HeaderLength: binary.LittleEndian.Uint16(b[8:10]),
		RecordLength: binary.LittleEndian.Uint16(b[10:12]),
	}
	if h.HeaderLength < HeaderSize {
		return nil, fmt.Errorf("%w: header length %d", ErrInvalidHeader, h.HeaderLength)
	}
	return h, nil
}

// MaxFields returns the maximum number of field descriptors that fit
// entirely within the declared header length.
func (h *Header) MaxFields() int {
	return (int(h.HeaderLength) - HeaderSize) / DescriptorSize
}

// parseFields parses the field descriptors of a file. b holds the full file
// data.
func parseFields(h *Header, b []byte) []table.Field {
	end := min(int(h.HeaderLength), len(b))
	desc := b[HeaderSize:end]

	var fields []table.Field
	for i := 0; i < h.MaxFields(); i++ {
		if (i+1)*DescriptorSize > len(desc) {
			break
		}
		d := desc[i*DescriptorSize : (i+1)*DescriptorSize]
		if d[0] == FieldTerminator {
			break
		}

		fields = append(fields, table.Field{
			Name:   decodeText(d[:nameSize], true),
			Type:   d[11],
			Length: int(d[16]),
		})
	}
	return fields
}

// decodeText decodes b as lossy ASCII and trims surrounding whitespace.
func decodeText(b []byte, dropNUL bool) string {
	out, _, err := transform.Bytes(folding.ASCII{DropNUL: dropNUL}, b)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
