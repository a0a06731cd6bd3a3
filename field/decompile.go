// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package field

import (
	"github.com/cubenet/cubed/fault"
)

// Decompile - parse a binary buffer back into its ordered field list
//
// field values reference the underlying buffer - copy a value if it
// must be preserved after the buffer is reused
//
// the walk tracks a 1-based running field index so declared front
// slots are consumed headerless; the back slots occupy the fixed tail
// of the buffer
func (s *Schema) Decompile(data []byte) ([]Field, error) {

	backStart := len(data) - s.backLength
	if backStart < s.firstFieldOffset {
		return nil, fault.ErrFieldTruncated
	}

	fields := make([]Field, 0, len(s.front)+len(s.back)+4)

	pos := s.firstFieldOffset
	index := 1

scan:
	for pos < backStart {

		// declared front slot: fixed length, no header
		if index <= len(s.front) {
			slot := s.front[index-1]
			if pos+slot.Length > backStart {
				return nil, fault.ErrFieldTruncated
			}
			fields = append(fields, Field{
				Type:  slot.Type,
				Value: data[pos : pos+slot.Length : pos+slot.Length],
				Start: pos,
			})
			pos += slot.Length
			index += 1
			continue scan
		}

		// regular field: type code in the high 6 bits
		start := pos
		fieldType := Type(data[pos] >> 2)
		length, ok := s.lengthTable[fieldType]
		if !ok {
			return nil, fault.ErrUnknownFieldType
		}
		headerLength := 1
		if VariableLength == length {
			if pos+2 > backStart {
				return nil, fault.ErrFieldTruncated
			}
			length = int(data[pos]&0x03)<<8 | int(data[pos+1])
			headerLength = 2
		}
		if pos+headerLength+length > backStart {
			return nil, fault.ErrFieldTruncated
		}
		fields = append(fields, Field{
			Type:  fieldType,
			Value: data[pos+headerLength : pos+headerLength+length : pos+headerLength+length],
			Start: start,
		})
		pos += headerLength + length
		index += 1
	}

	// fixed tail
	for _, slot := range s.back {
		fields = append(fields, Field{
			Type:  slot.Type,
			Value: data[pos : pos+slot.Length : pos+slot.Length],
			Start: pos,
		})
		pos += slot.Length
	}

	return fields, nil
}
