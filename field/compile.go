// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package field

import (
	"github.com/cubenet/cubed/fault"
)

// Compile - convert an ordered field list to its binary form
//
// assigns each field's Start offset as a side effect; the returned
// buffer is exactly the computed total size and a final position check
// guards against silent under or over allocation
func (s *Schema) Compile(fields []Field) ([]byte, error) {

	if len(fields) < len(s.front)+len(s.back) {
		return nil, fault.ErrMissingPositionalField
	}
	backStart := len(fields) - len(s.back)

	// declared slots must hold the declared type at the declared
	// position; anything else is a schema violation, not a correction
	for i, slot := range s.front {
		if fields[i].Type != slot.Type {
			return nil, fault.ErrWrongPositionalField
		}
		if len(fields[i].Value) != slot.Length {
			return nil, fault.ErrWrongLengthPositionalField
		}
	}
	for i, slot := range s.back {
		f := fields[backStart+i]
		if f.Type != slot.Type {
			return nil, fault.ErrWrongPositionalField
		}
		if len(f.Value) != slot.Length {
			return nil, fault.ErrWrongLengthPositionalField
		}
	}

	// first pass: validate regular fields and assign start offsets
	n := s.firstFieldOffset
	for i := range fields {
		f := &fields[i]

		if i >= len(s.front) && i < backStart {
			if s.IsPositional(f.Type) {
				return nil, fault.ErrWrongPositionalField
			}
			if f.Type >= TypeLimit {
				return nil, fault.ErrUnknownFieldType
			}
			length, ok := s.lengthTable[f.Type]
			if !ok {
				return nil, fault.ErrUnknownFieldType
			}
			if VariableLength == length {
				if len(f.Value) > MaxValueLength {
					return nil, fault.ErrFieldValueTooLong
				}
			} else if len(f.Value) != length {
				return nil, fault.ErrFieldLengthMismatch
			}
		}

		f.Start = n
		n += s.HeaderLength(f.Type) + len(f.Value)
	}

	// second pass: emit headers and values
	buffer := make([]byte, n)
	pos := s.firstFieldOffset
	for _, f := range fields {
		headerLength := s.HeaderLength(f.Type)
		if pos+headerLength+len(f.Value) > len(buffer) {
			return nil, fault.ErrFieldOverflow
		}
		switch headerLength {
		case 1:
			buffer[pos] = uint8(f.Type) << 2
		case 2:
			buffer[pos] = uint8(f.Type)<<2 | uint8(len(f.Value)>>8)
			buffer[pos+1] = uint8(len(f.Value))
		}
		copy(buffer[pos+headerLength:], f.Value)
		pos += headerLength + len(f.Value)
	}
	if pos != len(buffer) {
		return nil, fault.ErrCompiledSizeMismatch
	}

	return buffer, nil
}
