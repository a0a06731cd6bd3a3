// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package field

// VariableLength - length table marker for a 2 byte header field
const VariableLength = -1

// Slot - one declared positional field
type Slot struct {
	Type   Type
	Length int
}

// Schema - immutable field layout description
//
// construct once at startup with NewSchema and pass explicitly to
// every compile and decompile call; there is no ambient schema state
type Schema struct {
	firstFieldOffset int
	lengthTable      map[Type]int // regular types: length or VariableLength
	front            []Slot
	back             []Slot
	positional       map[Type]int // derived: slot type to slot length
	backLength       int          // derived: total bytes of back slots
}

// NewSchema - build a schema value
//
// the supplied table and slot lists are copied so later modification
// by the caller cannot change the schema
func NewSchema(firstFieldOffset int, lengthTable map[Type]int, front []Slot, back []Slot) *Schema {
	s := &Schema{
		firstFieldOffset: firstFieldOffset,
		lengthTable:      make(map[Type]int, len(lengthTable)),
		front:            make([]Slot, len(front)),
		back:             make([]Slot, len(back)),
		positional:       make(map[Type]int, len(front)+len(back)),
	}
	for t, n := range lengthTable {
		s.lengthTable[t] = n
	}
	copy(s.front, front)
	copy(s.back, back)
	for _, slot := range front {
		s.positional[slot.Type] = slot.Length
	}
	for _, slot := range back {
		s.positional[slot.Type] = slot.Length
		s.backLength += slot.Length
	}
	return s
}

// FirstFieldOffset - where the first field starts in the buffer
func (s *Schema) FirstFieldOffset() int {
	return s.firstFieldOffset
}

// IsPositional - true if the type occupies a declared slot
func (s *Schema) IsPositional(fieldType Type) bool {
	_, ok := s.positional[fieldType]
	return ok
}

// PositionalLength - declared length of a positional type
//
// second value is false if the type has no slot
func (s *Schema) PositionalLength(fieldType Type) (int, bool) {
	n, ok := s.positional[fieldType]
	return n, ok
}

// HeaderLength - header bytes a field of this type will occupy
//
// 0 for positional, 1 for implicit-length, 2 for variable-length;
// callers computing how much payload fits in a remaining byte budget
// use this instead of hand-decoding the schema
func (s *Schema) HeaderLength(fieldType Type) int {
	if s.IsPositional(fieldType) {
		return 0
	}
	if n, ok := s.lengthTable[fieldType]; ok && VariableLength != n {
		return 1
	}
	return 2
}

// ImplicitLength - implicit value length of a regular type
//
// second value is false for variable-length or unknown types
func (s *Schema) ImplicitLength(fieldType Type) (int, bool) {
	n, ok := s.lengthTable[fieldType]
	if !ok || VariableLength == n {
		return 0, false
	}
	return n, true
}

// Known - true if the type appears in the length table or has a slot
func (s *Schema) Known(fieldType Type) bool {
	if s.IsPositional(fieldType) {
		return true
	}
	_, ok := s.lengthTable[fieldType]
	return ok
}
