// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package field

import (
	"fmt"

	"github.com/cubenet/cubed/fault"
)

// Type - the field type code
//
// the code must fit in 6 bits as the header packs it into the high 6
// bits of the first header byte
type Type uint8

// limits imposed by the header layout
const (
	TypeLimit      = 0x40 // one greater than the highest possible code
	MaxValueLength = 0x3ff
)

// field type codes - wire level constants, never renumber
const (
	CubeType    Type = 0x01 // positional front: 1 byte cube type tag
	PublicKey   Type = 0x02 // positional back: 32 byte ed25519 public key
	Date        Type = 0x03 // positional back: 5 byte big endian seconds
	ContentType Type = 0x04 // implicit length: 1 byte application tag
	Payload     Type = 0x05 // variable length: application content
	Padding     Type = 0x06 // variable length: fill to exact cube size
	RelatesTo   Type = 0x07 // implicit length: 1 type byte + 32 key bytes
	Nonce       Type = 0x08 // positional back: 4 byte mining nonce
	Signature   Type = 0x09 // positional back: 64 byte ed25519 signature
	Pad1        Type = 0x0a // implicit zero length: single byte of fill
)

// Field - one typed element of a cube body
//
// Start is the byte offset of the field's header (or value for a
// positional field) inside the compiled buffer; it is NotCompiled
// until the containing field list has been compiled or was produced by
// decompile
type Field struct {
	Type  Type
	Value []byte
	Start int
}

// Start value before compilation
const NotCompiled = -1

// New - create a field that is not yet part of a compiled buffer
func New(fieldType Type, value []byte) Field {
	return Field{
		Type:  fieldType,
		Value: value,
		Start: NotCompiled,
	}
}

// String - printable form for debug logs
func (f Field) String() string {
	return fmt.Sprintf("field(%02x)[%d]@%d", uint8(f.Type), len(f.Value), f.Start)
}

// KeyLength - number of bytes in a remote cube key
const KeyLength = 32

// RelationshipLength - bytes in a relates-to field value
const RelationshipLength = 1 + KeyLength

// Relationship - parsed view of a relates-to field
type Relationship struct {
	Type      uint8
	RemoteKey [KeyLength]byte
}

// ParseRelationship - decode a relates-to field value
func ParseRelationship(f Field) (Relationship, error) {
	r := Relationship{}
	if RelatesTo != f.Type || RelationshipLength != len(f.Value) {
		return r, fault.ErrInvalidRelationship
	}
	r.Type = f.Value[0]
	copy(r.RemoteKey[:], f.Value[1:])
	return r, nil
}

// NewRelationship - build a relates-to field
func NewRelationship(relationshipType uint8, remoteKey [KeyLength]byte) Field {
	value := make([]byte, RelationshipLength)
	value[0] = relationshipType
	copy(value[1:], remoteKey[:])
	return New(RelatesTo, value)
}
