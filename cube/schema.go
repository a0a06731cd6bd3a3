// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cube

import (
	"github.com/cubenet/cubed/field"
)

// wire level sizes - shared by all implementations, never change
const (
	Size          = 1024 // total bytes in any cube
	KeySize       = 32   // cube key and ed25519 public key
	TimestampSize = 5    // big endian seconds
	NonceSize     = 4    // mining nonce
	SignatureSize = 64   // ed25519 signature
)

// cube type tags - first byte of every cube
const (
	tagFrozen  = 0x00
	tagMutable = 0x01
)

// Kind - the addressing scheme of a cube
type Kind int

const (
	Frozen Kind = iota
	Mutable
)

// fixed field offsets derived from the schemas
const (
	FrozenNonceOffset = Size - NonceSize
	FrozenDateOffset  = FrozenNonceOffset - TimestampSize

	MutableSignatureOffset = Size - SignatureSize
	MutableDateOffset      = MutableSignatureOffset - TimestampSize
	MutablePublicKeyOffset = MutableDateOffset - KeySize

	// the region a mutable cube's signature covers
	MutableSignedLength = MutableSignatureOffset
)

// regular field lengths shared by both kinds
var lengthTable = map[field.Type]int{
	field.ContentType: 1,
	field.RelatesTo:   field.RelationshipLength,
	field.Pad1:        0,
	field.Payload:     field.VariableLength,
	field.Padding:     field.VariableLength,
}

// schema values are built once at startup and never modified
var (
	frozenSchema = field.NewSchema(
		0,
		lengthTable,
		[]field.Slot{
			{Type: field.CubeType, Length: 1},
		},
		[]field.Slot{
			{Type: field.Date, Length: TimestampSize},
			{Type: field.Nonce, Length: NonceSize},
		},
	)

	mutableSchema = field.NewSchema(
		0,
		lengthTable,
		[]field.Slot{
			{Type: field.CubeType, Length: 1},
		},
		[]field.Slot{
			{Type: field.PublicKey, Length: KeySize},
			{Type: field.Date, Length: TimestampSize},
			{Type: field.Signature, Length: SignatureSize},
		},
	)
)

// SchemaFor - the schema a cube kind compiles against
func SchemaFor(kind Kind) *field.Schema {
	if Mutable == kind {
		return mutableSchema
	}
	return frozenSchema
}
