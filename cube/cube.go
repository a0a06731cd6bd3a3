// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cube

import (
	"encoding/binary"

	"github.com/cubenet/cubed/account"
	"github.com/cubenet/cubed/cubedigest"
	"github.com/cubenet/cubed/fault"
	"github.com/cubenet/cubed/field"
)

// Cube - a compiled record
//
// the decoded fields are views into the binary buffer so the two can
// never drift apart; mutations go through the Set routines which write
// the buffer directly
type Cube struct {
	kind   Kind
	data   []byte
	fields []field.Field
}

// NewFrozen - build an unmined frozen cube from regular content fields
//
// the nonce is zero; run the result through the proof package to
// satisfy the difficulty
func NewFrozen(content []field.Field, timestamp uint64) (*Cube, error) {
	fields := make([]field.Field, 0, len(content)+4)
	fields = append(fields, field.New(field.CubeType, []byte{tagFrozen}))
	fields = append(fields, content...)

	date := make([]byte, TimestampSize)
	putTimestamp(date, timestamp)

	tail := []field.Field{
		field.New(field.Date, date),
		field.New(field.Nonce, make([]byte, NonceSize)),
	}
	return assemble(Frozen, fields, tail)
}

// NewMutable - build an unsigned mutable cube owned by an account
//
// the signature is zero; run the result through muc.Sign before
// storing or transmitting it
func NewMutable(owner *account.Account, content []field.Field, timestamp uint64) (*Cube, error) {
	if nil == owner || KeySize != len(owner.PublicKey) {
		return nil, fault.ErrNotPublicKey
	}

	fields := make([]field.Field, 0, len(content)+5)
	fields = append(fields, field.New(field.CubeType, []byte{tagMutable}))
	fields = append(fields, content...)

	date := make([]byte, TimestampSize)
	putTimestamp(date, timestamp)

	tail := []field.Field{
		field.New(field.PublicKey, owner.PublicKey),
		field.New(field.Date, date),
		field.New(field.Signature, make([]byte, SignatureSize)),
	}
	return assemble(Mutable, fields, tail)
}

// pad to exact size, compile and re-decode
func assemble(kind Kind, fields []field.Field, tail []field.Field) (*Cube, error) {
	schema := SchemaFor(kind)

	used := schema.FirstFieldOffset()
	for _, f := range fields {
		// an over-long value is a field error, not a buffer overflow
		if 2 == schema.HeaderLength(f.Type) && field.MaxValueLength < len(f.Value) {
			return nil, fault.ErrFieldValueTooLong
		}
		used += schema.HeaderLength(f.Type) + len(f.Value)
	}
	for _, f := range tail {
		used += len(f.Value)
	}

	free := Size - used
	if free < 0 {
		return nil, fault.ErrFieldOverflow
	}
	switch {
	case 0 == free:
		// exact fit
	case 1 == free:
		fields = append(fields, field.New(field.Pad1, []byte{}))
	default:
		fields = append(fields, field.New(field.Padding, make([]byte, free-2)))
	}
	fields = append(fields, tail...)

	data, err := schema.Compile(fields)
	if nil != err {
		return nil, err
	}
	if Size != len(data) {
		return nil, fault.ErrCubeSizeMismatch
	}
	return FromBytes(data)
}

// FromBytes - validate and decode a received cube
//
// the cube takes ownership of the supplied buffer
func FromBytes(data []byte) (*Cube, error) {
	if Size != len(data) {
		return nil, fault.ErrCubeSizeMismatch
	}

	var kind Kind
	switch data[0] {
	case tagFrozen:
		kind = Frozen
	case tagMutable:
		kind = Mutable
	default:
		return nil, fault.ErrInvalidCubeType
	}

	fields, err := SchemaFor(kind).Decompile(data)
	if nil != err {
		return nil, err
	}

	return &Cube{
		kind:   kind,
		data:   data,
		fields: fields,
	}, nil
}

// Kind - the addressing scheme of this cube
func (c *Cube) Kind() Kind {
	return c.kind
}

// Bytes - the compiled binary
//
// this returns the actual buffer - copy the result if it must be
// preserved across later mutation
func (c *Cube) Bytes() []byte {
	return c.data
}

// CopyBytes - an owned copy of the compiled binary
func (c *Cube) CopyBytes() []byte {
	data := make([]byte, Size)
	copy(data, c.data)
	return data
}

// Fields - all fields of a given type in order
func (c *Cube) Fields(fieldType field.Type) []field.Field {
	result := []field.Field(nil)
	for _, f := range c.fields {
		if f.Type == fieldType {
			result = append(result, f)
		}
	}
	return result
}

// First - the first field of a given type
func (c *Cube) First(fieldType field.Type) (field.Field, bool) {
	for _, f := range c.fields {
		if f.Type == fieldType {
			return f, true
		}
	}
	return field.Field{}, false
}

// Digest - content digest over the full binary
func (c *Cube) Digest() cubedigest.Digest {
	return cubedigest.NewDigest(c.data)
}

// Key - the address of this cube
//
// for a frozen cube this is only final once mining succeeded
func (c *Cube) Key() (Key, error) {
	if Mutable == c.kind {
		return KeyFromBytes(c.data[MutablePublicKeyOffset:MutableDateOffset])
	}
	return Key(c.Digest()), nil
}

// Owner - the owning account of a mutable cube
func (c *Cube) Owner() (*account.Account, error) {
	if Mutable != c.kind {
		return nil, fault.ErrNotMutableCube
	}
	return account.AccountFromBytes(c.data[MutablePublicKeyOffset:MutableDateOffset])
}

// Signature - the embedded signature of a mutable cube
func (c *Cube) Signature() (account.Signature, error) {
	if Mutable != c.kind {
		return nil, fault.ErrNotMutableCube
	}
	return account.Signature(c.data[MutableSignatureOffset:]), nil
}

// SetSignature - write the signature field of a mutable cube
func (c *Cube) SetSignature(signature account.Signature) error {
	if Mutable != c.kind {
		return fault.ErrNotMutableCube
	}
	if SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	copy(c.data[MutableSignatureOffset:], signature)
	return nil
}

// SignedPart - the bytes a mutable cube's signature covers
func (c *Cube) SignedPart() ([]byte, error) {
	if Mutable != c.kind {
		return nil, fault.ErrNotMutableCube
	}
	return c.data[:MutableSignedLength], nil
}

// Timestamp - the embedded date in seconds
func (c *Cube) Timestamp() uint64 {
	if Mutable == c.kind {
		return timestamp(c.data[MutableDateOffset:MutableSignatureOffset])
	}
	return timestamp(c.data[FrozenDateOffset:FrozenNonceOffset])
}

// SetTimestamp - rewrite the embedded date
//
// only sensible on a mutable cube before re-signing; a frozen cube's
// date is fixed at creation
func (c *Cube) SetTimestamp(seconds uint64) error {
	if Mutable != c.kind {
		return fault.ErrNotMutableCube
	}
	putTimestamp(c.data[MutableDateOffset:MutableSignatureOffset], seconds)
	return nil
}

// Relationships - parse every relates-to field
func (c *Cube) Relationships() []field.Relationship {
	result := []field.Relationship(nil)
	for _, f := range c.fields {
		if field.RelatesTo != f.Type {
			continue
		}
		r, err := field.ParseRelationship(f)
		if nil != err {
			continue // malformed network data is simply skipped
		}
		result = append(result, r)
	}
	return result
}

// Payload - the first application payload field value
func (c *Cube) Payload() []byte {
	if f, ok := c.First(field.Payload); ok {
		return f.Value
	}
	return nil
}

// ContentType - the application content tag
func (c *Cube) ContentType() (byte, bool) {
	if f, ok := c.First(field.ContentType); ok && 1 == len(f.Value) {
		return f.Value[0], true
	}
	return 0, false
}

// Info - enumeration metadata for this cube
func (c *Cube) Info() (Info, error) {
	key, err := c.Key()
	if nil != err {
		return Info{}, err
	}
	return Info{
		Key:       key,
		Timestamp: c.Timestamp(),
		Data:      c.data,
	}, nil
}

// 5 byte big endian seconds
func putTimestamp(buffer []byte, seconds uint64) {
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], seconds)
	copy(buffer, scratch[8-TimestampSize:])
}

func timestamp(buffer []byte) uint64 {
	var scratch [8]byte
	copy(scratch[8-TimestampSize:], buffer[:TimestampSize])
	return binary.BigEndian.Uint64(scratch[:])
}
