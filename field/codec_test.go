// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package field_test

import (
	"bytes"
	"testing"

	"github.com/cubenet/cubed/fault"
	"github.com/cubenet/cubed/field"
)

// a reduced schema with the same families as the cube schemas
func testSchema() *field.Schema {
	return field.NewSchema(
		0,
		map[field.Type]int{
			field.ContentType: 1,
			field.RelatesTo:   field.RelationshipLength,
			field.Pad1:        0,
			field.Payload:     field.VariableLength,
			field.Padding:     field.VariableLength,
		},
		[]field.Slot{
			{Type: field.CubeType, Length: 1},
		},
		[]field.Slot{
			{Type: field.Date, Length: 5},
			{Type: field.Nonce, Length: 4},
		},
	)
}

// test that a compiled field list decompiles to the same fields
// including the computed start offsets
func TestRoundTrip(t *testing.T) {
	schema := testSchema()

	relates := make([]byte, field.RelationshipLength)
	relates[0] = 0x21
	for i := 1; i < len(relates); i += 1 {
		relates[i] = byte(i)
	}

	fields := []field.Field{
		field.New(field.CubeType, []byte{0x00}),
		field.New(field.ContentType, []byte{0x42}),
		field.New(field.Payload, []byte("hello cube")),
		field.New(field.RelatesTo, relates),
		field.New(field.Pad1, []byte{}),
		field.New(field.Date, []byte{0x00, 0x01, 0x02, 0x03, 0x04}),
		field.New(field.Nonce, []byte{0x00, 0x00, 0x00, 0x00}),
	}

	buffer, err := schema.Compile(fields)
	if nil != err {
		t.Fatalf("compile error: %v", err)
	}

	// expected: 1 + (1+1) + (2+10) + (1+33) + 1 + 5 + 4
	expectedSize := 1 + 2 + 12 + 34 + 1 + 5 + 4
	if len(buffer) != expectedSize {
		t.Fatalf("compiled size: %d  expected: %d", len(buffer), expectedSize)
	}

	decompiled, err := schema.Decompile(buffer)
	if nil != err {
		t.Fatalf("decompile error: %v", err)
	}

	if len(decompiled) != len(fields) {
		t.Fatalf("field count: %d  expected: %d", len(decompiled), len(fields))
	}
	for i, f := range decompiled {
		if f.Type != fields[i].Type {
			t.Errorf("%d: type: %02x  expected: %02x", i, f.Type, fields[i].Type)
		}
		if !bytes.Equal(f.Value, fields[i].Value) {
			t.Errorf("%d: value: %x  expected: %x", i, f.Value, fields[i].Value)
		}
		if f.Start != fields[i].Start {
			t.Errorf("%d: start: %d  expected: %d", i, f.Start, fields[i].Start)
		}
	}
}

// test the exact header byte layout of a variable-length field
func TestVariableHeaderLayout(t *testing.T) {
	schema := testSchema()

	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}

	fields := []field.Field{
		field.New(field.CubeType, []byte{0x00}),
		field.New(field.Payload, payload),
		field.New(field.Date, []byte{0, 0, 0, 0, 0}),
		field.New(field.Nonce, []byte{0, 0, 0, 0}),
	}

	buffer, err := schema.Compile(fields)
	if nil != err {
		t.Fatalf("compile error: %v", err)
	}

	// header starts after the 1 byte front slot
	// 300 = 0x12c: low 2 bits of first byte = 0x01, second byte = 0x2c
	if buffer[1] != uint8(field.Payload)<<2|0x01 {
		t.Errorf("header byte 1: %02x  expected: %02x", buffer[1], uint8(field.Payload)<<2|0x01)
	}
	if buffer[2] != 0x2c {
		t.Errorf("header byte 2: %02x  expected: %02x", buffer[2], 0x2c)
	}
}

// test that a wrong type in a positional slot is a schema violation
func TestPositionalTypeMismatch(t *testing.T) {
	schema := testSchema()

	fields := []field.Field{
		field.New(field.ContentType, []byte{0x00}), // not the declared front slot type
		field.New(field.Date, []byte{0, 0, 0, 0, 0}),
		field.New(field.Nonce, []byte{0, 0, 0, 0}),
	}

	_, err := schema.Compile(fields)
	if fault.ErrWrongPositionalField != err {
		t.Fatalf("expected ErrWrongPositionalField but got: %v", err)
	}
}

// test that a positional slot with a wrong length is rejected
func TestPositionalLengthMismatch(t *testing.T) {
	schema := testSchema()

	fields := []field.Field{
		field.New(field.CubeType, []byte{0x00, 0x01}),
		field.New(field.Date, []byte{0, 0, 0, 0, 0}),
		field.New(field.Nonce, []byte{0, 0, 0, 0}),
	}

	_, err := schema.Compile(fields)
	if fault.ErrWrongLengthPositionalField != err {
		t.Fatalf("expected ErrWrongLengthPositionalField but got: %v", err)
	}
}

// test that an over-long variable field is rejected
func TestValueTooLong(t *testing.T) {
	schema := testSchema()

	fields := []field.Field{
		field.New(field.CubeType, []byte{0x00}),
		field.New(field.Payload, make([]byte, field.MaxValueLength+1)),
		field.New(field.Date, []byte{0, 0, 0, 0, 0}),
		field.New(field.Nonce, []byte{0, 0, 0, 0}),
	}

	_, err := schema.Compile(fields)
	if fault.ErrFieldValueTooLong != err {
		t.Fatalf("expected ErrFieldValueTooLong but got: %v", err)
	}
}

// test that a missing trailing slot is detected
func TestMissingPositional(t *testing.T) {
	schema := testSchema()

	fields := []field.Field{
		field.New(field.CubeType, []byte{0x00}),
	}

	_, err := schema.Compile(fields)
	if fault.ErrMissingPositionalField != err {
		t.Fatalf("expected ErrMissingPositionalField but got: %v", err)
	}
}

// test decompile failures on malformed buffers
func TestDecompileErrors(t *testing.T) {
	schema := testSchema()

	// shorter than the fixed tail
	_, err := schema.Decompile([]byte{0x00})
	if fault.ErrFieldTruncated != err {
		t.Errorf("short buffer: expected ErrFieldTruncated but got: %v", err)
	}

	// unknown type code in the regular region
	buffer := make([]byte, 12)
	buffer[1] = 0x3f << 2
	_, err = schema.Decompile(buffer)
	if fault.ErrUnknownFieldType != err {
		t.Errorf("unknown type: expected ErrUnknownFieldType but got: %v", err)
	}

	// variable length runs past the end of the regular region
	buffer = make([]byte, 12)
	buffer[1] = uint8(field.Payload) << 2
	buffer[2] = 0xff // claims 255 bytes, only 9 remain before the tail
	_, err = schema.Decompile(buffer)
	if fault.ErrFieldTruncated != err {
		t.Errorf("truncated value: expected ErrFieldTruncated but got: %v", err)
	}
}

// test the header length lookup for each field family
func TestHeaderLength(t *testing.T) {
	schema := testSchema()

	lengthList := []struct {
		fieldType field.Type
		expected  int
	}{
		{field.CubeType, 0},
		{field.Date, 0},
		{field.Nonce, 0},
		{field.ContentType, 1},
		{field.RelatesTo, 1},
		{field.Pad1, 1},
		{field.Payload, 2},
		{field.Padding, 2},
	}

	for i, item := range lengthList {
		if n := schema.HeaderLength(item.fieldType); n != item.expected {
			t.Errorf("%d: header length of %02x: %d  expected: %d", i, item.fieldType, n, item.expected)
		}
	}
}

// test relationship parse round trip and rejection
func TestRelationship(t *testing.T) {
	key := [field.KeyLength]byte{}
	for i := range key {
		key[i] = byte(0xa0 + i)
	}

	f := field.NewRelationship(0x07, key)
	r, err := field.ParseRelationship(f)
	if nil != err {
		t.Fatalf("parse error: %v", err)
	}
	if 0x07 != r.Type {
		t.Errorf("type: %02x  expected: 07", r.Type)
	}
	if r.RemoteKey != key {
		t.Errorf("remote key: %x  expected: %x", r.RemoteKey, key)
	}

	_, err = field.ParseRelationship(field.New(field.Payload, []byte("x")))
	if fault.ErrInvalidRelationship != err {
		t.Fatalf("expected ErrInvalidRelationship but got: %v", err)
	}
}
