// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cube_test

import (
	"bytes"
	"testing"

	"github.com/cubenet/cubed/account"
	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/fault"
	"github.com/cubenet/cubed/field"
)

// test frozen cube build and re-decode
func TestFrozenCube(t *testing.T) {

	content := []field.Field{
		field.New(field.ContentType, []byte{0x01}),
		field.New(field.Payload, []byte("first post")),
	}

	c, err := cube.NewFrozen(content, 1700000000)
	if nil != err {
		t.Fatalf("new frozen error: %v", err)
	}

	if cube.Frozen != c.Kind() {
		t.Fatalf("kind: %d  expected frozen", c.Kind())
	}
	if cube.Size != len(c.Bytes()) {
		t.Fatalf("size: %d  expected: %d", len(c.Bytes()), cube.Size)
	}
	if 1700000000 != c.Timestamp() {
		t.Fatalf("timestamp: %d  expected: 1700000000", c.Timestamp())
	}
	if !bytes.Equal([]byte("first post"), c.Payload()) {
		t.Fatalf("payload: %q", c.Payload())
	}
	contentType, ok := c.ContentType()
	if !ok || 0x01 != contentType {
		t.Fatalf("content type: %02x %v", contentType, ok)
	}

	// key is the content digest
	key, err := c.Key()
	if nil != err {
		t.Fatalf("key error: %v", err)
	}
	if cube.Key(c.Digest()) != key {
		t.Fatalf("key: %s  expected digest: %s", key, c.Digest())
	}

	// round trip through the wire form
	back, err := cube.FromBytes(c.CopyBytes())
	if nil != err {
		t.Fatalf("from bytes error: %v", err)
	}
	backKey, _ := back.Key()
	if key != backKey {
		t.Fatalf("key after round trip: %s  expected: %s", backKey, key)
	}
}

// test mutable cube build, key stability and signature plumbing
func TestMutableCube(t *testing.T) {

	privateKey, owner, err := account.NewKeypair()
	if nil != err {
		t.Fatalf("keypair error: %v", err)
	}

	content := []field.Field{
		field.New(field.ContentType, []byte{0x02}),
		field.New(field.Payload, []byte("identity: alice")),
	}

	c, err := cube.NewMutable(owner, content, 1700000100)
	if nil != err {
		t.Fatalf("new mutable error: %v", err)
	}

	if cube.Mutable != c.Kind() {
		t.Fatalf("kind: %d  expected mutable", c.Kind())
	}

	key, err := c.Key()
	if nil != err {
		t.Fatalf("key error: %v", err)
	}
	if !bytes.Equal(owner.PublicKey, key[:]) {
		t.Fatalf("key: %x  expected: %x", key, owner.PublicKey)
	}

	// sign over the signed part
	signed, err := c.SignedPart()
	if nil != err {
		t.Fatalf("signed part error: %v", err)
	}
	err = c.SetSignature(privateKey.Sign(signed))
	if nil != err {
		t.Fatalf("set signature error: %v", err)
	}

	decodedOwner, err := c.Owner()
	if nil != err {
		t.Fatalf("owner error: %v", err)
	}
	signature, err := c.Signature()
	if nil != err {
		t.Fatalf("signature error: %v", err)
	}
	err = decodedOwner.CheckSignature(signed, signature)
	if nil != err {
		t.Fatalf("check signature error: %v", err)
	}

	// key must not change when content dates change
	err = c.SetTimestamp(1700000200)
	if nil != err {
		t.Fatalf("set timestamp error: %v", err)
	}
	if 1700000200 != c.Timestamp() {
		t.Fatalf("timestamp: %d  expected: 1700000200", c.Timestamp())
	}
	unchanged, _ := c.Key()
	if key != unchanged {
		t.Fatalf("key changed across versions: %s -> %s", key, unchanged)
	}
}

// test relationship extraction
func TestRelationships(t *testing.T) {

	var remote [field.KeyLength]byte
	for i := range remote {
		remote[i] = byte(i)
	}

	content := []field.Field{
		field.New(field.ContentType, []byte{0x01}),
		field.New(field.Payload, []byte("a reply")),
		field.NewRelationship(0x03, remote),
	}

	c, err := cube.NewFrozen(content, 1700000000)
	if nil != err {
		t.Fatalf("new frozen error: %v", err)
	}

	relationships := c.Relationships()
	if 1 != len(relationships) {
		t.Fatalf("relationship count: %d  expected: 1", len(relationships))
	}
	if 0x03 != relationships[0].Type {
		t.Errorf("relationship type: %02x  expected: 03", relationships[0].Type)
	}
	if remote != relationships[0].RemoteKey {
		t.Errorf("remote key: %x  expected: %x", relationships[0].RemoteKey, remote)
	}
}

// test oversize content and malformed wire data
func TestCubeErrors(t *testing.T) {

	// payload cannot exceed the single field limit
	content := []field.Field{
		field.New(field.Payload, make([]byte, field.MaxValueLength+1)),
	}
	_, err := cube.NewFrozen(content, 0)
	if fault.ErrFieldValueTooLong != err {
		t.Fatalf("expected ErrFieldValueTooLong but got: %v", err)
	}

	// two maximum payloads cannot fit one cube
	content = []field.Field{
		field.New(field.Payload, make([]byte, field.MaxValueLength)),
		field.New(field.Payload, make([]byte, field.MaxValueLength)),
	}
	_, err = cube.NewFrozen(content, 0)
	if fault.ErrFieldOverflow != err {
		t.Fatalf("expected ErrFieldOverflow but got: %v", err)
	}

	// wrong total size
	_, err = cube.FromBytes(make([]byte, cube.Size-1))
	if fault.ErrCubeSizeMismatch != err {
		t.Fatalf("expected ErrCubeSizeMismatch but got: %v", err)
	}

	// unknown cube type tag
	data := make([]byte, cube.Size)
	data[0] = 0x7f
	_, err = cube.FromBytes(data)
	if fault.ErrInvalidCubeType != err {
		t.Fatalf("expected ErrInvalidCubeType but got: %v", err)
	}
}

// test that padding always produces an exact fit
func TestPaddingFit(t *testing.T) {

	// sweep payload sizes so the free space crosses the 0, 1 and 2+
	// byte padding cases; 1012 is an exact fit, 1011 leaves a single
	// spare byte
	sizes := []int{1012, 1011, 1010, 1009}
	for size := 0; size < 48; size += 1 {
		sizes = append(sizes, size)
	}
	for _, size := range sizes {
		content := []field.Field{
			field.New(field.Payload, make([]byte, size)),
		}
		c, err := cube.NewFrozen(content, 1)
		if nil != err {
			t.Fatalf("size %d: new frozen error: %v", size, err)
		}
		if cube.Size != len(c.Bytes()) {
			t.Fatalf("size %d: compiled %d bytes", size, len(c.Bytes()))
		}
		if _, err := cube.FromBytes(c.CopyBytes()); nil != err {
			t.Fatalf("size %d: re-decode error: %v", size, err)
		}
	}
}
