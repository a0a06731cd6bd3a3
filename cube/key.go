// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cube

import (
	"encoding/hex"

	"github.com/cubenet/cubed/fault"
)

// Key - the address of a cube
//
// either a content digest (frozen) or an ed25519 public key (mutable)
type Key [KeySize]byte

// KeyFromBytes - convert a byte slice to a key
func KeyFromBytes(b []byte) (Key, error) {
	var key Key
	if KeySize != len(b) {
		return key, fault.ErrInvalidKeyLength
	}
	copy(key[:], b)
	return key, nil
}

// String - convert a binary key to hex string for use by the fmt package (for %s)
func (key Key) String() string {
	return hex.EncodeToString(key[:])
}

// GoString - convert a binary key to hex string for use by the fmt package (for %#v)
func (key Key) GoString() string {
	return "<key:" + hex.EncodeToString(key[:]) + ">"
}

// MarshalText - convert key to hex text
func (key Key) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(KeySize)
	buffer := make([]byte, size)
	hex.Encode(buffer, key[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a key
func (key *Key) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	if KeySize != byteCount {
		return fault.ErrInvalidKeyLength
	}
	copy(key[:], buffer)
	return nil
}
