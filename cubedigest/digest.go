// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cubedigest

import (
	"encoding/hex"
	"fmt"
	"math/bits"

	"golang.org/x/crypto/sha3"

	"github.com/cubenet/cubed/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - the content digest of a cube
//
// computed as SHA3-256 over the full compiled binary
type Digest [Length]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return Digest(sha3.Sum256(record))
}

// TrailingZeroBits - count zero bits from the tail of the digest
//
// the count starts at bit 0 of the last byte and continues through
// preceding bytes; the same routine is used by the mining loop and the
// validity predicate so the two cannot disagree
func (digest Digest) TrailingZeroBits() int {
	count := 0
	for i := Length - 1; i >= 0; i -= 1 {
		if 0 == digest[i] {
			count += 8
			continue
		}
		count += bits.TrailingZeros8(digest[i])
		break
	}
	return count
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	buffer := make([]byte, hex.DecodedLen(len(token)))
	byteCount, err := hex.Decode(buffer, token)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.ErrInvalidKeyLength
	}
	copy(digest[:], buffer)
	return nil
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(Length)
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.ErrInvalidKeyLength
	}
	copy(digest[:], buffer)
	return nil
}
