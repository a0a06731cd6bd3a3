// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - identity key handling
//
// an account is the ed25519 public key that addresses a mutable cube;
// the matching private key signs each version of the cube
package account

import (
	"bytes"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/cubenet/cubed/fault"
)

// miscellaneous constants
const (
	checksumLength = 4
)

// Account - the public half of an identity key
type Account struct {
	PublicKey []byte
}

// AccountFromBytes - wrap a raw ed25519 public key
func AccountFromBytes(publicKey []byte) (*Account, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &Account{
		PublicKey: publicKey,
	}, nil
}

// AccountFromString - decode the checksummed hex form
func AccountFromString(s string) (*Account, error) {
	decoded, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrCannotDecodeAccount
	}
	if ed25519.PublicKeySize+checksumLength != len(decoded) {
		return nil, fault.ErrInvalidKeyLength
	}
	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}
	return &Account{
		PublicKey: decoded[:checksumStart],
	}, nil
}

// CheckSignature - verify a signature over a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Bytes - the raw public key
func (account *Account) Bytes() []byte {
	return account.PublicKey
}

// String - hex public key followed by a 4 byte sha3 checksum
func (account *Account) String() string {
	checksum := sha3.Sum256(account.PublicKey)
	buffer := make([]byte, 0, ed25519.PublicKeySize+checksumLength)
	buffer = append(buffer, account.PublicKey...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return hex.EncodeToString(buffer)
}

// MarshalText - convert account to text
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert text into an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromString(string(s))
	if nil != err {
		return err
	}
	account.PublicKey = a.PublicKey
	return nil
}
