// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/cubenet/cubed/fault"
)

// PrivateKey - the signing half of an identity key
type PrivateKey struct {
	PrivateKey []byte
}

// NewKeypair - generate a fresh identity key
func NewKeypair() (*PrivateKey, *Account, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, nil, err
	}
	return &PrivateKey{
			PrivateKey: privateKey,
		}, &Account{
			PublicKey: publicKey,
		}, nil
}

// PrivateKeyFromBytes - wrap a raw ed25519 private key
func PrivateKeyFromBytes(privateKeyBytes []byte) (*PrivateKey, error) {
	if ed25519.PrivateKeySize != len(privateKeyBytes) {
		return nil, fault.ErrNotPrivateKey
	}
	return &PrivateKey{
		PrivateKey: privateKeyBytes,
	}, nil
}

// Sign - create a signature over a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(privateKey.PrivateKey, message))
}

// Account - the matching public account
func (privateKey *PrivateKey) Account() *Account {
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, privateKey.PrivateKey[ed25519.PublicKeySize:])
	return &Account{
		PublicKey: publicKey,
	}
}

// Bytes - the raw private key
func (privateKey *PrivateKey) Bytes() []byte {
	return privateKey.PrivateKey
}
