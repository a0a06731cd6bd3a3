// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package muc - versioning contest for mutable cubes
//
// a mutable cube is addressed by its public key for its whole life;
// each version carries a timestamp and an ed25519 signature over the
// rest of the compiled bytes
//
// a candidate version replaces the stored one only when its signature
// verifies and its timestamp is at least the minimum rebuild delay
// past the stored version; rebuild requests arriving faster than that
// are coalesced by the Updater rather than dropped
package muc

import (
	"github.com/cubenet/cubed/account"
	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/fault"
)

// Sign - stamp a mutable cube with a timestamp and sign it
func Sign(c *cube.Cube, privateKey *account.PrivateKey, timestamp uint64) error {
	err := c.SetTimestamp(timestamp)
	if nil != err {
		return err
	}
	signed, err := c.SignedPart()
	if nil != err {
		return err
	}
	return c.SetSignature(privateKey.Sign(signed))
}

// Verify - check the embedded signature against the embedded key
func Verify(c *cube.Cube) error {
	owner, err := c.Owner()
	if nil != err {
		return err
	}
	signed, err := c.SignedPart()
	if nil != err {
		return err
	}
	signature, err := c.Signature()
	if nil != err {
		return err
	}
	return owner.CheckSignature(signed, signature)
}

// Accept - the contest rule
//
// nil means the candidate becomes the stored version; a candidate with
// a bad signature is rejected as if it never arrived and one inside
// the rebuild delay returns ErrUpdateTooSoon
//
// current is nil when no version is stored yet
func Accept(current *cube.Cube, candidate *cube.Cube, minDelay uint64) error {
	err := Verify(candidate)
	if nil != err {
		return err
	}

	if nil == current {
		return nil
	}

	currentKey, err := current.Key()
	if nil != err {
		return err
	}
	candidateKey, err := candidate.Key()
	if nil != err {
		return err
	}
	if currentKey != candidateKey {
		return fault.ErrNotMutableCube
	}

	if candidate.Timestamp() < current.Timestamp()+minDelay {
		return fault.ErrUpdateTooSoon
	}
	return nil
}
