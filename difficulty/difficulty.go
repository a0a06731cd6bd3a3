// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package difficulty - proof-of-work target for frozen cubes
//
// the difficulty is the number of trailing zero bits the content
// digest of a cube must carry; zero disables the work requirement
package difficulty

import (
	"fmt"
	"sync"

	"github.com/cubenet/cubed/cubedigest"
)

// DefaultBits - the default required trailing zero bit count
const DefaultBits = 7

// MaximumBits - upper bound, a full digest of zero bits
const MaximumBits = 8 * cubedigest.Length

// Difficulty - a shared required bit count
type Difficulty struct {
	sync.RWMutex

	bits int
}

// Current - the difficulty applied to incoming frozen cubes
var Current = &Difficulty{
	bits: DefaultBits,
}

// New - create a difficulty with the default value
func New() *Difficulty {
	return &Difficulty{
		bits: DefaultBits,
	}
}

// Bits - get the required trailing zero bit count
func (difficulty *Difficulty) Bits() int {
	difficulty.RLock()
	defer difficulty.RUnlock()
	return difficulty.bits
}

// SetBits - change the required trailing zero bit count
func (difficulty *Difficulty) SetBits(bits int) *Difficulty {
	if bits < 0 || bits > MaximumBits {
		panic("difficulty.SetBits: out of range")
	}
	difficulty.Lock()
	difficulty.bits = bits
	difficulty.Unlock()
	return difficulty
}

// String - show the bit count (for %s)
func (difficulty *Difficulty) String() string {
	difficulty.RLock()
	defer difficulty.RUnlock()
	return fmt.Sprintf("%d", difficulty.bits)
}

// Valid - the proof-of-work predicate
//
// a digest satisfies the difficulty when it has at least bits trailing
// zero bits
func Valid(digest cubedigest.Digest, bits int) bool {
	return digest.TrailingZeroBits() >= bits
}
