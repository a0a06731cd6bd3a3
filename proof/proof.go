// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - proof-of-work mining for frozen cubes
//
// the mining loop runs on its own goroutine and owns the candidate
// buffer outright; the caller hands the buffer over, never touches it
// again and receives the result on a channel
//
// there is no cancellation: a caller that no longer wants the result
// simply discards the channel once it resolves
package proof

import (
	"encoding/binary"
	"fmt"

	"github.com/cubenet/cubed/cubedigest"
	"github.com/cubenet/cubed/fault"
)

// NonceSize - width of the nonce sub-field
const NonceSize = 4

// Result - outcome of one mining attempt
//
// on success Data holds the mined buffer and Digest its content digest
// satisfying the difficulty; on failure Err is set and the other
// fields are zero
type Result struct {
	Digest cubedigest.Digest
	Nonce  uint32
	Data   []byte
	Err    error
}

// Mine - search for a nonce giving the required trailing zero bits
//
// ownership of data transfers to the mining goroutine: the caller must
// not read or write the slice after this call; the buffer comes back
// inside the Result
//
// the search is CPU bound and unbounded in the worst case; any timeout
// policy is the caller's to impose
func Mine(data []byte, nonceOffset int, bits int) <-chan Result {
	done := make(chan Result, 1)

	go func() {
		defer func() {
			if r := recover(); nil != r {
				done <- Result{
					Err: fault.ProcessError(fmt.Sprintf("mining failed: %v", r)),
				}
			}
		}()
		done <- mine(data, nonceOffset, bits)
	}()

	return done
}

// the actual search loop
func mine(data []byte, nonceOffset int, bits int) Result {
	nonceField := data[nonceOffset : nonceOffset+NonceSize]

	for nonce := uint32(0); ; nonce += 1 {
		binary.BigEndian.PutUint32(nonceField, nonce)

		digest := cubedigest.NewDigest(data)
		if digest.TrailingZeroBits() >= bits {
			return Result{
				Digest: digest,
				Nonce:  nonce,
				Data:   data,
			}
		}

		if 0xffffffff == nonce {
			return Result{
				Err: fault.ErrNonceExhausted,
			}
		}
	}
}

// Verify - re-check the proof-of-work predicate over a buffer
func Verify(data []byte, bits int) error {
	if cubedigest.NewDigest(data).TrailingZeroBits() < bits {
		return fault.ErrInsufficientDifficulty
	}
	return nil
}
