// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/field"
	"github.com/cubenet/cubed/proof"
)

// difficulty low enough to complete quickly but high enough to force
// a real search
const testBits = 10

func TestMine(t *testing.T) {

	c, err := cube.NewFrozen([]field.Field{
		field.New(field.ContentType, []byte{0x01}),
		field.New(field.Payload, []byte("mine me")),
	}, 1700000000)
	assert.Nil(t, err, "new frozen error")

	result := <-proof.Mine(c.CopyBytes(), cube.FrozenNonceOffset, testBits)
	assert.Nil(t, result.Err, "mining error")
	assert.Equal(t, cube.Size, len(result.Data), "mined buffer size")

	// the invariant: digest has at least the required zero bits
	assert.True(t, result.Digest.TrailingZeroBits() >= testBits, "insufficient difficulty")
	assert.Nil(t, proof.Verify(result.Data, testBits), "verify error")

	// the mined buffer must still decode and only the nonce changed
	mined, err := cube.FromBytes(result.Data)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, []byte("mine me"), mined.Payload(), "payload changed")
	assert.Equal(t, uint64(1700000000), mined.Timestamp(), "timestamp changed")
}

func TestMineDifficultyZero(t *testing.T) {

	c, err := cube.NewFrozen(nil, 1)
	assert.Nil(t, err, "new frozen error")

	// difficulty zero accepts the first candidate
	result := <-proof.Mine(c.CopyBytes(), cube.FrozenNonceOffset, 0)
	assert.Nil(t, result.Err, "mining error")
	assert.Equal(t, uint32(0), result.Nonce, "nonce")
}

// mining must not block the caller
func TestMineAsynchronous(t *testing.T) {

	c, err := cube.NewFrozen(nil, 2)
	assert.Nil(t, err, "new frozen error")

	start := time.Now()
	done := proof.Mine(c.CopyBytes(), cube.FrozenNonceOffset, 16)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Mine blocked the caller for: %s", elapsed)
	}

	result := <-done
	assert.Nil(t, result.Err, "mining error")
	assert.Nil(t, proof.Verify(result.Data, 16), "verify error")
}

// an out of range nonce offset must reject, not crash the caller
func TestMineWorkerFailure(t *testing.T) {

	result := <-proof.Mine(make([]byte, 8), 1024, testBits)
	assert.NotNil(t, result.Err, "expected a mining failure")
}
