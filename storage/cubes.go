// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/difficulty"
	"github.com/cubenet/cubed/fault"
	"github.com/cubenet/cubed/muc"
)

// Add - validate and store a cube, announcing it on the added stream
//
// a frozen cube must satisfy the current difficulty; a mutable cube
// must win the contest against the stored version: valid signature and
// timestamp at least the configured rebuild delay past it
//
// storing an already known frozen cube is a no-op
func Add(c *cube.Cube) error {

	// hold the read lock for the whole store so Finalise cannot close
	// the announcement channel while a send is still pending
	poolData.RLock()
	defer poolData.RUnlock()

	if !poolData.initialised {
		return fault.ErrNotInitialised
	}

	key, err := c.Key()
	if nil != err {
		return err
	}

	switch c.Kind() {

	case cube.Frozen:
		if !difficulty.Valid(c.Digest(), difficulty.Current.Bits()) {
			return fault.ErrInsufficientDifficulty
		}
		// identical content re-announced by another peer
		if Pool.Cubes.Has(key[:]) {
			return nil
		}

	case cube.Mutable:
		var current *cube.Cube
		if data := Pool.Cubes.Get(key[:]); nil != data {
			current, err = cube.FromBytes(data)
			if nil != err {
				// stored bytes are unreadable: allow the replacement
				current = nil
			}
		}
		err = muc.Accept(current, c, poolData.minDelay)
		if nil != err {
			return err
		}

	default:
		return fault.ErrInvalidCubeType
	}

	timestamp := make([]byte, 8)
	binary.BigEndian.PutUint64(timestamp, c.Timestamp())

	Pool.Cubes.Put(key[:], c.Bytes())
	Pool.Info.Put(key[:], timestamp)

	info, err := c.Info()
	if nil != err {
		return err
	}
	poolData.added <- info
	return nil
}

// AddFromNetwork - store a cube received from an untrusted peer
//
// cryptographic rejection of network input is absence, not failure:
// log and drop, never error back into the ingest path
func AddFromNetwork(c *cube.Cube) error {
	err := Add(c)
	if nil == err {
		return nil
	}
	if fault.ErrInsufficientDifficulty == err || fault.ErrInvalidSignature == err || fault.ErrUpdateTooSoon == err {
		poolData.log.Infof("dropped cube: %v", err)
		return nil
	}
	return err
}

// Get - fetch a stored cube by key
func Get(key cube.Key) (*cube.Cube, error) {
	data := Pool.Cubes.Get(key[:])
	if nil == data {
		return nil, fault.ErrKeyNotFound
	}
	return cube.FromBytes(data)
}

// Has - check a key without fetching the record
func Has(key cube.Key) bool {
	return Pool.Cubes.Has(key[:])
}

// GetAll - enumerate every stored cube
//
// used for the initial replay that rebuilds the derived indexes
func GetAll() ([]cube.Info, error) {

	infos := Pool.Info.Fetch()
	results := make([]cube.Info, 0, len(infos))

	for _, e := range infos {
		key, err := cube.KeyFromBytes(e.Key)
		if nil != err {
			return nil, err
		}
		if 8 != len(e.Value) {
			return nil, fault.ErrFieldTruncated
		}
		data := Pool.Cubes.Get(e.Key)
		if nil == data {
			return nil, fault.ErrKeyNotFound
		}
		results = append(results, cube.Info{
			Key:       key,
			Timestamp: binary.BigEndian.Uint64(e.Value),
			Data:      data,
		})
	}
	return results, nil
}

// Added - the notification stream of accepted cubes
//
// closed by Finalise
func Added() <-chan cube.Info {
	return poolData.added
}
