// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Cubes *PoolHandle `prefix:"C"`
	Info  *PoolHandle `prefix:"I"`
}

// Pool - the set of exported pools
var Pool pools

// notification queue size
const addedQueueSize = 1000

// holds the database handle
var poolData struct {
	sync.RWMutex
	db       *leveldb.DB
	log      *logger.L
	added    chan cube.Info
	minDelay uint64

	// set once during initialise
	initialised bool
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed; minDelay is the
// contest window in seconds for mutable cube updates
func Initialise(database string, minDelay uint64) error {
	poolData.Lock()
	defer poolData.Unlock()

	if poolData.initialised {
		return fault.ErrAlreadyInitialised
	}

	poolData.log = logger.New("storage")
	poolData.log.Info("starting…")

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		return err
	}

	poolData.db = db
	poolData.added = make(chan cube.Info, addedQueueSize)
	poolData.minDelay = minDelay

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	poolData.initialised = true
	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if !poolData.initialised {
		return
	}

	poolData.log.Info("shutting down…")

	close(poolData.added)
	poolData.db.Close()
	poolData.db = nil

	// release all of the pools
	poolValue := reflect.ValueOf(&Pool).Elem()
	for i := 0; i < poolValue.NumField(); i += 1 {
		poolValue.Field(i).Set(reflect.Zero(poolValue.Field(i).Type()))
	}

	poolData.initialised = false
	poolData.log.Info("finished")
	poolData.log.Flush()
}
