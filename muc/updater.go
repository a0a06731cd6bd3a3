// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package muc

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/cubenet/cubed/cube"
)

// internal constants
const (
	requestQueueSize = 64
	updateQueueSize  = 64
)

// BuildFunc - produce a fresh signed version of the identity's cube
//
// the timestamp is chosen by the updater so the contest rule accepts
// the result; the function must stamp and sign with exactly this value
type BuildFunc func(timestamp uint64) (*cube.Cube, error)

// Updater - per-identity rebuild coalescer
//
// requests inside the rebuild delay window are deferred and coalesced
// so exactly one rebuild fires per window, built from the most
// recently requested state at fire time
type Updater struct {
	minDelay uint64
	log      *logger.L
	request  chan BuildFunc
	updates  chan *cube.Cube

	// owned by the Run goroutine
	lastFired     time.Time
	lastTimestamp uint64
}

// NewUpdater - create a stopped updater
//
// start it with background.Start using the Run method
func NewUpdater(minDelaySeconds uint64, log *logger.L) *Updater {
	return &Updater{
		minDelay: minDelaySeconds,
		log:      log,
		request:  make(chan BuildFunc, requestQueueSize),
		updates:  make(chan *cube.Cube, updateQueueSize),
	}
}

// Request - ask for a rebuild using the supplied builder
func (u *Updater) Request(build BuildFunc) {
	u.request <- build
}

// Updates - stream of accepted rebuilt versions
//
// closed when the updater shuts down
func (u *Updater) Updates() <-chan *cube.Cube {
	return u.updates
}

// Run - the coalescing loop, started as a background process
func (u *Updater) Run(args interface{}, shutdown <-chan struct{}) {

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false
	var pending BuildFunc

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case build := <-u.request:
			pending = build
			if armed {
				continue loop // coalesce into the armed rebuild
			}
			wait := u.holdoff()
			if wait <= 0 {
				u.fire(pending)
				pending = nil
				continue loop
			}
			timer.Reset(wait)
			armed = true

		case <-timer.C:
			armed = false
			if nil != pending {
				u.fire(pending)
				pending = nil
			}
		}
	}

	if armed && !timer.Stop() {
		<-timer.C
	}
	close(u.updates)
}

// time until the next rebuild may fire
func (u *Updater) holdoff() time.Duration {
	if u.lastFired.IsZero() {
		return 0
	}
	return time.Duration(u.minDelay)*time.Second - time.Since(u.lastFired)
}

// run one rebuild with a timestamp the contest rule will accept
func (u *Updater) fire(build BuildFunc) {
	timestamp := uint64(time.Now().Unix())
	if 0 != u.lastTimestamp && timestamp < u.lastTimestamp+u.minDelay {
		timestamp = u.lastTimestamp + u.minDelay
	}

	c, err := build(timestamp)
	if nil != err {
		u.log.Errorf("rebuild failed: %v", err)
		return
	}

	u.lastFired = time.Now()
	u.lastTimestamp = timestamp
	u.updates <- c
}
