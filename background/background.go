// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run processes in the background with a
// shutdown/finished handshake
package background

// Process - a background process instance
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// the shutdown and completed channels for one background
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for the stop routine
type T struct {
	s []shutdown
}

// Start - start up a set of background processes
//
// all are started in the order given and run until Stop is called
func Start(processes Processes, args interface{}) *T {

	register := new(T)
	register.s = make([]shutdown, len(processes))

	// start each background
	for i, p := range processes {
		sh := make(chan struct{})
		fin := make(chan struct{})
		register.s[i].shutdown = sh
		register.s[i].finished = fin
		go func(p Process, sh <-chan struct{}, fin chan<- struct{}) {
			p.Run(args, sh)
			close(fin)
		}(p, sh, fin)
	}
	return register
}

// Stop - stop the set of background processes
//
// requests shutdown of all processes then waits for each to finish
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	for _, shutdown := range t.s {
		close(shutdown.shutdown)
	}

	// wait for finished
	for _, shutdown := range t.s {
		<-shutdown.finished
	}
}
