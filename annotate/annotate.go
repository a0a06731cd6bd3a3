// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package annotate

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/relation"
)

// event queue size
const eventQueueSize = 1000

// Identity - an application persona backed by a mutable cube
type Identity struct {
	Key  cube.Key
	Name string
	Cube *cube.Cube
}

// FetchFunc - resolve a key to its stored record
type FetchFunc func(cube.Key) (*cube.Cube, error)

// Interpreter - application supplied structural rules
//
// the engine itself knows nothing about what a post or a claim looks
// like; the application decides which field shapes mean what
type Interpreter interface {

	// ParseIdentity - reconstruct an identity from a mutable cube
	//
	// error when the content is not a structurally valid identity
	ParseIdentity(c *cube.Cube) (*Identity, error)

	// ValidPost - true when the record has the application's expected
	// content shape: non-empty payload and correct content type tag
	ValidPost(c *cube.Cube) bool

	// ClaimType - relationship code of authorship claims
	ClaimType() uint8

	// ReplyType - relationship code of reply-to pointers
	ReplyType() uint8
}

// Options - engine policy knobs
type Options struct {
	// permit records whose author cannot be resolved
	AllowAnonymous bool
}

// Engine - the annotation state
//
// composed over the generic reverse index by reference; predicates are
// pure functions of the currently known state so answers stay
// consistent while records keep arriving
type Engine struct {
	index          *relation.Index
	fetch          FetchFunc
	interpreter    Interpreter
	allowAnonymous bool
	log            *logger.L

	sync.RWMutex
	identities map[cube.Key]*Identity
	announced  map[cube.Key]bool
	events     chan cube.Key
}

// New - create an engine over an index and a record fetcher
func New(index *relation.Index, fetch FetchFunc, interpreter Interpreter, options Options, log *logger.L) *Engine {
	return &Engine{
		index:          index,
		fetch:          fetch,
		interpreter:    interpreter,
		allowAnonymous: options.AllowAnonymous,
		log:            log,
		identities:     make(map[cube.Key]*Identity),
		announced:      make(map[cube.Key]bool),
		events:         make(chan cube.Key, eventQueueSize),
	}
}

// Events - stream of keys that newly became displayable
//
// events arrive in root-to-leaf causal order regardless of the arrival
// order of the underlying records
func (e *Engine) Events() <-chan cube.Key {
	return e.events
}

// LearnIdentity - remember a record that parses as a valid identity
func (e *Engine) LearnIdentity(c *cube.Cube) bool {
	if cube.Mutable != c.Kind() {
		return false
	}
	identity, err := e.interpreter.ParseIdentity(c)
	if nil != err {
		return false
	}

	e.Lock()
	e.identities[identity.Key] = identity
	e.Unlock()
	return true
}

// KnownIdentity - look up a learned identity by key
func (e *Engine) KnownIdentity(key cube.Key) (*Identity, bool) {
	e.RLock()
	identity, ok := e.identities[key]
	e.RUnlock()
	return identity, ok
}
