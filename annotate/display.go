// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package annotate

import (
	"github.com/cubenet/cubed/cube"
)

// Displayable - true when a record and its whole reply ancestry can be
// shown
//
// a record is displayable when it is a structurally valid post, its
// author resolves (unless anonymous records are permitted) and every
// record it replies to is itself displayable; any missing or malformed
// link in that chain suppresses display without error
func (e *Engine) Displayable(key cube.Key) bool {
	onPath := make(map[cube.Key]bool)
	return e.displayable(key, onPath)
}

func (e *Engine) displayable(key cube.Key, onPath map[cube.Key]bool) bool {

	// a reply loop can never be fully shown; the set tracks only the
	// current recursion path so a shared ancestor reachable through
	// two sibling replies is checked again rather than refused
	if onPath[key] {
		return false
	}
	onPath[key] = true
	defer delete(onPath, key)

	c, err := e.fetch(key)
	if nil != err {
		return false
	}

	if !e.interpreter.ValidPost(c) {
		return false
	}

	if !e.allowAnonymous && nil == e.CubeAuthor(key) {
		return false
	}

	replyType := e.interpreter.ReplyType()
	for _, r := range c.Relationships() {
		if replyType != r.Type {
			continue
		}
		if !e.displayable(cube.Key(r.RemoteKey), onPath) {
			return false
		}
	}

	return true
}

// Ingest - absorb a newly stored record
//
// registers the record's relationships, learns it when it is an
// identity, then rechecks displayability of every record the arrival
// could have unblocked: the record itself, anything it claims and the
// replies waiting on it
func (e *Engine) Ingest(info cube.Info) {

	err := e.index.Ingest(info)
	if nil != err {
		e.log.Warnf("ingest: undecodable record: %x  error: %s", info.Key, err)
		return
	}

	c, err := info.Cube()
	if nil != err {
		return
	}

	if cube.Mutable == c.Kind() {
		e.LearnIdentity(c)
	}

	visited := make(map[cube.Key]bool)
	e.recheckClaimed(c, visited)

	e.recheck(info.Key)
}

// walk forward claim edges: an arriving identity or chain link can
// complete the authorship chain of records further down
func (e *Engine) recheckClaimed(c *cube.Cube, visited map[cube.Key]bool) {

	claimType := e.interpreter.ClaimType()
	for _, r := range c.Relationships() {
		if claimType != r.Type {
			continue
		}
		target := cube.Key(r.RemoteKey)
		if visited[target] {
			continue
		}
		visited[target] = true

		if next, err := e.fetch(target); nil == err {
			e.recheckClaimed(next, visited)
		}
		e.recheck(target)
	}
}

// announce a record that just became displayable, then cascade to its
// replies so events come out in root to leaf order
func (e *Engine) recheck(key cube.Key) {

	e.RLock()
	done := e.announced[key]
	e.RUnlock()
	if done {
		return
	}

	if !e.Displayable(key) {
		return
	}

	e.Lock()
	if e.announced[key] {
		e.Unlock()
		return
	}
	e.announced[key] = true
	e.Unlock()

	select {
	case e.events <- key:
	default:
		e.log.Warnf("event queue overflow, dropping: %x", key)
	}

	replyType := int(e.interpreter.ReplyType())
	for _, edge := range e.index.Reverse(key, replyType, nil) {
		e.recheck(edge.Source)
	}
}
