// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package annotate

import (
	"github.com/cubenet/cubed/cube"
)

// CubeAuthor - resolve the identity that claims a record
//
// follows the first reverse claim edge into the record; when the edge
// source is not itself an identity it must be a claim-chain link, so
// the walk recurses towards the chain's root
//
// nil when no chain reaches a known identity or an intermediate record
// is missing or malformed; records from the network are untrusted so
// this degrades silently rather than erroring
func (e *Engine) CubeAuthor(key cube.Key) *Identity {
	visited := make(map[cube.Key]bool)
	return e.author(key, visited)
}

func (e *Engine) author(key cube.Key, visited map[cube.Key]bool) *Identity {

	edge, ok := e.index.FirstReverse(key, int(e.interpreter.ClaimType()), nil)
	if !ok {
		return nil
	}
	source := edge.Source

	if identity, ok := e.KnownIdentity(source); ok {
		return identity
	}

	// malformed chains may loop
	if visited[source] {
		return nil
	}
	visited[source] = true

	c, err := e.fetch(source)
	if nil != err {
		return nil
	}

	// a mutable source must reconstruct as an identity; failure is a
	// resolution miss, not a chain link
	if cube.Mutable == c.Kind() {
		identity, err := e.interpreter.ParseIdentity(c)
		if nil != err {
			return nil
		}
		e.Lock()
		e.identities[identity.Key] = identity
		e.Unlock()
		return identity
	}

	// a frozen source is a chain link: find who claims it
	return e.author(source, visited)
}
