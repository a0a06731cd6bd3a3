// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cubenet/cubed/annotate"
	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/fault"
)

// application level codes carried inside records
const (
	contentPost     = 0x01
	contentIdentity = 0x03

	relationshipClaim = 0x01
	relationshipReply = 0x02
)

// postRules - structural rules of the posting application
//
// the engine is generic; these decide what counts as a post, an
// identity, an authorship claim and a reply
type postRules struct{}

func (postRules) ParseIdentity(c *cube.Cube) (*annotate.Identity, error) {
	contentType, ok := c.ContentType()
	if !ok || contentIdentity != contentType {
		return nil, fault.ErrNotIdentityRecord
	}

	name := c.Payload()
	if 0 == len(name) {
		return nil, fault.ErrNotIdentityRecord
	}

	key, err := c.Key()
	if nil != err {
		return nil, err
	}

	return &annotate.Identity{
		Key:  key,
		Name: string(name),
		Cube: c,
	}, nil
}

func (postRules) ValidPost(c *cube.Cube) bool {
	contentType, ok := c.ContentType()
	return ok && contentPost == contentType && 0 != len(c.Payload())
}

func (postRules) ClaimType() uint8 {
	return relationshipClaim
}

func (postRules) ReplyType() uint8 {
	return relationshipReply
}
