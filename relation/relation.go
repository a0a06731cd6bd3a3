// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package relation - the derived reverse-relationship index
//
// cube bodies only carry forward pointers; this index answers "who
// references cube X" without a full store scan
//
// the index is rebuilt from a full replay at startup and updated from
// the live ingestion stream; it is never authoritative and never
// deletes entries as the record population is append-only
package relation

import (
	"sync"

	"github.com/cubenet/cubed/cube"
)

// AnyType - type filter wildcard for queries
const AnyType = -1

// Reverse - one derived back-reference
//
// records that the Source cube declares a forward relationship of
// Type to the cube the entry is filed under
type Reverse struct {
	Type   uint8
	Source cube.Key
}

// Index - the reverse edge map
type Index struct {
	sync.RWMutex
	edges map[cube.Key][]Reverse
}

// NewIndex - create an empty index
func NewIndex() *Index {
	return &Index{
		edges: make(map[cube.Key][]Reverse),
	}
}

// Ingest - extract and file the forward relationships of one record
//
// called synchronously in arrival order; the insert is idempotent so
// replaying a record is harmless
func (ix *Index) Ingest(info cube.Info) error {

	c, err := info.Cube()
	if nil != err {
		return err
	}

	relationships := c.Relationships()
	if 0 == len(relationships) {
		return nil
	}

	ix.Lock()
	defer ix.Unlock()

insert:
	for _, r := range relationships {
		remote := cube.Key(r.RemoteKey)
		for _, existing := range ix.edges[remote] {
			if existing.Type == r.Type && existing.Source == info.Key {
				continue insert
			}
		}
		ix.edges[remote] = append(ix.edges[remote], Reverse{
			Type:   r.Type,
			Source: info.Key,
		})
	}
	return nil
}

// Reverse - the reverse relationships filed under a key
//
// typeFilter AnyType matches every relationship type; a nil
// sourceFilter matches every source
func (ix *Index) Reverse(key cube.Key, typeFilter int, sourceFilter *cube.Key) []Reverse {
	ix.RLock()
	defer ix.RUnlock()

	results := []Reverse(nil)
	for _, r := range ix.edges[key] {
		if AnyType != typeFilter && uint8(typeFilter) != r.Type {
			continue
		}
		if nil != sourceFilter && *sourceFilter != r.Source {
			continue
		}
		results = append(results, r)
	}
	return results
}

// FirstReverse - the first matching reverse relationship
func (ix *Index) FirstReverse(key cube.Key, typeFilter int, sourceFilter *cube.Key) (Reverse, bool) {
	ix.RLock()
	defer ix.RUnlock()

	for _, r := range ix.edges[key] {
		if AnyType != typeFilter && uint8(typeFilter) != r.Type {
			continue
		}
		if nil != sourceFilter && *sourceFilter != r.Source {
			continue
		}
		return r, true
	}
	return Reverse{}, false
}
