// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cube

// Info - lightweight record metadata
//
// enough to enumerate and ingest cubes without a full field decode
type Info struct {
	Key       Key
	Timestamp uint64
	Data      []byte
}

// Cube - decode the full record
func (info Info) Cube() (*Cube, error) {
	return FromBytes(info.Data)
}
