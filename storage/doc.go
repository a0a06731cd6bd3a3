// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the persistent cube store
//
// maintain the on-disk copy of all known cubes in a single LevelDB
// database split into prefixed pools:
//
//   C ‣ cube key   → full 1024 byte record
//   I ‣ cube key   → 8 byte big endian timestamp
//
// the info pool allows enumeration without decoding any record
//
// Add enforces record validity: proof-of-work for frozen cubes and the
// signature/timestamp contest for mutable cubes; every accepted cube
// is announced on the Added stream that feeds the derived indexes
package storage
