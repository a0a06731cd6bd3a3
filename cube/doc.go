// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cube - the fixed size binary record of the network
//
// a cube is exactly 1024 bytes: a compiled field set per the schemas
// in this package
//
// two kinds exist:
//
//   frozen   key is the SHA3-256 content digest; the record is mined
//            until the digest carries the required trailing zero bits
//            and is immutable from then on
//
//   mutable  key is a fixed ed25519 public key; each version carries a
//            timestamp and a signature over the rest of the compiled
//            bytes and is replaced in place under the contest rule of
//            the muc package
package cube
