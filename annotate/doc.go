// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package annotate - authorship and displayability over the raw records
//
// the record format only carries forward pointers, so authorship and
// display eligibility are derived: the engine combines the reverse
// relationship index, the cube store and a set of application supplied
// structural rules (the Interpreter)
//
// authorship follows reverse claim edges from a record back to an
// identity; a long author history exceeds one mutable record's direct
// claim capacity so the walk follows multi-hop claim chains
//
// displayability degrades gracefully: the network delivers partial,
// unordered and occasionally malformed data from untrusted peers, so
// every predicate answers unknown/false instead of failing
package annotate
