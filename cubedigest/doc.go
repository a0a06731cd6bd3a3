// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cubedigest - content digest for cube records
//
// SHA3-256 over the full compiled binary; the trailing zero bit count
// of the digest is the proof-of-work measure for frozen cubes
package cubedigest
