// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package field - TLV field codec for cube records
//
// a cube body is an ordered list of fields laid out according to a
// schema:
//
//   positional fields       no header, type and length implied by the
//                           slot they occupy at the front or back of
//                           the buffer
//   implicit-length fields  1 byte header: type code in the high 6 bits
//   variable-length fields  2 byte header: type code in the high 6 bits
//                           of the first byte, 10 bit length in the low
//                           2 bits of the first byte and all of the
//                           second byte
//
// the layout must match bit-for-bit across implementations; see the
// compile and decompile routines for the exact rules
package field
