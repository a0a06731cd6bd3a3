// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised         = ProcessError("already initialised")
	ErrCannotDecodeAccount        = RecordError("cannot decode account")
	ErrChecksumMismatch           = ProcessError("checksum mismatch")
	ErrCompiledSizeMismatch       = LengthError("compiled size mismatch")
	ErrCubeSizeMismatch           = LengthError("cube size mismatch")
	ErrFieldLengthMismatch        = LengthError("field length does not match schema")
	ErrFieldOverflow              = LengthError("field overflows cube buffer")
	ErrFieldTruncated             = LengthError("field value is truncated")
	ErrFieldValueTooLong          = LengthError("field value is too long")
	ErrInsufficientDifficulty     = InvalidError("insufficient difficulty")
	ErrInvalidCount               = InvalidError("invalid count")
	ErrInvalidCubeType            = RecordError("invalid cube type")
	ErrInvalidKeyLength           = InvalidError("invalid key length")
	ErrInvalidPaddingSize         = LengthError("invalid padding size")
	ErrInvalidRelationship        = RecordError("invalid relationship field")
	ErrInvalidSignature           = InvalidError("invalid signature")
	ErrInvalidStructPointer       = InvalidError("invalid struct pointer")
	ErrKeyNotFound                = NotFoundError("key not found")
	ErrMissingPositionalField     = RecordError("missing positional field")
	ErrNonceExhausted             = ProcessError("nonce space exhausted")
	ErrNotFrozenCube              = RecordError("not a frozen cube")
	ErrNotIdentityRecord          = RecordError("not an identity record")
	ErrNotInitialised             = ProcessError("not initialised")
	ErrNotMutableCube             = RecordError("not a mutable cube")
	ErrNotPrivateKey              = RecordError("not a private key")
	ErrNotPublicKey               = RecordError("not a public key")
	ErrUnknownFieldType           = RecordError("unknown field type")
	ErrUpdateTooSoon              = InvalidError("update inside rebuild delay")
	ErrWrongPositionalField       = RecordError("wrong field type at positional slot")
	ErrWrongLengthPositionalField = RecordError("wrong field length at positional slot")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
