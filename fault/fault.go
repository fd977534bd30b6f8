// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// GenericError - error base
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
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrCertificateExists       = ExistsError("certificate file already exists")
	ErrInsufficientFunds       = InvalidError("insufficient funds")
	ErrInvalidAssetId          = InvalidError("invalid asset id")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidCursor           = InvalidError("invalid cursor")
	ErrInvalidIPAddress        = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidNoteKey          = InvalidError("invalid note key")
	ErrInvalidNoteStatus       = InvalidError("invalid note status")
	ErrInvalidOwner            = InvalidError("invalid owner")
	ErrInvalidPortNumber       = InvalidError("invalid port number")
	ErrInvalidPrivateKeyFile   = InvalidError("invalid private key file")
	ErrInvalidPublicKeyFile    = InvalidError("invalid public key file")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrInvalidValue            = InvalidError("invalid value")
	ErrInvalidViewingKey       = InvalidError("invalid viewing key")
	ErrKeyFileAlreadyExists    = ExistsError("key file already exists")
	ErrMissingParameters       = InvalidError("missing parameters")
	ErrNotEnoughNotes          = InvalidError("not enough notes")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrNoteNotFound            = NotFoundError("note not found")
	ErrOwnerMismatch           = InvalidError("owner mismatch")
	ErrRateLimiting            = InvalidError("rate limiting")
	ErrSessionClosed           = ProcessError("session closed")
	ErrTooManyItemsToProcess   = InvalidError("too many items to process")
	ErrTruncatedRecord         = LengthError("truncated record")
	ErrViewingKeyDecryptFailed = ProcessError("viewing key decrypt failed")
	ErrWrongNetwork            = InvalidError("wrong network")
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

// ArgumentError - a request that cannot be satisfied with the notes held
//
// carries the amount (or note count) that was asked for and what was
// actually available so the caller can present an actionable message
type ArgumentError struct {
	Reason    InvalidError
	Requested uint64
	Available uint64
}

// NewArgumentError - create an argument error for a reason
func NewArgumentError(reason InvalidError, requested uint64, available uint64) *ArgumentError {
	return &ArgumentError{
		Reason:    reason,
		Requested: requested,
		Available: available,
	}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: requested: %d  available: %d", e.Reason, e.Requested, e.Available)
}

// Unwrap - allow errors.Is(err, fault.ErrInsufficientFunds)
func (e *ArgumentError) Unwrap() error {
	return e.Reason
}

// IsErrArgument - determine if error is a capacity exhaustion error
func IsErrArgument(e error) bool { _, ok := e.(*ArgumentError); return ok }
