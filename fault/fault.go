// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrAnchorNotFound       = NotFoundError("anchor not found")
	ErrBundleTooLarge       = LimitError("bundle too large")
	ErrCorruptBundle        = ProcessError("corrupt bundle")
	ErrCycleDetected        = ProcessError("cycle detected in provenance chain")
	ErrDuplicateRecord      = InvalidError("duplicate record id")
	ErrEmptyBatch           = InvalidError("empty batch")
	ErrEmptyBundle          = InvalidError("empty bundle")
	ErrInvalidBackend       = InvalidError("invalid backend")
	ErrInvalidCID           = InvalidError("invalid content identifier")
	ErrInvalidConfiguration = InvalidError("configuration must return a table")
	ErrInvalidCount         = InvalidError("invalid count")
	ErrInvalidEditCount     = InvalidError("invalid edit count")
	ErrInvalidFileName      = InvalidError("invalid payload file name")
	ErrInvalidPointer       = InvalidError("invalid pointer")
	ErrInvalidRange         = InvalidError("invalid attribute range")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrInvalidURI           = InvalidError("invalid uri")
	ErrMaxDepthExceeded     = LimitError("maximum chain depth exceeded")
	ErrMissingCID           = ProcessError("store did not return a content identifier")
	ErrMissingParameter     = InvalidError("missing parameter")
	ErrNotFound             = NotFoundError("not found")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrPointerReverted      = InvalidError("pointer cannot revert to root")
	ErrRateLimiting         = LimitError("rate limiting")
	ErrRecordNotInBundle    = NotFoundError("record not found in bundle")
	ErrTimeout              = LimitError("timeout")
	ErrUnexpectedStatus     = ProcessError("unexpected response status")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LimitError) Error() string    { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
//
// wrapped errors are unwrapped so that context added with %w does not
// hide the class
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrLimit(e error) bool    { var t LimitError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
