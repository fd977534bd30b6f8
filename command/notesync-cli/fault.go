// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/notesync/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingAsset     = fault.InvalidError("missing asset")
	ErrMissingConnect   = fault.InvalidError("missing connect address")
	ErrMissingFile      = fault.InvalidError("missing file")
	ErrMissingKey       = fault.InvalidError("missing note key")
	ErrMissingPublisher = fault.InvalidError("missing publisher address")
	ErrMissingServerKey = fault.InvalidError("missing publisher public key")
	ErrZeroSum          = fault.InvalidError("sum must be greater than zero")
	ErrZeroValue        = fault.InvalidError("value must be greater than zero")
)
