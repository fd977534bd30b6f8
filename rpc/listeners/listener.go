// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network listeners for the RPC server
package listeners

const (
	minConnectionCount = 1
)

// Listener - a started set of network listeners
type Listener interface {
	Serve() error
	Close()
}
