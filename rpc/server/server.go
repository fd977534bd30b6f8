// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/counter"
	"github.com/bitmark-inc/notesync/rpc/node"
	"github.com/bitmark-inc/notesync/rpc/notes"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, network string, s notes.Session, timeout time.Duration, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(notes.New(log, s, timeout))
	_ = server.Register(node.New(log, start, version, network, s.Owner(), rpcCount))

	return server
}
