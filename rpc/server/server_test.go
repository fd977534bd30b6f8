// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/counter"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/rpc/fixtures"
	"github.com/bitmark-inc/notesync/rpc/mocks"
	"github.com/bitmark-inc/notesync/rpc/node"
	"github.com/bitmark-inc/notesync/rpc/notes"
	"github.com/bitmark-inc/notesync/rpc/server"
)

func TestCreate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockSession(ctl)
	s.EXPECT().Owner().Return(note.Address(fixtures.Owner)).AnyTimes()
	s.EXPECT().Balance(note.Address(fixtures.Owner), note.AssetId(fixtures.Asset)).Return(uint64(11)).Times(1)

	count := counter.Counter(0)
	srv := server.Create(logger.New(fixtures.LogCategory), "v0.1", "testing", s, time.Second, &count)

	serverConn, clientConn := net.Pipe()
	go srv.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	client := jsonrpc.NewClient(clientConn)
	defer client.Close()

	var balance notes.BalanceReply
	err := client.Call("Notes.Balance", &notes.BalanceArguments{Owner: fixtures.Owner, Asset: fixtures.Asset}, &balance)
	assert.Nil(t, err, "wrong Notes.Balance")
	assert.Equal(t, uint64(11), balance.Balance, "wrong balance")

	var info node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &info)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, note.Address(fixtures.Owner), info.Owner, "wrong owner")
	assert.Equal(t, "v0.1", info.Version, "wrong version")
}
