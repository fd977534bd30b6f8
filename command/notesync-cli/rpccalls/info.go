// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/notesync/rpc/node"
	"github.com/bitmark-inc/notesync/rpc/notes"
	"github.com/bitmark-inc/notesync/session"
)

// GetInfo - request node information from notesyncd
func (client *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := client.client.Call("Node.Info", node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// GetStatus - pipeline counters of notesyncd
func (client *Client) GetStatus() (*session.Status, error) {
	var reply session.Status
	if err := client.client.Call("Notes.Status", notes.StatusArguments{}, &reply); err != nil {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return &reply, nil
}
