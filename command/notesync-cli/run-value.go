// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/notesync/command/notesync-cli/rpccalls"
	"github.com/bitmark-inc/notesync/rpc/notes"
)

func runAddValue(c *cli.Context) error {
	return runValue(c, (*rpccalls.Client).AddValue)
}

func runRemoveValue(c *cli.Context) error {
	return runValue(c, (*rpccalls.Client).RemoveValue)
}

type valueCall func(*rpccalls.Client, *rpccalls.ValueData) (*notes.BalanceReply, error)

func runValue(c *cli.Context, call valueCall) error {

	asset, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}

	value := c.Uint64("value")
	if 0 == value {
		return ErrZeroValue
	}

	key := c.String("key")
	if "" == key {
		return ErrMissingKey
	}

	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	owner, err := ownerOf(m, client)
	if nil != err {
		return err
	}

	valueConfig := &rpccalls.ValueData{
		Owner: owner,
		Asset: asset,
		Value: value,
		Key:   key,
	}

	response, err := call(client, valueConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
