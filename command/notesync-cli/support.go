// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/notesync/command/notesync-cli/rpccalls"
)

const (
	defaultConnect = "127.0.0.1:2150"
)

func connect(c *cli.Context) (*metadata, *rpccalls.Client, error) {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return nil, nil, err
	}
	return m, client, nil
}

// the owner flag, otherwise the owner the daemon serves
func ownerOf(m *metadata, client *rpccalls.Client) (string, error) {
	if "" != m.owner {
		return m.owner, nil
	}

	info, err := client.GetInfo()
	if nil != err {
		return "", err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", info.Owner)
	}
	return string(info.Owner), nil
}

func checkAsset(asset string) (string, error) {
	if "" == asset {
		return "", ErrMissingAsset
	}
	return asset, nil
}
