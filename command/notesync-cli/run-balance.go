// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runBalance(c *cli.Context) error {

	asset, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
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

	if m.verbose {
		fmt.Fprintf(m.e, "asset: %s\n", asset)
	}

	response, err := client.GetBalance(owner, asset)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runSync(c *cli.Context) error {

	asset, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
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

	response, err := client.Sync(owner, asset)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
