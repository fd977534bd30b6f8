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

func runPick(c *cli.Context) error {

	asset, err := checkAsset(c.String("asset"))
	if nil != err {
		return err
	}

	sum := c.Uint64("sum")
	if 0 == sum {
		return ErrZeroSum
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
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
		fmt.Fprintf(m.e, "sum: %d\n", sum)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	pickConfig := &rpccalls.PickData{
		Owner:     owner,
		Asset:     asset,
		MinSum:    sum,
		Count:     count,
		AllowLess: c.Bool("allow-less"),
	}

	response, err := client.Pick(pickConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
