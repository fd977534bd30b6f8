// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runPrioritise(c *cli.Context) error {

	assets := []string(c.Args())

	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Prioritise(assets)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
