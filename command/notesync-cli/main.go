// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	owner       string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "notesync-cli"
	app.Usage = "query and control a running notesyncd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " notesyncd RPC `HOST:PORT`",
			EnvVar: "NOTESYNC_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 RPC certificate `FINGERPRINT`",
			EnvVar: "NOTESYNC_FINGERPRINT",
		},
		cli.StringFlag{
			Name:   "owner, o",
			Value:  "",
			Usage:  " note owner `ADDRESS` [default: the notesyncd owner]",
			EnvVar: "NOTESYNC_OWNER",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display notesyncd info",
			Action: runInfo,
		},
		{
			Name:   "status",
			Usage:  "display the sync pipeline counters",
			Action: runStatus,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "pick",
			Usage:     "select notes whose values cover a minimum sum",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID`",
				},
				cli.Uint64Flag{
					Name:  "sum, s",
					Value: 0,
					Usage: "*minimum `SUM` of the selected values",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 1,
					Usage: " number of notes to select `COUNT`",
				},
				cli.BoolFlag{
					Name:  "allow-less, l",
					Usage: " accept fewer notes than requested",
				},
			},
			Action: runPick,
		},
		{
			Name:      "add-value",
			Usage:     "record a note that is not on chain yet",
			ArgsUsage: "\n   (* = required)",
			Flags:     valueFlags(),
			Action:    runAddValue,
		},
		{
			Name:      "remove-value",
			Usage:     "drop a spent note ahead of the chain",
			ArgsUsage: "\n   (* = required)",
			Flags:     valueFlags(),
			Action:    runRemoveValue,
		},
		{
			Name:      "sync",
			Usage:     "rebuild one asset from the note store",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID`",
				},
			},
			Action: runSync,
		},
		{
			Name:      "prioritise",
			Usage:     "replace the asset sync priority",
			ArgsUsage: "ASSET...\n   (empty list clears the priority)",
			Action:    runPrioritise,
		},
		{
			Name:      "submit",
			Usage:     "send live note records from a JSON file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, F",
					Value: "",
					Usage: "*`FILE` holding a JSON array of note records, - for stdin",
				},
			},
			Action: runSubmit,
		},
		{
			Name:      "watch",
			Usage:     "print events from the notesyncd publisher",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "publisher, p",
					Value: "",
					Usage: "*publisher `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "server-key, k",
					Value: "",
					Usage: "*publisher public key `FILE`",
				},
				cli.StringSliceFlag{
					Name:  "topic, t",
					Usage: " event `NAME` [default: all events]",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " stop after `COUNT` events, 0 runs until interrupted",
				},
				cli.IntFlag{
					Name:  "timeout, T",
					Value: 0,
					Usage: " stop after `SECONDS` without an event, 0 waits forever",
				},
			},
			Action: runWatch,
		},
		{
			Name:  "version",
			Usage: "display notesync-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		connect := c.GlobalString("connect")
		if "" == connect {
			return ErrMissingConnect
		}

		if verbose {
			fmt.Fprintf(e, "connect: %q\n", connect)
		}

		c.App.Metadata["config"] = &metadata{
			connect:     connect,
			fingerprint: c.GlobalString("fingerprint"),
			owner:       c.GlobalString("owner"),
			verbose:     verbose,
			e:           e,
			w:           w,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func valueFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "asset, a",
			Value: "",
			Usage: "*asset `ID`",
		},
		cli.Uint64Flag{
			Name:  "value, V",
			Value: 0,
			Usage: "*note `VALUE`",
		},
		cli.StringFlag{
			Name:  "key, k",
			Value: "",
			Usage: "*note `KEY`",
		},
	}
}
