// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"syscall"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/notesync/zmqutil"
)

// one published event
type event struct {
	Event   string          `json:"event"`
	Asset   string          `json:"asset,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	publisher := c.String("publisher")
	if "" == publisher {
		return ErrMissingPublisher
	}

	serverKeyFile := c.String("server-key")
	if "" == serverKeyFile {
		return ErrMissingServerKey
	}

	count := c.Int("count")
	if count < 0 {
		return fmt.Errorf("invalid count: %d", count)
	}
	timeout := time.Duration(c.Int("timeout")) * time.Second

	serverPublicKey, err := zmqutil.ReadPublicKeyFile(serverKeyFile)
	if nil != err {
		return err
	}

	// the publisher accepts any client key so a fresh one is used
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return err
	}

	socket, err := zmqutil.NewSubscriber(
		[]byte(zmq.Z85decode(privateKey)),
		[]byte(zmq.Z85decode(publicKey)),
		serverPublicKey,
		publisher,
		c.StringSlice("topic"),
		timeout,
	)
	if nil != err {
		return err
	}
	defer socket.Close()

	if m.verbose {
		fmt.Fprintf(m.e, "subscribed to: %s\n", publisher)
	}

	for n := 0; 0 == count || n < count; n += 1 {
		frames, err := socket.RecvMessageBytes(0)
		if nil != err {
			if zmq.Errno(syscall.EAGAIN) == zmq.AsErrno(err) {
				return fmt.Errorf("no event within: %s", timeout)
			}
			return err
		}
		if len(frames) < 3 {
			if m.verbose {
				fmt.Fprintf(m.e, "short message: %d frames\n", len(frames))
			}
			continue
		}

		printJson(m.w, event{
			Event:   string(frames[0]),
			Asset:   string(frames[1]),
			Payload: json.RawMessage(frames[2]),
		})
	}

	return nil
}
