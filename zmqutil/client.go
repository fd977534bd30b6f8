// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/notesync/fault"
)

const identifierSize = 32

// NewSubscriber - connect a SUB socket to a broadcaster
//
// the server public key authenticates the broadcaster, the empty topic
// subscribes to every event
func NewSubscriber(privateKey []byte, publicKey []byte, serverPublicKey []byte, address string, topics []string, timeout time.Duration) (*zmq.Socket, error) {
	if len(publicKey) != publicLength || len(serverPublicKey) != publicLength {
		return nil, fault.ErrInvalidPublicKeyFile
	}
	if len(privateKey) != privateLength {
		return nil, fault.ErrInvalidPrivateKeyFile
	}

	connectTo, v6, err := CanonicalAddress(address)
	if nil != err {
		return nil, err
	}

	socket, err := zmq.NewSocket(zmq.SUB)
	if nil != err {
		return nil, err
	}

	// create a secure random identifier
	randomIdBytes := make([]byte, identifierSize)
	if _, err := rand.Read(randomIdBytes); nil != err {
		socket.Close()
		return nil, err
	}

	setters := []func() error{
		func() error { return socket.SetCurveServer(0) },
		func() error { return socket.SetCurvePublickey(string(publicKey)) },
		func() error { return socket.SetCurveSecretkey(string(privateKey)) },
		func() error { return socket.SetIdentity(string(randomIdBytes)) },
		func() error { return socket.SetCurveServerkey(string(serverPublicKey)) },
		func() error { return socket.SetLinger(0) },
		func() error { return socket.SetIpv6(v6) },
	}
	if 0 != timeout {
		setters = append(setters, func() error { return socket.SetRcvtimeo(timeout) })
	}
	if 0 == len(topics) {
		topics = []string{""}
	}
	for _, topic := range topics {
		t := topic
		setters = append(setters, func() error { return socket.SetSubscribe(t) })
	}

	for _, set := range setters {
		if err := set(); nil != err {
			socket.Close()
			return nil, err
		}
	}

	if err := socket.Connect(connectTo); nil != err {
		socket.Close()
		return nil, err
	}
	return socket, nil
}
