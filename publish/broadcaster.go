// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast asset events to ZeroMQ subscribers
package publish

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/messagebus"
	"github.com/bitmark-inc/notesync/zmqutil"
)

const (
	heartbeatInterval = 60 * time.Second
	zapDomain         = "notesync-publish"
	queueSize         = 1000
)

// Configuration - a block of configuration data
// this is read from the Lua configuration file
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Broadcaster - sends every queued event on a PUB socket
type Broadcaster struct {
	log      *logger.L
	queue    *messagebus.Broadcast
	socket4  *zmq.Socket
	socket6  *zmq.Socket
	listener <-chan messagebus.Message
}

// New - bind the broadcast addresses
func New(configuration *Configuration, queue *messagebus.Broadcast) (*Broadcaster, error) {
	log := logger.New("publish")

	if 0 == len(configuration.Broadcast) {
		return nil, fault.ErrMissingParameters
	}

	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
		return nil, err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
		return nil, err
	}

	if err := zmqutil.StartAuthentication(); nil != err {
		return nil, err
	}

	socket4, socket6, err := zmqutil.NewBind(log, zmq.PUB, zapDomain, privateKey, publicKey, configuration.Broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return nil, err
	}

	return &Broadcaster{
		log:      log,
		queue:    queue,
		socket4:  socket4,
		socket6:  socket6,
		listener: queue.Chan(queueSize),
	}, nil
}

// Run - wait for events and send them until shutdown
func (brdc *Broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log
	log.Info("starting…")

	delay := time.After(heartbeatInterval)
loop:
	for {
		select {
		case <-shutdown:
			break loop

		case item := <-brdc.listener:
			if err := brdc.send(item.Event, string(item.Asset), item.Payload); nil != err {
				log.Errorf("send event: %s  asset: %s  error: %s", item.Event, item.Asset, err)
			}

		case <-delay:
			delay = time.After(heartbeatInterval)
			if err := brdc.send("heart", "", time.Now().UTC()); nil != err {
				log.Errorf("heartbeat error: %s", err)
			}
		}
	}

	brdc.queue.Release(brdc.listener)
	if nil != brdc.socket4 {
		brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
	}
	log.Info("stopped")
}

// frames: event, asset, JSON payload
func (brdc *Broadcaster) send(event string, assetId string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if nil != err {
		return err
	}
	brdc.log.Debugf("send event: %s  asset: %s  data: %s", event, assetId, data)

	for _, socket := range []*zmq.Socket{brdc.socket4, brdc.socket6} {
		if nil == socket {
			continue
		}
		if _, err := socket.SendMessage(event, assetId, data); nil != err {
			return err
		}
	}
	return nil
}
