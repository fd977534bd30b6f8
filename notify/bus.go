// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notify - in process fan out of asset events
package notify

import (
	evbus "github.com/asaskevich/EventBus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/messagebus"
	"github.com/bitmark-inc/notesync/note"
)

// Handler - receives one event for an asset
type Handler func(assetId note.AssetId, payload interface{})

// Bus - delivers asset events to subscribers
//
// handlers run on their own goroutine, in order per event
type Bus struct {
	log *logger.L
	bus evbus.Bus
}

// New - create an empty bus
func New() *Bus {
	return &Bus{
		log: logger.New("notify"),
		bus: evbus.New(),
	}
}

// Notify - publish an event
func (b *Bus) Notify(event string, assetId note.AssetId, payload interface{}) {
	b.log.Debugf("event: %s  asset: %s", event, assetId)
	b.bus.Publish(event, assetId, payload)
}

// Subscribe - call h for every future event
func (b *Bus) Subscribe(event string, h Handler) error {
	return b.bus.SubscribeAsync(event, h, true)
}

// Unsubscribe - remove a handler given to Subscribe
func (b *Bus) Unsubscribe(event string, h Handler) error {
	return b.bus.Unsubscribe(event, h)
}

// Forward - queue the events on a broadcast queue
func (b *Bus) Forward(queue *messagebus.Broadcast, events ...string) error {
	for _, event := range events {
		e := event
		err := b.Subscribe(e, func(assetId note.AssetId, payload interface{}) {
			queue.Send(messagebus.Message{
				Event:   e,
				Asset:   assetId,
				Payload: payload,
			})
		})
		if nil != err {
			return err
		}
	}
	return nil
}

// Wait - until every handler has returned
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}
