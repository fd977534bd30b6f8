// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/notesync/counter"
	"github.com/bitmark-inc/notesync/note"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - one asset event
type Message struct {
	Event   string
	Asset   note.AssetId
	Payload interface{}
}

func (m Message) cacheKey() string {
	return m.Event + "/" + string(m.Asset)
}

// Broadcast - deliver every message to every listener
type Broadcast struct {
	sync.Mutex
	listeners []chan Message
	cacheable map[string]struct{}
	cache     map[string]Message
	dropped   counter.Counter
}

// NewBroadcast - create a broadcast queue, the latest message of each
// of the cacheable events is kept per asset
func NewBroadcast(cacheable ...string) *Broadcast {
	b := &Broadcast{
		cacheable: make(map[string]struct{}),
		cache:     make(map[string]Message),
	}
	for _, event := range cacheable {
		b.cacheable[event] = struct{}{}
	}
	return b
}

// Send - queue a message to all listeners
//
// a listener that is full misses the message rather than blocking
// the sender
func (b *Broadcast) Send(m Message) {
	b.Lock()
	defer b.Unlock()

	if _, ok := b.cacheable[m.Event]; ok {
		b.cache[m.cacheKey()] = m
	}

	for _, c := range b.listeners {
		select {
		case c <- m:
		default:
			b.dropped.Increment()
		}
	}
}

// Chan - attach a listener, a size of zero selects the default
//
// cached messages are delivered first in key order
func (b *Broadcast) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}

	b.Lock()
	defer b.Unlock()

	keys := make([]string, 0, len(b.cache))
	for k := range b.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := make(chan Message, size+len(keys))
	for _, k := range keys {
		c <- b.cache[k]
	}
	b.listeners = append(b.listeners, c)
	return c
}

// Release - detach a listener and close its channel
func (b *Broadcast) Release(listener <-chan Message) {
	b.Lock()
	defer b.Unlock()

	for i, c := range b.listeners {
		if (<-chan Message)(c) == listener {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			close(c)
			return
		}
	}
}

// DropCache - forget the cached message for an event and asset
func (b *Broadcast) DropCache(event string, assetId note.AssetId) {
	b.Lock()
	delete(b.cache, Message{Event: event, Asset: assetId}.cacheKey())
	b.Unlock()
}

// Dropped - number of deliveries missed by full listeners
func (b *Broadcast) Dropped() uint64 {
	return b.dropped.Uint64()
}
