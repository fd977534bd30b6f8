// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package callback - pending callbacks by key
//
// callbacks are queued until the owner of the key flushes them, flush
// hands them back to the caller so they run outside any lock
package callback

import (
	"sort"
	"sync"
)

// Func - a deferred operation
type Func func()

// Cache - callbacks waiting on keys
type Cache struct {
	sync.Mutex
	pending map[string][]Func
}

// New - create an empty cache
func New() *Cache {
	return &Cache{
		pending: make(map[string][]Func),
	}
}

// Add - queue a callback for key
func (c *Cache) Add(key string, f Func) {
	c.Lock()
	c.pending[key] = append(c.pending[key], f)
	c.Unlock()
}

// Has - check if any callbacks wait on key
func (c *Cache) Has(key string) bool {
	c.Lock()
	defer c.Unlock()
	return 0 != len(c.pending[key])
}

// Flush - remove and return the callbacks for key in the order added
func (c *Cache) Flush(key string) []Func {
	c.Lock()
	defer c.Unlock()
	callbacks := c.pending[key]
	delete(c.pending, key)
	return callbacks
}

// Remove - discard callbacks for key without running them
func (c *Cache) Remove(key string) int {
	c.Lock()
	defer c.Unlock()
	n := len(c.pending[key])
	delete(c.pending, key)
	return n
}

// Keys - keys with pending callbacks, sorted
func (c *Cache) Keys() []string {
	c.Lock()
	defer c.Unlock()
	keys := make([]string, 0, len(c.pending))
	for k := range c.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len - total number of pending callbacks
func (c *Cache) Len() int {
	c.Lock()
	defer c.Unlock()
	n := 0
	for _, callbacks := range c.pending {
		n += len(callbacks)
	}
	return n
}
