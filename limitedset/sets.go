// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package limitedset - remember the most recent note hashes
//
// used to drop notes that are delivered more than once, the oldest
// hash is forgotten when the set is full
package limitedset

import (
	"container/ring"
	"sync"

	"github.com/bitmark-inc/notesync/note"
)

// LimitedSet - bounded set of note hashes
type LimitedSet struct {
	sync.Mutex
	size int
	ring *ring.Ring
	hash map[note.Hash]*ring.Ring
}

// New - create a new limited set that holds up to 'n' hashes
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		size: n,
		ring: ring.New(n),
		hash: make(map[note.Hash]*ring.Ring, n),
	}
}

// Add - insert a hash, returns false if it was already present
//
// a repeated hash is refreshed so it is the last to be forgotten
func (ls *LimitedSet) Add(item note.Hash) bool {
	ls.Lock()
	defer ls.Unlock()
	if r, ok := ls.hash[item]; ok {
		switch r {
		case ls.ring.Prev():
		case ls.ring:
			ls.ring = ls.ring.Next()
		default:
			r = r.Prev().Unlink(1)
			ls.ring.Prev().Link(r)
		}
		return false
	}
	if oldItem, ok := ls.ring.Value.(note.Hash); ok {
		delete(ls.hash, oldItem)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
	return true
}

// Exists - check to see if a hash is in the set
func (ls *LimitedSet) Exists(item note.Hash) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Len - number of hashes held
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}
