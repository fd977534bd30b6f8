// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package priority - ordered set of asset ids
//
// a doubly linked list with a map index so that membership, removal
// and moving an item to either end are constant time
//
// not safe for concurrent use, the owner must serialise access
package priority

import (
	"container/list"

	"github.com/bitmark-inc/notesync/note"
)

// Queue - asset ids, highest priority at the top
type Queue struct {
	items *list.List
	index map[note.AssetId]*list.Element
}

// New - create an empty queue
func New() *Queue {
	return &Queue{
		items: list.New(),
		index: make(map[note.AssetId]*list.Element),
	}
}

// FromList - create a queue from ids in priority order, duplicates ignored
func FromList(ids []note.AssetId) *Queue {
	q := New()
	for _, id := range ids {
		q.AddToBottom(id)
	}
	return q
}

// Len - number of items
func (q *Queue) Len() int {
	return q.items.Len()
}

// Has - check membership
func (q *Queue) Has(id note.AssetId) bool {
	_, ok := q.index[id]
	return ok
}

// AddToTop - insert at highest priority, false if already present
func (q *Queue) AddToTop(id note.AssetId) bool {
	if q.Has(id) {
		return false
	}
	q.index[id] = q.items.PushFront(id)
	return true
}

// AddToBottom - insert at lowest priority, false if already present
func (q *Queue) AddToBottom(id note.AssetId) bool {
	if q.Has(id) {
		return false
	}
	q.index[id] = q.items.PushBack(id)
	return true
}

// MoveToTop - add or move to the highest priority
func (q *Queue) MoveToTop(id note.AssetId) {
	if e, ok := q.index[id]; ok {
		q.items.MoveToFront(e)
		return
	}
	q.AddToTop(id)
}

// MoveToBottom - add or move to the lowest priority
func (q *Queue) MoveToBottom(id note.AssetId) {
	if e, ok := q.index[id]; ok {
		q.items.MoveToBack(e)
		return
	}
	q.AddToBottom(id)
}

// Remove - delete an item, false if absent
func (q *Queue) Remove(id note.AssetId) bool {
	e, ok := q.index[id]
	if !ok {
		return false
	}
	q.items.Remove(e)
	delete(q.index, id)
	return true
}

// Top - highest priority item
func (q *Queue) Top() (note.AssetId, bool) {
	e := q.items.Front()
	if nil == e {
		return "", false
	}
	return e.Value.(note.AssetId), true
}

// Bottom - lowest priority item
func (q *Queue) Bottom() (note.AssetId, bool) {
	e := q.items.Back()
	if nil == e {
		return "", false
	}
	return e.Value.(note.AssetId), true
}

// Pop - remove and return the highest priority item
func (q *Queue) Pop() (note.AssetId, bool) {
	id, ok := q.Top()
	if ok {
		q.Remove(id)
	}
	return id, ok
}

// LowestExcept - lowest priority item that is not id
func (q *Queue) LowestExcept(id note.AssetId) (note.AssetId, bool) {
	for e := q.items.Back(); nil != e; e = e.Prev() {
		if candidate := e.Value.(note.AssetId); candidate != id {
			return candidate, true
		}
	}
	return "", false
}

// List - items from top to bottom
func (q *Queue) List() []note.AssetId {
	ids := make([]note.AssetId, 0, q.items.Len())
	for e := q.items.Front(); nil != e; e = e.Next() {
		ids = append(ids, e.Value.(note.AssetId))
	}
	return ids
}

// Each - visit items top to bottom until f returns false
//
// f must not modify the queue
func (q *Queue) Each(f func(id note.AssetId) bool) {
	for e := q.items.Front(); nil != e; e = e.Next() {
		if !f(e.Value.(note.AssetId)) {
			return
		}
	}
}
