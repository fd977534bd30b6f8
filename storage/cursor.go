// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/notesync/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Prefix - restrict the cursor to keys starting with a key prefix
func (cursor *FetchCursor) Prefix(key []byte) *FetchCursor {
	r := util.BytesPrefix(cursor.pool.prefixKey(key))
	cursor.maxRange = *r
	return cursor
}

// Limit - stop before this key, nil leaves the current limit
func (cursor *FetchCursor) Limit(key []byte) *FetchCursor {
	if nil != key {
		cursor.maxRange.Limit = cursor.pool.prefixKey(key)
	}
	return cursor
}

// Fetch - return some elements starting from key
//
// the cursor is advanced past the last element returned
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	cursor.pool.database.RLock()
	defer cursor.pool.database.RUnlock()
	if nil == cursor.pool.database.db {
		return nil, fault.ErrNotInitialised
	}

	iter := cursor.pool.database.db.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
	n := 0
iterating:
	for iter.Next() {
		results = append(results, copyElement(iter.Key(), iter.Value()))
		n += 1
		if n >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	if n > 0 {
		// the next possible key is the last key with a zero byte appended
		last := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	cursor.pool.database.RLock()
	defer cursor.pool.database.RUnlock()
	if nil == cursor.pool.database.db {
		return fault.ErrNotInitialised
	}

	iter := cursor.pool.database.db.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {
		e := copyElement(iter.Key(), iter.Value())
		err = f(e.Key, e.Value)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

// Last - the final element in the cursor range
func (cursor *FetchCursor) Last() (Element, bool) {
	cursor.pool.database.RLock()
	defer cursor.pool.database.RUnlock()
	if nil == cursor.pool.database.db {
		return Element{}, false
	}

	iter := cursor.pool.database.db.NewIterator(&cursor.maxRange, nil)
	defer iter.Release()

	if !iter.Last() {
		return Element{}, false
	}
	return copyElement(iter.Key(), iter.Value()), true
}
