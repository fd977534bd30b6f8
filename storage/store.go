// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"
	"strings"
	"sync"
)

// Store - opaque blobs under a namespace
//
// keys are prefixed with the namespace so that several owners and
// networks can share one database
type Store struct {
	mu        sync.Mutex
	database  *Database
	namespace string
	locks     map[string]*sync.Mutex
}

// NewStore - blob store for a namespace built from its parts
func (d *Database) NewStore(parts ...string) *Store {
	return &Store{
		database:  d,
		namespace: strings.Join(parts, "/") + "/",
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *Store) fullKey(key string) []byte {
	return []byte(s.namespace + key)
}

// Get - read a blob, nil if absent
func (s *Store) Get(key string) ([]byte, error) {
	return s.database.Pool.Data.Get(s.fullKey(key)), nil
}

// Set - write several blobs atomically, a nil value deletes the key
func (s *Store) Set(items map[string][]byte) error {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trx := s.database.NewTransaction()
	for _, k := range keys {
		if nil == items[k] {
			trx.Delete(s.database.Pool.Data, s.fullKey(k))
		} else {
			trx.Put(s.database.Pool.Data, s.fullKey(k), items[k])
		}
	}
	return trx.Commit()
}

// Lock - run fn while holding the lock for key
func (s *Store) Lock(key string, fn func() error) error {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn()
}

// Keys - all keys in the namespace
func (s *Store) Keys() ([]string, error) {
	keys := []string{}
	err := s.database.Pool.Data.NewFetchCursor().Prefix([]byte(s.namespace)).Map(func(key []byte, value []byte) error {
		keys = append(keys, strings.TrimPrefix(string(key), s.namespace))
		return nil
	})
	return keys, err
}
