// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/notesync/note"
)

// memoised keys expire so the cache does not grow without bound
const (
	keyCacheExpiry  = 30 * time.Minute
	keyCacheCleanup = 10 * time.Minute
)

// KeyResolver - assign canonical note keys
//
// the first time a hash is seen for an owner it is given the next
// index from that owner's counter, afterwards the same key is returned
type KeyResolver struct {
	sync.Mutex
	database *Database
	memo     *cache.Cache
}

// NewKeyResolver - create a resolver backed by the database
func (d *Database) NewKeyResolver() *KeyResolver {
	return &KeyResolver{
		database: d,
		memo:     cache.New(keyCacheExpiry, keyCacheCleanup),
	}
}

// Resolve - the key for a note hash, allocating one if needed
func (r *KeyResolver) Resolve(owner note.Address, hash note.Hash) (note.Key, error) {
	memoKey := string(owner) + "/" + hash.String()
	if k, found := r.memo.Get(memoKey); found {
		return k.(note.Key), nil
	}

	r.Lock()
	defer r.Unlock()

	pool := r.database.Pool
	dbKey := append(ownerKey(owner), hash[:]...)

	index, found := pool.NoteKeys.GetN(dbKey)
	if !found {
		counterKey := ownerKey(owner)
		next, _ := pool.OwnerNextCount.GetN(counterKey)
		index = next

		trx := r.database.NewTransaction()
		trx.PutN(pool.NoteKeys, dbKey, index)
		trx.PutN(pool.OwnerNextCount, counterKey, next+1)
		if err := trx.Commit(); nil != err {
			return "", err
		}
	}

	key := note.NewKey(index)
	r.memo.Set(memoKey, key, cache.DefaultExpiration)
	return key, nil
}

// Count - number of keys allocated for an owner
func (r *KeyResolver) Count(owner note.Address) uint64 {
	n, _ := r.database.Pool.OwnerNextCount.GetN(ownerKey(owner))
	return n
}
