// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/notesync/fault"
)

// Transaction - a set of writes applied atomically on Commit
type Transaction struct {
	database *Database
	batch    *leveldb.Batch
}

// NewTransaction - start an empty write batch
func (d *Database) NewTransaction() *Transaction {
	return &Transaction{
		database: d,
		batch:    new(leveldb.Batch),
	}
}

// Put - queue a key/value write to a pool
func (t *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.batch.Put(p.prefixKey(key), value)
}

// PutN - queue a uint64 write as 8 bytes big endian
func (t *Transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.batch.Put(p.prefixKey(key), buffer)
}

// Delete - queue a delete
func (t *Transaction) Delete(p *PoolHandle, key []byte) {
	t.batch.Delete(p.prefixKey(key))
}

// Len - number of queued operations
func (t *Transaction) Len() int {
	return t.batch.Len()
}

// Commit - write all queued operations
func (t *Transaction) Commit() error {
	t.database.RLock()
	defer t.database.RUnlock()
	if nil == t.database.db {
		return fault.ErrNotInitialised
	}
	if 0 == t.batch.Len() {
		return nil
	}
	err := t.database.db.Write(t.batch, nil)
	t.batch.Reset()
	return err
}

// Abort - discard queued operations
func (t *Transaction) Abort() {
	t.batch.Reset()
}
