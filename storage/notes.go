// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"math"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/note"
)

// PutNotes - index raw note records
//
// a record already stored with the same hash and status is skipped,
// returns the records that were new
func (d *Database) PutNotes(records []note.Record) ([]note.Record, error) {
	trx := d.NewTransaction()
	added := make([]note.Record, 0, len(records))
	batchSeen := make(map[string]struct{}, len(records))

	for i := range records {
		r := &records[i]
		if "" == r.Owner {
			return nil, fault.ErrInvalidOwner
		}
		if "" == r.Asset {
			return nil, fault.ErrInvalidAssetId
		}

		seen := seenKey(r)
		if _, ok := batchSeen[string(seen)]; ok || d.Pool.NoteHashes.Has(seen) {
			continue
		}
		batchSeen[string(seen)] = struct{}{}

		packed := packRecord(r)
		trx.Put(d.Pool.OwnerNotes, recordKey(ownerKey(r.Owner), r), packed)
		trx.Put(d.Pool.AssetNotes, recordKey(assetKey(r.Owner, r.Asset), r), packed)
		trx.PutN(d.Pool.NoteHashes, seen, r.BlockNumber)
		added = append(added, *r)
	}

	err := trx.Commit()
	if nil != err {
		return nil, err
	}
	return added, nil
}

// FetchNotes - a page of records in block number then hash order
func (d *Database) FetchNotes(ctx context.Context, q note.Query) ([]note.Record, error) {
	if "" == q.Owner {
		return nil, fault.ErrInvalidOwner
	}
	if q.Count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	if 0 != q.ToBlockNumber && q.ToBlockNumber < q.FromBlockNumber {
		return []note.Record{}, nil
	}

	pool := d.Pool.OwnerNotes
	prefix := ownerKey(q.Owner)
	if "" != q.Asset {
		pool = d.Pool.AssetNotes
		prefix = assetKey(q.Owner, q.Asset)
	}

	cursor := pool.NewFetchCursor().Prefix(prefix).Seek(blockKey(prefix, q.FromBlockNumber))
	if 0 != q.ToBlockNumber && math.MaxUint64 != q.ToBlockNumber {
		cursor.Limit(blockKey(prefix, q.ToBlockNumber+1))
	}

	records := make([]note.Record, 0, q.Count)
	err := cursor.Map(func(key []byte, value []byte) error {
		if err := ctx.Err(); nil != err {
			return err
		}
		r, err := unpackRecord(value)
		if nil != err {
			return err
		}
		records = append(records, *r)
		if len(records) >= q.Count {
			return errStop
		}
		return nil
	})
	if errStop == err {
		err = nil
	}
	if nil != err {
		return nil, err
	}
	return records, nil
}

// LastBlockNumber - highest block number indexed for an owner
func (d *Database) LastBlockNumber(owner note.Address) uint64 {
	e, found := d.Pool.OwnerNotes.NewFetchCursor().Prefix(ownerKey(owner)).Last()
	if !found {
		return 0
	}
	r, err := unpackRecord(e.Value)
	if nil != err {
		return 0
	}
	return r.BlockNumber
}

type stopError string

func (e stopError) Error() string { return string(e) }

// ends a Map early
const errStop = stopError("stop")
