// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"context"

	"github.com/bitmark-inc/notesync/note"
)

// a decrypted record ready to commit
type change struct {
	status    note.Status
	decrypted note.Decrypted
}

// bring the note values back into the cache then start fetching
func (a *Asset) restore(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.deps.Cache.Has(a.id) {
		values, err := ReadValues(a.deps.Store, a.id)
		if nil != err {
			a.log.Errorf("asset: %s  restore error: %s", a.id, err)
			values = make(note.Values)
		}
		a.deps.Cache.Set(a.id, values, false)
		a.log.Debugf("asset: %s  restored: %d notes", a.id, values.Count())
	}

	a.addProcess("getRawNotes", a.getRawNotes)
	return nil
}

// pull a batch of raw notes and queue their decryption followed by
// another fetch, an empty batch ends the chain
func (a *Asset) getRawNotes(ctx context.Context) error {
	records, err := a.deps.RawNotes.FetchAndRemove(ctx, a.id, a.conf.NotesPerBatch)
	if nil != err {
		return err
	}
	if 0 == len(records) {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	fresh := make([]note.Record, 0, len(records))
	for _, r := range records {
		if a.seen.Add(seenHash(&r)) {
			fresh = append(fresh, r)
		}
	}
	if n := len(records) - len(fresh); 0 != n {
		a.log.Debugf("asset: %s  dropped: %d duplicate notes", a.id, n)
	}

	batch := a.conf.NotesPerDecryptionBatch
	for i := 0; i < len(fresh); i += batch {
		j := i + batch
		if j > len(fresh) {
			j = len(fresh)
		}
		work := fresh[i:j]
		a.addProcess("decryptNotes", func(ctx context.Context) error {
			return a.decryptNotes(ctx, work)
		})
	}
	a.addProcess("getRawNotes", a.getRawNotes)
	return nil
}

// decrypt a batch and commit it through the write barrier
//
// a note that cannot be decrypted is dropped but the cursor still
// advances past it
func (a *Asset) decryptNotes(ctx context.Context, records []note.Record) error {
	changes := make([]change, 0, len(records))
	cursor := note.Cursor{}

	for i := range records {
		r := &records[i]
		if err := ctx.Err(); nil != err {
			return err
		}
		d, c, err := a.open(r)
		cursor.Advance(c)
		if nil != err {
			a.failed.Increment()
			a.log.Warnf("asset: %s  note: %s  block: %d  decrypt error: %s", a.id, r.Hash, r.BlockNumber, err)
			continue
		}
		a.decrypted.Increment()
		changes = append(changes, change{status: r.Status, decrypted: d})
	}

	a.mu.Lock()
	a.apply(func() {
		for _, c := range changes {
			a.commit(c.status, c.decrypted)
		}
		if a.lastSynced.Advance(cursor) {
			a.modified = true
			a.sequence += 1
		}
	})
	a.scheduleSave()
	a.mu.Unlock()

	return nil
}

// Resync - rebuild the asset from every note in the note store and
// merge with the current state
func (a *Asset) Resync(ctx context.Context) error {
	records, err := a.fetchAll(ctx)
	if nil != err {
		return err
	}

	fresh := note.NewData()
	destroyed := []note.Decrypted{}
	for i := range records {
		r := &records[i]
		d, c, err := a.open(r)
		fresh.LastSynced.Advance(c)
		if nil != err {
			a.failed.Increment()
			a.log.Warnf("asset: %s  note: %s  resync decrypt error: %s", a.id, r.Hash, err)
			continue
		}
		a.decrypted.Increment()
		switch r.Status {
		case note.Created:
			fresh.AddNote(d.Value, d.Key)
		case note.Destroyed:
			fresh.RemoveNote(d.Value, d.Key)
			destroyed = append(destroyed, d)
		}
	}

	a.mu.Lock()
	a.apply(func() {
		current := note.Data{
			Balance:    a.balance,
			Values:     a.values(false),
			LastSynced: a.lastSynced,
		}
		merged := note.Merge(current, *fresh)
		for _, d := range destroyed {
			merged.RemoveNote(d.Value, d.Key)
		}

		a.deps.Cache.Set(a.id, merged.Values, true)
		a.balance = merged.Balance
		a.size = merged.Values.Count()
		a.lastSynced.Advance(merged.LastSynced)
		a.modified = true
		a.sequence += 1

		a.deps.RawNotes.SetAssetLastSynced(a.id, a.lastSynced)
		a.log.Infof("asset: %s  resynced: %d records  balance: %d", a.id, len(records), a.balance)
	})
	a.scheduleSave()
	a.mu.Unlock()

	return nil
}

// page through the note store without splitting a block
func (a *Asset) fetchAll(ctx context.Context) ([]note.Record, error) {
	all := []note.Record{}
	from := uint64(0)
	count := a.conf.NotesPerBatch

	for {
		page, err := a.deps.NoteStore.FetchNotes(ctx, note.Query{
			Owner:           a.deps.Owner,
			Asset:           a.id,
			Count:           count,
			FromBlockNumber: from,
		})
		if nil != err {
			return nil, err
		}
		if len(page) < count {
			return append(all, page...), nil
		}

		last := page[len(page)-1].BlockNumber
		i := len(page)
		for i > 0 && page[i-1].BlockNumber == last {
			i -= 1
		}
		if 0 == i {
			// one block filled the page
			count *= 2
			continue
		}
		all = append(all, page[:i]...)
		from = last
		count = a.conf.NotesPerBatch
	}
}

// resolve the key and decrypt the value of a raw note
//
// the returned cursor is valid even on error
func (a *Asset) open(r *note.Record) (note.Decrypted, note.Cursor, error) {
	cursor := note.Cursor{BlockNumber: r.BlockNumber}

	key, err := a.deps.Keys.Resolve(a.deps.Owner, r.Hash)
	if nil != err {
		return note.Decrypted{}, cursor, err
	}
	cursor.Key = key

	viewingKey, err := a.deps.Decrypter.Decrypt(r.Metadata)
	if nil != err {
		return note.Decrypted{}, cursor, err
	}
	value, err := a.deps.Decrypter.Value(viewingKey)
	if nil != err {
		return note.Decrypted{}, cursor, err
	}
	return note.Decrypted{Key: key, Value: value}, cursor, nil
}

// a destroyed note must not be taken as a repeat of its creation
func seenHash(r *note.Record) note.Hash {
	if note.Destroyed != r.Status {
		return r.Hash
	}
	return note.NewHash(append(r.Hash[:], []byte(r.Status.String())...))
}
