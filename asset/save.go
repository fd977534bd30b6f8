// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/notesync/note"
)

// persisted keys
const (
	SummaryKey     = "assetSummary"
	PriorityKey    = "priority"
	notesKeyPrefix = "assetNotes/"
)

// NotesKey - persisted key of the note values of an asset
func NotesKey(assetId note.AssetId) string {
	return notesKeyPrefix + string(assetId)
}

// Save - persist after the save delay, a further call restarts the delay
func (a *Asset) Save() {
	a.mu.Lock()
	a.scheduleSave()
	a.mu.Unlock()
}

// SaveDelay - the configured debounce
func (a *Asset) SaveDelay() time.Duration {
	return a.conf.SaveDelay
}

// must hold lock
func (a *Asset) scheduleSave() {
	if a.closed {
		return
	}
	if nil != a.saveTimer {
		a.saveTimer.Stop()
	}
	a.saveTimer = time.AfterFunc(a.conf.SaveDelay, a.save)
}

// skipped while work is in flight, the work reschedules it
func (a *Asset) save() {
	a.mu.Lock()
	if a.closed || !a.modified {
		a.mu.Unlock()
		return
	}
	if a.busy() {
		a.log.Warnf("asset: %s  busy: save skipped", a.id)
		a.mu.Unlock()
		return
	}
	snapshot := a.snapshot()
	sequence := a.sequence
	a.mu.Unlock()

	if nil == snapshot {
		return
	}

	written, err := SaveSnapshots(a.deps.Cache, a.deps.Store, map[note.AssetId]*note.Snapshot{a.id: snapshot}, nil)
	if nil != err {
		a.log.Errorf("asset: %s  save error: %s", a.id, err)
		return
	}
	if 0 == len(written) {
		// newer values were written first, the change that made them
		// also needs saving
		a.log.Debugf("asset: %s  version: %d  stale save skipped", a.id, snapshot.Version)
		a.Save()
		return
	}
	a.MarkSaved(sequence)

	a.log.Debugf("asset: %s  saved  balance: %d  size: %d", a.id, snapshot.Balance, snapshot.Size)
	a.notify(EventBalance, snapshot.Summary())
}

// ReadSummaries - persisted headers of every asset
func ReadSummaries(store Store) (map[note.AssetId]note.Summary, error) {
	summaries := make(map[note.AssetId]note.Summary)
	blob, err := store.Get(SummaryKey)
	if nil != err || nil == blob {
		return summaries, err
	}
	err = json.Unmarshal(blob, &summaries)
	return summaries, err
}

// ReadPriority - persisted priority order, highest first
func ReadPriority(store Store) ([]note.AssetId, error) {
	priority := []note.AssetId{}
	blob, err := store.Get(PriorityKey)
	if nil != err || nil == blob {
		return priority, err
	}
	err = json.Unmarshal(blob, &priority)
	return priority, err
}

// ReadValues - persisted note values of an asset, empty if none
func ReadValues(store Store, assetId note.AssetId) (note.Values, error) {
	values := make(note.Values)
	blob, err := store.Get(NotesKey(assetId))
	if nil != err || nil == blob {
		return values, err
	}
	err = json.Unmarshal(blob, &values)
	return values, err
}

// WriteValues - persist the note values of one asset
func WriteValues(store Store, assetId note.AssetId, values note.Values) error {
	blob, err := json.Marshal(values)
	if nil != err {
		return err
	}
	return store.Set(map[string][]byte{
		NotesKey(assetId): blob,
	})
}

// SaveSnapshots - persist snapshots unless their values are older than
// those already written for the asset, see WriteSnapshots
//
// returns the ids written
func SaveSnapshots(cache Cache, store Store, snapshots map[note.AssetId]*note.Snapshot, priority []note.AssetId) ([]note.AssetId, error) {
	versions := make(map[note.AssetId]uint64, len(snapshots))
	for id, s := range snapshots {
		versions[id] = s.Version
	}

	written := make([]note.AssetId, 0, len(snapshots))
	err := cache.Persist(versions, func(current map[note.AssetId]bool) error {
		fresh := make(map[note.AssetId]*note.Snapshot, len(snapshots))
		for id, s := range snapshots {
			if current[id] {
				fresh[id] = s
				written = append(written, id)
			}
		}
		return WriteSnapshots(store, fresh, priority)
	})
	if nil != err {
		return nil, err
	}
	return written, nil
}

// WriteSnapshots - persist several assets, and optionally the priority,
// as one write
//
// the shared summary is updated under its store lock
func WriteSnapshots(store Store, snapshots map[note.AssetId]*note.Snapshot, priority []note.AssetId) error {
	return store.Lock(SummaryKey, func() error {
		summaries, err := ReadSummaries(store)
		if nil != err {
			return err
		}

		items := make(map[string][]byte, len(snapshots)+2)
		for id, s := range snapshots {
			summaries[id] = s.Summary()
			blob, err := json.Marshal(s.Values)
			if nil != err {
				return err
			}
			items[NotesKey(id)] = blob
		}

		blob, err := json.Marshal(summaries)
		if nil != err {
			return err
		}
		items[SummaryKey] = blob

		if nil != priority {
			blob, err := json.Marshal(priority)
			if nil != err {
				return err
			}
			items[PriorityKey] = blob
		}
		return store.Set(items)
	})
}
