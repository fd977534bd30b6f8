// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"

	"github.com/bitmark-inc/notesync/counter"
	"github.com/bitmark-inc/notesync/limitedset"
	"github.com/bitmark-inc/notesync/note"
)

// defaults for a zero configuration
const (
	defaultMaxProcesses            = 2
	defaultNotesPerBatch           = 20
	defaultNotesPerDecryptionBatch = 5
	defaultSaveDelay               = time.Second
	defaultSeenNotes               = 1000
)

// Configuration - tuning for every asset
type Configuration struct {
	MaxProcesses            int           // concurrent processes per asset
	NotesPerBatch           int           // raw notes requested per fetch
	NotesPerDecryptionBatch int           // raw notes per decryption process
	SaveDelay               time.Duration // debounce for Save
	SeenNotes               int           // size of the duplicate delivery window
}

// Dependencies - collaborators shared by every asset of a session
type Dependencies struct {
	Owner     note.Address
	Cache     Cache
	RawNotes  RawNotes
	NoteStore NoteStore
	Keys      KeyResolver
	Decrypter Decrypter
	Store     Store
	Notifier  Notifier
}

// Asset - the notes of one asset for the session owner
type Asset struct {
	mu sync.Mutex

	log  *logger.L
	id   note.AssetId
	conf Configuration
	deps Dependencies

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	balance    uint64
	lastSynced note.Cursor
	size       int
	modified   bool
	sequence   uint64 // incremented on every commit
	synced     bool

	locked  bool
	actions []func()

	active  map[uuid.UUID]*process
	pending []*process
	done    chan struct{}

	seen       *limitedset.LimitedSet
	tombstones map[note.Key]struct{} // destroyed before their creation was committed
	saveTimer  *time.Timer

	decrypted counter.Counter
	failed    counter.Counter
}

// New - create an asset, summary is the persisted header if any
func New(assetId note.AssetId, summary *note.Summary, deps Dependencies, conf Configuration) *Asset {
	if conf.MaxProcesses < 1 {
		conf.MaxProcesses = defaultMaxProcesses
	}
	if conf.NotesPerBatch < 1 {
		conf.NotesPerBatch = defaultNotesPerBatch
	}
	if conf.NotesPerDecryptionBatch < 1 {
		conf.NotesPerDecryptionBatch = defaultNotesPerDecryptionBatch
	}
	if conf.SaveDelay <= 0 {
		conf.SaveDelay = defaultSaveDelay
	}
	if conf.SeenNotes < 1 {
		conf.SeenNotes = defaultSeenNotes
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Asset{
		log:    logger.New("asset"),
		id:     assetId,
		conf:   conf,
		deps:   deps,
		ctx:    ctx,
		cancel: cancel,
		active:     make(map[uuid.UUID]*process),
		seen:       limitedset.New(conf.SeenNotes),
		tombstones: make(map[note.Key]struct{}),
	}
	if nil != summary {
		a.balance = summary.Balance
		a.lastSynced = summary.LastSynced
		a.size = summary.Size
	}
	return a
}

// Id - the asset id
func (a *Asset) Id() note.AssetId {
	return a.id
}

// Balance - sum of the values of all notes
func (a *Asset) Balance() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// LastSynced - how far the raw notes have been processed
func (a *Asset) LastSynced() note.Cursor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSynced
}

// Synced - true when the last sync round completed
func (a *Asset) Synced() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.synced
}

// Modified - true if there are changes not yet saved
func (a *Asset) Modified() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modified
}

// Locked - true while mutations are being queued
func (a *Asset) Locked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.locked
}

// Counts - notes decrypted and notes that failed to decrypt
func (a *Asset) Counts() (uint64, uint64) {
	return a.decrypted.Uint64(), a.failed.Uint64()
}

// Processes - active and pending process counts
func (a *Asset) Processes() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.active), len(a.pending)
}

// Lock - queue mutations and hold back new processes
func (a *Asset) Lock() {
	a.mu.Lock()
	a.locked = true
	a.mu.Unlock()
}

// Unlock - apply queued mutations in order and resume processing
func (a *Asset) Unlock() {
	a.mu.Lock()
	synced := a.unlock()
	a.mu.Unlock()

	if synced {
		a.notify(EventSynced, a.Summary())
	}
}

// Summary - the persisted header
func (a *Asset) Summary() note.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return note.Summary{
		Balance:    a.balance,
		LastSynced: a.lastSynced,
		Size:       a.size,
	}
}

// View - read only copy of the balance and note values
func (a *Asset) View() *note.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return note.NewView(a.id, a.balance, a.values(true))
}

// Snapshot - everything to persist for the asset and the modification
// sequence it reflects, see MarkSaved
//
// the snapshot is nil if the note values could not be read
func (a *Asset) Snapshot() (*note.Snapshot, uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot(), a.sequence
}

// MarkSaved - clear the modified flag if nothing changed since the
// snapshot with sequence was taken
func (a *Asset) MarkSaved(sequence uint64) {
	a.mu.Lock()
	if sequence == a.sequence {
		a.modified = false
	}
	a.mu.Unlock()
}

// Busy - true if a snapshot now could be inconsistent
func (a *Asset) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy()
}

// AddNoteValue - record a note ahead of it being synced
func (a *Asset) AddNoteValue(value uint64, key note.Key) {
	a.mu.Lock()
	a.apply(func() {
		a.commit(note.Created, note.Decrypted{Key: key, Value: value})
	})
	a.scheduleSave()
	a.mu.Unlock()
}

// RemoveNoteValue - drop a note ahead of it being synced
func (a *Asset) RemoveNoteValue(value uint64, key note.Key) {
	a.mu.Lock()
	a.apply(func() {
		a.commit(note.Destroyed, note.Decrypted{Key: key, Value: value})
	})
	a.scheduleSave()
	a.mu.Unlock()
}

// Close - stop processing, queued work is abandoned
//
// the current round completes once the active processes return
func (a *Asset) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.cancel()
	if nil != a.saveTimer {
		a.saveTimer.Stop()
	}
	a.pending = nil
	a.actions = nil
	a.locked = false
	a.checkDone()
}

// run f now or queue it while locked
//
// must hold lock
func (a *Asset) apply(f func()) {
	if a.locked {
		a.actions = append(a.actions, f)
		return
	}
	f()
}

// apply a decrypted note to the cache and the balance
//
// a destroy that finds nothing leaves a tombstone that drops the
// matching creation, tombstones last until the end of the sync round
//
// must hold lock
func (a *Asset) commit(status note.Status, d note.Decrypted) {
	switch status {
	case note.Created:
		if _, ok := a.tombstones[d.Key]; ok {
			delete(a.tombstones, d.Key)
			a.log.Debugf("asset: %s  key: %s  created after destroy: dropped", a.id, d.Key)
			return
		}
		if !a.deps.Cache.Add(a.id, d, false) {
			return
		}
		a.balance += d.Value
		a.size += 1
	case note.Destroyed:
		if !a.deps.Cache.Remove(a.id, d, false) {
			// decryption batches commit in completion order so the
			// creation may still be in flight
			a.tombstones[d.Key] = struct{}{}
			return
		}
		a.balance -= d.Value
		a.size -= 1
	default:
		a.log.Warnf("asset: %s  key: %s  invalid status: %d", a.id, d.Key, status)
		return
	}
	a.modified = true
	a.sequence += 1
}

// returns true if the sync round completed
//
// must hold lock
func (a *Asset) unlock() bool {
	a.locked = false
	actions := a.actions
	a.actions = nil
	for _, f := range actions {
		f()
	}
	if 0 != len(actions) {
		a.scheduleSave()
	}
	a.runNextProcess()
	return a.checkDone()
}

// current note values, from the cache or else from the store
//
// must hold lock
func (a *Asset) values(increasePriority bool) note.Values {
	if values, ok := a.deps.Cache.Get(a.id, increasePriority); ok {
		return values
	}
	values, err := ReadValues(a.deps.Store, a.id)
	if nil != err {
		a.log.Errorf("asset: %s  read values error: %s", a.id, err)
		return make(note.Values)
	}
	return values
}

// must hold lock
func (a *Asset) snapshot() *note.Snapshot {
	values, version, ok := a.deps.Cache.Peek(a.id)
	if !ok {
		stored, err := ReadValues(a.deps.Store, a.id)
		if nil != err {
			a.log.Errorf("asset: %s  snapshot read values error: %s", a.id, err)
			return nil
		}
		values = stored
	}
	return &note.Snapshot{
		Balance:    a.balance,
		LastSynced: a.lastSynced,
		Size:       a.size,
		Values:     values,
		Version:    version,
	}
}

// must hold lock
func (a *Asset) busy() bool {
	return 0 != len(a.active) || 0 != len(a.pending) || 0 != len(a.actions)
}

// call without lock
func (a *Asset) notify(event string, payload interface{}) {
	if nil != a.deps.Notifier {
		a.deps.Notifier.Notify(event, a.id, payload)
	}
}
