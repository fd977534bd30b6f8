// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rawnotes

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/notesync/note"
)

const defaultSyncInterval = 10 * time.Second

// NoteStore - paginated source of raw notes
type NoteStore interface {
	FetchNotes(ctx context.Context, q note.Query) ([]note.Record, error)
}

// Handler - called when an asset has notes waiting
type Handler func(assetId note.AssetId)

// Configuration - tuning for the manager
type Configuration struct {
	NotesPerBatch int           // page size for store fetches
	SyncInterval  time.Duration // poll delay when the store has nothing new
	FetchRate     float64       // maximum store fetches per second when paging
}

// head window: blocks [min, next) have been fetched
type headWindow struct {
	started   bool
	min       uint64
	next      uint64
	exhausted bool // last fetch reached the end of the store or the tail
}

// tail window: blocks [min, max] have been appended
type tailWindow struct {
	active bool
	min    uint64
	max    uint64
}

type assetState struct {
	sync.Mutex // serialises FetchAndRemove for the asset

	synced  note.Cursor // as reported by the asset
	fetched uint64      // next block of the prepend range to fetch
}

// Manager - raw note windows for one owner
type Manager struct {
	sync.Mutex

	log           *logger.L
	owner         note.Address
	store         NoteStore
	notesPerBatch int
	syncInterval  time.Duration
	limiter       *rate.Limiter
	onNewNotes    Handler

	fetchLock sync.Mutex // serialises head fetches

	head   headWindow
	tail   tailWindow
	heads  map[note.AssetId][]note.Record
	tails  map[note.AssetId][]note.Record
	assets map[note.AssetId]*assetState

	wake    chan struct{}
	stopped bool
}

// New - create a manager for an owner
func New(owner note.Address, store NoteStore, conf Configuration) *Manager {
	if conf.NotesPerBatch < 1 {
		conf.NotesPerBatch = 1
	}
	if conf.SyncInterval <= 0 {
		conf.SyncInterval = defaultSyncInterval
	}
	limit := rate.Inf
	if conf.FetchRate > 0 {
		limit = rate.Limit(conf.FetchRate)
	}
	return &Manager{
		log:           logger.New("rawnotes"),
		owner:         owner,
		store:         store,
		notesPerBatch: conf.NotesPerBatch,
		syncInterval:  conf.SyncInterval,
		limiter:       rate.NewLimiter(limit, 1),
		heads:         make(map[note.AssetId][]note.Record),
		tails:         make(map[note.AssetId][]note.Record),
		assets:        make(map[note.AssetId]*assetState),
		wake:          make(chan struct{}, 1),
	}
}

// SetHandler - install the new notes observer
func (m *Manager) SetHandler(h Handler) {
	m.Lock()
	m.onNewNotes = h
	m.Unlock()
}

// StartSync - set the head start and perform the first fetch
func (m *Manager) StartSync(ctx context.Context, minHeadBlockNumber uint64) error {
	m.Lock()
	m.head = headWindow{
		started: true,
		min:     minHeadBlockNumber,
		next:    minHeadBlockNumber,
	}
	m.log.Infof("start sync from block: %d", minHeadBlockNumber)
	m.Unlock()

	_, err := m.FetchHeadNotes(ctx)
	return err
}

// SetAssetLastSynced - record how far an asset has been processed
//
// an asset that has not yet processed the blocks before the head start
// will have them fetched separately on its next FetchAndRemove
func (m *Manager) SetAssetLastSynced(assetId note.AssetId, lastSynced note.Cursor) {
	m.Lock()
	defer m.Unlock()

	st := m.asset(assetId)
	st.synced.Advance(lastSynced)
	if resume := ResumeBlock(st.synced); resume > st.fetched {
		st.fetched = resume
	}
}

// CurrentSynced - the last cursor reported for an asset
func (m *Manager) CurrentSynced(assetId note.AssetId) (note.Cursor, bool) {
	m.Lock()
	defer m.Unlock()
	st, ok := m.assets[assetId]
	if !ok {
		return note.Cursor{}, false
	}
	return st.synced, true
}

// MinHeadBlockNumber - the start of the head window
func (m *Manager) MinHeadBlockNumber() uint64 {
	m.Lock()
	defer m.Unlock()
	return m.head.min
}

// Counts - buffered head and tail records
func (m *Manager) Counts() (int, int) {
	m.Lock()
	defer m.Unlock()
	heads := 0
	for _, b := range m.heads {
		heads += len(b)
	}
	tails := 0
	for _, b := range m.tails {
		tails += len(b)
	}
	return heads, tails
}

// Stop - no further fetches are started
func (m *Manager) Stop() {
	m.Lock()
	m.stopped = true
	m.Unlock()
}

// ResumeBlock - first block still needed after a cursor
//
// a batch may end part way through a block so the cursor block is
// fetched again, reprocessing a note is harmless
func ResumeBlock(c note.Cursor) uint64 {
	return c.BlockNumber
}

// must hold lock
func (m *Manager) asset(assetId note.AssetId) *assetState {
	st, ok := m.assets[assetId]
	if !ok {
		st = &assetState{}
		m.assets[assetId] = st
	}
	return st
}

// request an asynchronous head fetch
func (m *Manager) prefetch() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// call without lock
func (m *Manager) notify(assetIds []note.AssetId) {
	if 0 == len(assetIds) {
		return
	}
	m.Lock()
	h := m.onNewNotes
	m.Unlock()
	if nil == h {
		return
	}
	for _, id := range assetIds {
		h(id)
	}
}
