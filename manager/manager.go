// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"context"
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/callback"
	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/notecache"
	"github.com/bitmark-inc/notesync/priority"
	"github.com/bitmark-inc/notesync/rawnotes"
)

const defaultMaxActiveAssets = 2

// RawNotes - the raw note manager as seen by the scheduler
type RawNotes interface {
	asset.RawNotes
	StartSync(ctx context.Context, minHeadBlockNumber uint64) error
}

// Configuration - scheduler limits and the per asset tuning
type Configuration struct {
	MaxActiveAssets int
	Asset           asset.Configuration
}

// ViewFunc - receives the state of a synced asset
type ViewFunc func(view *note.View)

// Manager - all assets of one owner
type Manager struct {
	sync.Mutex

	log      *logger.L
	conf     Configuration
	deps     asset.Dependencies
	cache    *notecache.Cache
	rawNotes RawNotes

	assets     map[note.AssetId]*asset.Asset
	priority   []note.AssetId
	active     *priority.Queue
	pending    *priority.Queue
	again      map[note.AssetId]bool // new notes arrived while active
	generation map[note.AssetId]uint64
	callbacks  *callback.Cache

	initialised bool
	shutdown    chan struct{}
}

// New - create a manager, deps supplies the collaborators other than
// the cache and the raw notes
func New(cache *notecache.Cache, rawNotes RawNotes, deps asset.Dependencies, conf Configuration) *Manager {
	if conf.MaxActiveAssets < 1 {
		conf.MaxActiveAssets = defaultMaxActiveAssets
	}
	deps.Cache = cache
	deps.RawNotes = rawNotes

	return &Manager{
		log:        logger.New("manager"),
		conf:       conf,
		deps:       deps,
		cache:      cache,
		rawNotes:   rawNotes,
		assets:     make(map[note.AssetId]*asset.Asset),
		active:     priority.New(),
		pending:    priority.New(),
		again:      make(map[note.AssetId]bool),
		generation: make(map[note.AssetId]uint64),
		callbacks:  callback.New(),
		shutdown:   make(chan struct{}),
	}
}

// Init - restore the persisted assets and start syncing
//
// the raw notes start from the furthest synced asset, assets behind it
// have their older notes fetched separately
func (m *Manager) Init(ctx context.Context) error {
	summaries, err := asset.ReadSummaries(m.deps.Store)
	if nil != err {
		return err
	}
	ids, err := asset.ReadPriority(m.deps.Store)
	if nil != err {
		return err
	}

	contents := &notecache.Contents{
		Summary:  summaries,
		Notes:    make(map[note.AssetId]note.Values),
		Priority: ids,
	}
	for _, id := range ids {
		if _, ok := summaries[id]; !ok {
			continue
		}
		values, err := asset.ReadValues(m.deps.Store, id)
		if nil != err {
			return err
		}
		contents.Notes[id] = values
	}

	m.Lock()
	if m.initialised {
		m.Unlock()
		return fault.ErrAlreadyInitialised
	}
	m.initialised = true

	m.cache.SetEvictHandler(m.evicted)
	m.cache.SetLoadHandler(m.load)
	admitted := m.cache.Import(contents)

	maxSynced := note.Cursor{}
	for id, summary := range summaries {
		s := summary
		m.assets[id] = asset.New(id, &s, m.deps, m.conf.Asset)
		maxSynced = note.MaxCursor(maxSynced, summary.LastSynced)
	}
	m.priority = append([]note.AssetId{}, ids...)
	m.Unlock()

	m.log.Infof("assets: %d  cached: %d  start block: %d", len(summaries), len(admitted), rawnotes.ResumeBlock(maxSynced))

	// notifications from the first fetch call back into the manager
	if err := m.rawNotes.StartSync(ctx, rawnotes.ResumeBlock(maxSynced)); nil != err {
		m.log.Errorf("raw notes start error: %s", err)
	}

	m.Lock()
	m.syncNext()
	m.Unlock()

	return nil
}

// Asset - the asset for an id, created if not yet known
func (m *Manager) Asset(assetId note.AssetId) *asset.Asset {
	m.Lock()
	defer m.Unlock()
	return m.asset(assetId)
}

// Has - check if an asset is known
func (m *Manager) Has(assetId note.AssetId) bool {
	m.Lock()
	defer m.Unlock()
	_, ok := m.assets[assetId]
	return ok
}

// Assets - known asset ids, sorted
func (m *Manager) Assets() []note.AssetId {
	m.Lock()
	defer m.Unlock()
	return m.sortedIds()
}

// Counts - active and pending assets
func (m *Manager) Counts() (int, int) {
	m.Lock()
	defer m.Unlock()
	return m.active.Len(), m.pending.Len()
}

// Active - active asset ids in activation order
func (m *Manager) Active() []note.AssetId {
	m.Lock()
	defer m.Unlock()
	return m.active.List()
}

// Pending - pending asset ids, next to activate first
func (m *Manager) Pending() []note.AssetId {
	m.Lock()
	defer m.Unlock()
	return m.pending.List()
}

// Queues - active and pending asset ids taken together
func (m *Manager) Queues() ([]note.AssetId, []note.AssetId) {
	m.Lock()
	defer m.Unlock()
	return m.active.List(), m.pending.List()
}

// Priority - the explicit priority list
func (m *Manager) Priority() []note.AssetId {
	m.Lock()
	defer m.Unlock()
	return append([]note.AssetId{}, m.priority...)
}

// Close - stop every asset, call SaveAll first to keep changes
func (m *Manager) Close() {
	m.Lock()
	defer m.Unlock()

	select {
	case <-m.shutdown:
		return
	default:
	}
	close(m.shutdown)

	for _, a := range m.assets {
		a.Close()
	}
	if n := m.callbacks.Len(); 0 != n {
		m.log.Warnf("discarding: %d callbacks", n)
		for _, key := range m.callbacks.Keys() {
			m.callbacks.Remove(key)
		}
	}
}

// must hold lock
func (m *Manager) asset(assetId note.AssetId) *asset.Asset {
	a, ok := m.assets[assetId]
	if !ok {
		m.log.Debugf("new asset: %s", assetId)
		a = asset.New(assetId, nil, m.deps, m.conf.Asset)
		m.assets[assetId] = a
	}
	return a
}

// must hold lock
func (m *Manager) sortedIds() []note.AssetId {
	ids := make([]note.AssetId, 0, len(m.assets))
	for id := range m.assets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// must hold lock
func (m *Manager) closed() bool {
	select {
	case <-m.shutdown:
		return true
	default:
		return false
	}
}

// cache eviction: keep the evicted values in the store
func (m *Manager) evicted(assetId note.AssetId, values note.Values) error {
	if err := asset.WriteValues(m.deps.Store, assetId, values); nil != err {
		m.log.Errorf("asset: %s  evict write error: %s", assetId, err)
		return err
	}
	m.log.Debugf("asset: %s  evicted: %d notes", assetId, values.Count())
	return nil
}

// cache reload of an evicted asset
//
// called with the cache locked
func (m *Manager) load(assetId note.AssetId) note.Values {
	values, err := asset.ReadValues(m.deps.Store, assetId)
	if nil != err {
		m.log.Errorf("asset: %s  reload error: %s", assetId, err)
		return nil
	}
	return values
}
