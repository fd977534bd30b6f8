// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"context"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/callback"
	"github.com/bitmark-inc/notesync/note"
)

// HandleNewRawNotes - raw notes are waiting for an asset
func (m *Manager) HandleNewRawNotes(assetId note.AssetId) {
	m.Lock()
	defer m.Unlock()

	if m.closed() {
		return
	}

	m.asset(assetId)
	switch {
	case m.active.Has(assetId):
		m.again[assetId] = true
	case m.pending.Has(assetId):
	default:
		m.pending.AddToBottom(assetId)
		m.syncNext()
	}
}

// HandleCallbackPriorityChanged - replace the explicit priority list
//
// active assets dropped from the list are locked and returned to the
// top of the pending queue, listed assets that are waiting are raised
// above them in list order
func (m *Manager) HandleCallbackPriorityChanged(ids []note.AssetId) {
	m.Lock()
	defer m.Unlock()

	if m.closed() {
		return
	}

	listed := make(map[note.AssetId]struct{}, len(ids))
	unique := make([]note.AssetId, 0, len(ids))
	for _, id := range ids {
		if _, ok := listed[id]; ok {
			continue
		}
		listed[id] = struct{}{}
		unique = append(unique, id)
		m.asset(id)
	}
	m.priority = unique

	for _, id := range m.active.List() {
		if _, ok := listed[id]; ok {
			continue
		}
		m.log.Debugf("asset: %s  paused", id)
		m.assets[id].Lock()
		m.active.Remove(id)
		m.pending.AddToTop(id)
	}

	for i := len(unique) - 1; i >= 0; i -= 1 {
		id := unique[i]
		switch {
		case m.active.Has(id):
			m.active.MoveToTop(id)
		case m.pending.Has(id), m.waiting(id):
			m.pending.MoveToTop(id)
		}
		m.cache.Touch(id)
	}

	m.syncNext()
}

// EnsureSynced - call f with the asset state once it is synced and
// resident, immediately if it already is
func (m *Manager) EnsureSynced(assetId note.AssetId, f ViewFunc) {
	m.Lock()

	a := m.asset(assetId)
	if a.Synced() && m.cache.Has(assetId) && !m.again[assetId] {
		m.Unlock()
		f(a.View())
		return
	}

	m.callbacks.Add(string(assetId), func() {
		f(a.View())
	})

	if !m.active.Has(assetId) && !m.closed() {
		m.pending.MoveToTop(assetId)
		m.syncNext()
	}
	m.Unlock()
}

// SyncAsset - rebuild one asset from the note store
func (m *Manager) SyncAsset(ctx context.Context, assetId note.AssetId) error {
	return m.Asset(assetId).Resync(ctx)
}

// SaveAll - persist every modified asset and the cache priority as
// one write
func (m *Manager) SaveAll() error {
	m.Lock()
	snapshots := make(map[note.AssetId]*note.Snapshot)
	sequences := make(map[note.AssetId]uint64)
	for id, a := range m.assets {
		if !a.Modified() {
			continue
		}
		if a.Busy() {
			m.log.Warnf("asset: %s  busy: not saved", id)
			continue
		}
		snapshot, sequence := a.Snapshot()
		if nil == snapshot {
			continue
		}
		snapshots[id], sequences[id] = snapshot, sequence
	}
	priority := m.cache.Priority()
	m.Unlock()

	written, err := asset.SaveSnapshots(m.cache, m.deps.Store, snapshots, priority)
	if nil != err {
		m.log.Errorf("save all error: %s", err)
		return err
	}

	m.Lock()
	for _, id := range written {
		m.assets[id].MarkSaved(sequences[id])
	}
	m.Unlock()

	if n := len(snapshots) - len(written); 0 != n {
		m.log.Infof("saved: %d assets  stale: %d", len(written), n)
	} else {
		m.log.Infof("saved: %d assets", len(written))
	}
	return nil
}

// activate assets while there is capacity
//
// must hold lock
func (m *Manager) syncNext() {
	for m.active.Len() < m.conf.MaxActiveAssets && !m.closed() {
		assetId, ok := m.next()
		if !ok {
			return
		}
		m.active.AddToBottom(assetId)
		m.start(assetId)
	}
}

// must hold lock
func (m *Manager) next() (note.AssetId, bool) {
	if assetId, ok := m.pending.Pop(); ok {
		return assetId, true
	}
	for _, assetId := range m.priority {
		if m.waiting(assetId) {
			return assetId, true
		}
	}
	for _, assetId := range m.sortedIds() {
		if m.waiting(assetId) {
			return assetId, true
		}
	}
	return "", false
}

// must hold lock
func (m *Manager) waiting(assetId note.AssetId) bool {
	a, ok := m.assets[assetId]
	return ok && !a.Synced() && !m.active.Has(assetId)
}

// start a round and watch for its completion
//
// must hold lock
func (m *Manager) start(assetId note.AssetId) {
	delete(m.again, assetId)
	m.generation[assetId] += 1
	generation := m.generation[assetId]

	m.log.Debugf("asset: %s  start sync  generation: %d", assetId, generation)
	done := m.assets[assetId].StartSync()

	go func() {
		select {
		case <-done:
			m.handleAssetSynced(assetId, generation)
		case <-m.shutdown:
		}
	}()
}

// a sync round finished
func (m *Manager) handleAssetSynced(assetId note.AssetId, generation uint64) {
	m.Lock()

	if m.closed() || generation != m.generation[assetId] {
		m.log.Debugf("asset: %s  ignore stale generation: %d", assetId, generation)
		m.Unlock()
		return
	}

	// paused before the completion was seen, it resumes from pending
	if !m.active.Has(assetId) {
		m.Unlock()
		return
	}

	a := m.assets[assetId]
	if m.again[assetId] {
		m.start(assetId)
		m.Unlock()
		return
	}

	m.active.Remove(assetId)
	callbacks := m.callbacks.Flush(string(assetId))
	m.syncNext()
	modified := a.Modified()
	m.Unlock()

	m.log.Debugf("asset: %s  synced  callbacks: %d", assetId, len(callbacks))
	runCallbacks(callbacks)
	if modified {
		a.Save()
	}
}

func runCallbacks(callbacks []callback.Func) {
	for _, f := range callbacks {
		f()
	}
}
