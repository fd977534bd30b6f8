// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rawnotes

import (
	"context"
	"sort"

	"github.com/bitmark-inc/notesync/note"
)

// FetchHeadNotes - fetch the next page of the head window
//
// returns true if the page was full and more notes may be waiting
func (m *Manager) FetchHeadNotes(ctx context.Context) (bool, error) {
	notify, more, err := m.fetchHead(ctx)
	m.notify(notify)
	return more, err
}

// AppendHeads - merge externally fetched notes into the head window
//
// the notes must be complete for every block they cover, notes already
// covered by either window are dropped
func (m *Manager) AppendHeads(records []note.Record) {
	m.fetchLock.Lock()
	m.Lock()

	notify := m.appendHeads(records)
	for _, r := range records {
		if r.BlockNumber >= m.head.next && m.covered(r.BlockNumber) {
			m.head.next = r.BlockNumber + 1
		}
	}

	m.Unlock()
	m.fetchLock.Unlock()

	m.notify(notify)
}

// AppendTails - add live notes to the tail window
//
// a note for a block the head has already passed arrived after the
// head fetched that block, it joins the head bucket and leaves both
// window boundaries alone, repeats are dropped by the asset
func (m *Manager) AppendTails(records []note.Record) {
	m.Lock()

	notify := []note.AssetId{}
	touched := map[note.AssetId]struct{}{}
	late := map[note.AssetId]struct{}{}
	for _, r := range records {
		if r.Owner != m.owner {
			m.log.Warnf("tail note: %s  owner: %s  expected: %s", r.Hash, r.Owner, m.owner)
			continue
		}
		if m.head.started && r.BlockNumber < m.head.next {
			if 0 == len(m.heads[r.Asset]) {
				notify = append(notify, r.Asset)
			}
			m.heads[r.Asset] = append(m.heads[r.Asset], r)
			late[r.Asset] = struct{}{}
			m.log.Debugf("late note: %s  block: %d  head next: %d", r.Hash, r.BlockNumber, m.head.next)
			continue
		}

		if !m.tail.active {
			m.tail = tailWindow{
				active: true,
				min:    r.BlockNumber,
				max:    r.BlockNumber,
			}
		} else if r.BlockNumber < m.tail.min {
			m.tail.min = r.BlockNumber
		} else if r.BlockNumber > m.tail.max {
			m.tail.max = r.BlockNumber
		}

		if 0 == len(m.tails[r.Asset]) {
			notify = append(notify, r.Asset)
		}
		m.tails[r.Asset] = append(m.tails[r.Asset], r)
		touched[r.Asset] = struct{}{}
	}

	// the blocks between the head and the new tail are still to be fetched
	if m.tail.active && m.head.started && m.head.next < m.tail.min {
		m.head.exhausted = false
	}

	for id := range touched {
		bucket := m.tails[id]
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].BlockNumber < bucket[j].BlockNumber })
	}
	for id := range late {
		bucket := m.heads[id]
		sort.SliceStable(bucket, func(i, j int) bool { return bucket[i].BlockNumber < bucket[j].BlockNumber })
	}

	m.Unlock()

	m.notify(notify)
}

// fetch one page for the head window
func (m *Manager) fetchHead(ctx context.Context) ([]note.AssetId, bool, error) {
	m.fetchLock.Lock()
	defer m.fetchLock.Unlock()

	m.Lock()
	if !m.head.started || m.stopped {
		m.Unlock()
		return nil, false, nil
	}
	from := m.head.next
	to := uint64(0)
	bounded := m.tail.active
	if bounded {
		if from >= m.tail.min {
			m.head.exhausted = true
			m.Unlock()
			return nil, false, nil
		}
		to = m.tail.min - 1
	}
	m.Unlock()

	records, next, exhausted, err := m.fetchPage(ctx, "", from, to, bounded, m.notesPerBatch)
	if nil != err {
		m.log.Errorf("fetch head from: %d  error: %s", from, err)
		return nil, false, err
	}

	m.Lock()
	defer m.Unlock()

	notify := m.appendHeads(records)
	if m.tail.active && next > m.tail.min {
		next = m.tail.min
	}
	if next > m.head.next {
		m.head.next = next
	}
	m.head.exhausted = exhausted
	m.log.Debugf("head: %d records  next block: %d  exhausted: %t", len(records), m.head.next, exhausted)

	return notify, !exhausted, nil
}

// add head records to the asset buckets
//
// must hold lock
func (m *Manager) appendHeads(records []note.Record) []note.AssetId {
	notify := []note.AssetId{}
	for _, r := range records {
		if r.BlockNumber < m.head.next || !m.covered(r.BlockNumber) {
			continue
		}
		if 0 == len(m.heads[r.Asset]) {
			notify = append(notify, r.Asset)
		}
		m.heads[r.Asset] = append(m.heads[r.Asset], r)
	}
	return notify
}

// true if the block belongs to the head side of the tail boundary
//
// must hold lock
func (m *Manager) covered(blockNumber uint64) bool {
	return !m.tail.active || blockNumber < m.tail.min
}

// fetch a page that never ends part way through a block
//
// returns the records, the next block to fetch and whether the range
// has been exhausted
func (m *Manager) fetchPage(ctx context.Context, assetId note.AssetId, from uint64, to uint64, bounded bool, count int) ([]note.Record, uint64, bool, error) {
	if bounded && to < from {
		return nil, from, true, nil
	}

	q := note.Query{
		Owner:           m.owner,
		Asset:           assetId,
		Count:           count,
		FromBlockNumber: from,
	}
	if bounded {
		q.ToBlockNumber = to // zero is unbounded to the store so filter below
	}

	records, err := m.store.FetchNotes(ctx, q)
	if nil != err {
		return nil, from, false, err
	}

	full := len(records) >= count
	if bounded {
		for i, r := range records {
			if r.BlockNumber > to {
				records = records[:i]
				full = false
				break
			}
		}
	}

	if !full {
		next := from
		if bounded {
			next = to + 1
		} else if n := len(records); n > 0 {
			next = records[n-1].BlockNumber + 1
		}
		return records, next, true, nil
	}

	last := records[len(records)-1].BlockNumber
	if records[0].BlockNumber != last {
		// the last block may continue on the next page
		i := len(records)
		for records[i-1].BlockNumber == last {
			i -= 1
		}
		return records[:i], last, false, nil
	}

	// a single block filled the page so complete it
	block, err := m.fetchBlock(ctx, assetId, last, 2*count)
	if nil != err {
		return nil, from, false, err
	}
	return block, last + 1, bounded && last >= to, nil
}

// fetch every record of one block
func (m *Manager) fetchBlock(ctx context.Context, assetId note.AssetId, blockNumber uint64, count int) ([]note.Record, error) {
	for {
		q := note.Query{
			Owner:           m.owner,
			Asset:           assetId,
			Count:           count,
			FromBlockNumber: blockNumber,
			ToBlockNumber:   blockNumber,
		}
		records, err := m.store.FetchNotes(ctx, q)
		if nil != err {
			return nil, err
		}

		n := len(records)
		for i, r := range records {
			if r.BlockNumber != blockNumber {
				n = i
				break
			}
		}
		if n < len(records) || len(records) < count {
			return records[:n], nil
		}
		count *= 2
	}
}
