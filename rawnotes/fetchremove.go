// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rawnotes

import (
	"context"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/note"
)

// FetchAndRemove - take up to count raw notes for an asset
//
// blocks are never split by the store fetches, so slightly more than
// count records may be returned when a prepend page completes a block
//
// an empty result means nothing is available right now
func (m *Manager) FetchAndRemove(ctx context.Context, assetId note.AssetId, count int) ([]note.Record, error) {
	if count < 1 {
		return nil, fault.ErrInvalidCount
	}

	m.Lock()
	st := m.asset(assetId)
	m.Unlock()

	st.Lock()
	records, notify, err := m.fetchAndRemove(ctx, assetId, st, count)
	st.Unlock()

	m.notify(notify)
	return records, err
}

func (m *Manager) fetchAndRemove(ctx context.Context, assetId note.AssetId, st *assetState, count int) ([]note.Record, []note.AssetId, error) {

	// older notes for an asset that is behind the head start
	m.Lock()
	started := m.head.started
	headMin := m.head.min
	fetched := st.fetched
	m.Unlock()

	if !started {
		return nil, nil, nil
	}

	if fetched < headMin {
		records, next, exhausted, err := m.fetchPage(ctx, assetId, fetched, headMin-1, true, count)
		if nil != err {
			return nil, nil, err
		}
		m.Lock()
		if exhausted {
			st.fetched = headMin
		} else {
			st.fetched = next
		}
		m.Unlock()

		if 0 != len(records) {
			m.log.Debugf("asset: %s  prepend: %d records  next block: %d", assetId, len(records), st.fetched)
			return records, nil, nil
		}
	}

	// head notes, fetching more pages until satisfied or exhausted
	records := make([]note.Record, 0, count)
	notify := []note.AssetId{}
	for {
		m.Lock()
		records = append(records, m.take(m.heads, assetId, count-len(records))...)
		exhausted := m.head.exhausted || m.stopped
		m.Unlock()

		if len(records) >= count || exhausted {
			break
		}

		n, _, err := m.fetchHead(ctx)
		notify = append(notify, n...)
		if nil != err {
			if 0 != len(records) {
				break
			}
			return nil, notify, err
		}
	}

	m.Lock()
	defer m.Unlock()

	// tail notes only once the head has caught up with the tail
	if len(records) < count && m.tail.active && m.head.next >= m.tail.min && 0 == len(m.heads[assetId]) {
		records = append(records, m.take(m.tails, assetId, count-len(records))...)
	}

	if 0 == len(m.heads[assetId]) && !m.head.exhausted {
		m.prefetch()
	}

	return records, notify, nil
}

// remove up to n records from the front of a bucket
//
// must hold lock
func (m *Manager) take(buckets map[note.AssetId][]note.Record, assetId note.AssetId, n int) []note.Record {
	bucket := buckets[assetId]
	if n <= 0 || 0 == len(bucket) {
		return nil
	}
	if n >= len(bucket) {
		delete(buckets, assetId)
		return bucket
	}
	taken := make([]note.Record, n)
	copy(taken, bucket[:n])
	buckets[assetId] = bucket[n:]
	return taken
}
