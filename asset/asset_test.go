// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/asset/mocks"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/notecache"
	"github.com/bitmark-inc/notesync/viewingkey"
)

type fixture struct {
	keyPair  *viewingkey.KeyPair
	cache    *notecache.Cache
	rawNotes *queueRawNotes
	store    *memStore
	events   *eventLog
	deps     asset.Dependencies
}

func setup(t *testing.T, ctl *gomock.Controller) *fixture {
	keyPair := newKeyPair(t)

	keys := mocks.NewMockKeyResolver(ctl)
	table := &keyTable{}
	keys.EXPECT().Resolve(owner, gomock.Any()).DoAndReturn(table.resolve).AnyTimes()

	f := &fixture{
		keyPair:  keyPair,
		cache:    notecache.New(100, 10),
		rawNotes: &queueRawNotes{},
		store:    newMemStore(),
		events:   &eventLog{},
	}
	f.deps = asset.Dependencies{
		Owner:     owner,
		Cache:     f.cache,
		RawNotes:  f.rawNotes,
		Keys:      keys,
		Decrypter: viewingkey.NewDecrypter(keyPair),
		Store:     f.store,
		Notifier:  f.events,
	}
	return f
}

var testConfiguration = asset.Configuration{
	MaxProcesses:            2,
	NotesPerBatch:           3,
	NotesPerDecryptionBatch: 2,
	SaveDelay:               10 * time.Millisecond,
}

func TestSyncDecryptsNotes(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	for i := uint64(1); i <= 7; i += 1 {
		f.rawNotes.push(sealed(t, f.keyPair, fmt.Sprintf("note-%d", i), i, i, note.Created))
	}

	a := asset.New(assetId, nil, f.deps, testConfiguration)
	defer a.Close()

	wait(t, a.StartSync())

	assert.True(t, a.Synced(), "synced")
	assert.Equal(t, uint64(28), a.Balance(), "balance")
	assert.Equal(t, uint64(7), a.LastSynced().BlockNumber, "last synced")
	assert.Equal(t, 7, f.cache.Size(assetId), "cache size")
	assert.Equal(t, 7, a.Summary().Size, "summary size")

	decrypted, failed := a.Counts()
	assert.Equal(t, uint64(7), decrypted, "decrypted")
	assert.Equal(t, uint64(0), failed, "failed")

	view := a.View()
	assert.Equal(t, uint64(28), view.Balance, "view balance")
	assert.Equal(t, view.Values.Balance(), view.Balance, "balance invariant")
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7}, view.SortedValues(), "sorted values")

	assert.Equal(t, 1, f.events.count(asset.EventSynced), "synced event")
}

func TestDecryptFailureAdvancesCursor(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	f.rawNotes.push(sealed(t, f.keyPair, "good", 12, 3, note.Created))
	f.rawNotes.push(note.Record{
		Hash:        note.NewHash([]byte("bad")),
		Asset:       assetId,
		Owner:       owner,
		BlockNumber: 9,
		Status:      note.Created,
		Metadata:    []byte("not a sealed viewing key"),
	})

	a := asset.New(assetId, nil, f.deps, testConfiguration)
	defer a.Close()

	wait(t, a.StartSync())

	assert.Equal(t, uint64(12), a.Balance(), "balance")
	assert.Equal(t, uint64(9), a.LastSynced().BlockNumber, "cursor passed the bad note")

	decrypted, failed := a.Counts()
	assert.Equal(t, uint64(1), decrypted, "decrypted")
	assert.Equal(t, uint64(1), failed, "failed")
}

func TestDuplicateDeliveryIgnored(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	r := sealed(t, f.keyPair, "twice", 5, 1, note.Created)
	f.rawNotes.push(r, r, r)

	a := asset.New(assetId, nil, f.deps, testConfiguration)
	defer a.Close()

	wait(t, a.StartSync())

	assert.Equal(t, uint64(5), a.Balance(), "counted once")
	decrypted, _ := a.Counts()
	assert.Equal(t, uint64(1), decrypted, "decrypted once")
}

func TestDestroyedNote(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	created := sealed(t, f.keyPair, "spent", 5, 1, note.Created)
	destroyed := created
	destroyed.BlockNumber = 2
	destroyed.Status = note.Destroyed
	f.rawNotes.push(created, sealed(t, f.keyPair, "kept", 4, 1, note.Created))

	cfg := testConfiguration
	cfg.MaxProcesses = 1

	a := asset.New(assetId, nil, f.deps, cfg)
	defer a.Close()

	wait(t, a.StartSync())
	assert.Equal(t, uint64(9), a.Balance(), "both created")

	f.rawNotes.push(destroyed)
	wait(t, a.StartSync())

	assert.Equal(t, uint64(4), a.Balance(), "destroyed removed")
	assert.Equal(t, uint64(2), a.LastSynced().BlockNumber, "last synced")
	assert.Equal(t, note.Values{4: {"n:1"}}, a.View().Values, "values")
}

// decrypter that holds back one ciphertext
type delayedDecrypter struct {
	asset.Decrypter
	slow  []byte
	delay time.Duration
}

func (d *delayedDecrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	if bytes.Equal(ciphertext, d.slow) {
		time.Sleep(d.delay)
	}
	return d.Decrypter.Decrypt(ciphertext)
}

func TestDestroyedBeforeCreatedCommits(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	created := sealed(t, f.keyPair, "spent", 5, 1, note.Created)
	destroyed := created
	destroyed.BlockNumber = 2
	destroyed.Status = note.Destroyed
	f.rawNotes.push(created, sealed(t, f.keyPair, "kept", 4, 1, note.Created), destroyed)

	f.deps.Decrypter = &delayedDecrypter{
		Decrypter: f.deps.Decrypter,
		slow:      created.Metadata,
		delay:     100 * time.Millisecond,
	}

	// the created note and the destroyed note decrypt in separate processes
	a := asset.New(assetId, nil, f.deps, testConfiguration)
	defer a.Close()

	wait(t, a.StartSync())

	assert.Equal(t, uint64(4), a.Balance(), "destroyed note not restored")
	assert.Equal(t, uint64(2), a.LastSynced().BlockNumber, "last synced")
	view := a.View()
	assert.Equal(t, []uint64{4}, view.SortedValues(), "values")
	assert.Equal(t, view.Values.Balance(), view.Balance, "balance invariant")
	assert.Equal(t, 1, a.Summary().Size, "size")

	// the tombstone ends with the round
	spent := note.NewKey(0)
	if spent == view.Values[4][0] {
		spent = note.NewKey(1)
	}
	a.AddNoteValue(5, spent)
	assert.Equal(t, uint64(9), a.Balance(), "later add of the spent key")
}

func TestWriteBarrier(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)

	cfg := testConfiguration
	cfg.SaveDelay = time.Minute

	a := asset.New(assetId, nil, f.deps, cfg)
	defer a.Close()

	a.Lock()
	assert.True(t, a.Locked(), "locked")

	a.AddNoteValue(10, "n:1")
	a.AddNoteValue(3, "n:2")
	a.RemoveNoteValue(10, "n:1")
	assert.Equal(t, uint64(0), a.Balance(), "queued while locked")
	assert.True(t, a.Busy(), "actions pending")

	a.Unlock()
	assert.False(t, a.Locked(), "unlocked")
	assert.Equal(t, uint64(3), a.Balance(), "applied in order")
	assert.Equal(t, note.Values{3: {"n:2"}}, a.View().Values, "values")
	assert.True(t, a.Modified(), "modified")
}

func TestStartSyncUnlocks(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	f.rawNotes.push(sealed(t, f.keyPair, "one", 1, 1, note.Created))

	a := asset.New(assetId, nil, f.deps, testConfiguration)
	defer a.Close()

	a.Lock()
	a.AddNoteValue(6, "n:100")

	wait(t, a.StartSync())
	assert.Equal(t, uint64(7), a.Balance(), "queued and synced notes")
	assert.False(t, a.Locked(), "unlocked")
}

func TestSaveDebounced(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	a := asset.New(assetId, nil, f.deps, testConfiguration)
	defer a.Close()

	a.AddNoteValue(2, "n:0")
	a.AddNoteValue(5, "n:1")

	waitFor(t, "save", func() bool { return !a.Modified() })
	waitFor(t, "balance event", func() bool { return 1 == f.events.count(asset.EventBalance) })

	summaries, err := asset.ReadSummaries(f.store)
	require.NoError(t, err, "read summaries")
	assert.Equal(t, note.Summary{Balance: 7, Size: 2}, summaries[assetId], "summary")

	values, err := asset.ReadValues(f.store, assetId)
	require.NoError(t, err, "read values")
	assert.Equal(t, note.Values{2: {"n:0"}, 5: {"n:1"}}, values, "values")
}

func TestStaleSnapshotAfterEviction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	f.cache = notecache.New(2, 10)
	f.cache.SetEvictHandler(func(id note.AssetId, values note.Values) error {
		return asset.WriteValues(f.store, id, values)
	})
	f.deps.Cache = f.cache

	cfg := testConfiguration
	cfg.SaveDelay = time.Minute

	a := asset.New(assetId, nil, f.deps, cfg)
	defer a.Close()

	a.AddNoteValue(5, "n:0")
	stale, _ := a.Snapshot()
	require.NotNil(t, stale, "snapshot")

	// a commit then an eviction land before the snapshot is written
	a.AddNoteValue(7, "n:1")
	f.cache.Add("other", note.Decrypted{Key: "n:9", Value: 1}, true)
	require.False(t, f.cache.Has(assetId), "evicted")

	written, err := asset.SaveSnapshots(f.cache, f.store, map[note.AssetId]*note.Snapshot{assetId: stale}, nil)
	require.NoError(t, err, "save stale snapshot")
	assert.Empty(t, written, "stale snapshot skipped")

	values, err := asset.ReadValues(f.store, assetId)
	require.NoError(t, err, "read values")
	assert.Equal(t, note.Values{5: {"n:0"}, 7: {"n:1"}}, values, "evicted values kept")

	current, sequence := a.Snapshot()
	require.NotNil(t, current, "snapshot from store")
	assert.Equal(t, values, current.Values, "snapshot of evicted asset")

	written, err = asset.SaveSnapshots(f.cache, f.store, map[note.AssetId]*note.Snapshot{assetId: current}, nil)
	require.NoError(t, err, "save current snapshot")
	assert.Equal(t, []note.AssetId{assetId}, written, "current snapshot written")
	a.MarkSaved(sequence)
	assert.False(t, a.Modified(), "saved")

	summaries, err := asset.ReadSummaries(f.store)
	require.NoError(t, err, "read summaries")
	assert.Equal(t, uint64(12), summaries[assetId].Balance, "summary balance")

	view := a.View()
	assert.Equal(t, view.Values.Balance(), view.Balance, "balance invariant after reload")
}

func TestRestoreFromStore(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)

	snapshot := &note.Snapshot{
		Balance:    7,
		LastSynced: note.Cursor{BlockNumber: 4, Key: "n:1"},
		Size:       2,
		Values:     note.Values{3: {"n:0"}, 4: {"n:1"}},
	}
	err := asset.WriteSnapshots(f.store, map[note.AssetId]*note.Snapshot{assetId: snapshot}, []note.AssetId{assetId})
	require.NoError(t, err, "write snapshot")

	priority, err := asset.ReadPriority(f.store)
	require.NoError(t, err, "read priority")
	assert.Equal(t, []note.AssetId{assetId}, priority, "priority")

	summaries, err := asset.ReadSummaries(f.store)
	require.NoError(t, err, "read summaries")
	summary := summaries[assetId]

	a := asset.New(assetId, &summary, f.deps, testConfiguration)
	defer a.Close()

	assert.False(t, f.cache.Has(assetId), "not resident")
	wait(t, a.StartSync())

	assert.True(t, f.cache.Has(assetId), "restored")
	assert.Equal(t, uint64(7), a.Balance(), "balance")
	assert.Equal(t, snapshot.Values, a.View().Values, "values")
	assert.Equal(t, snapshot.LastSynced, f.rawNotes.lastSynced, "cursor handed to raw notes")
}

func TestResync(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)

	spent := sealed(t, f.keyPair, "spent", 9, 2, note.Created)
	destroyed := spent
	destroyed.BlockNumber = 4
	destroyed.Status = note.Destroyed

	records := []note.Record{
		sealed(t, f.keyPair, "a", 1, 1, note.Created),
		spent,
		sealed(t, f.keyPair, "b", 3, 2, note.Created),
		destroyed,
	}

	noteStore := mocks.NewMockNoteStore(ctl)
	noteStore.EXPECT().FetchNotes(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, q note.Query) ([]note.Record, error) {
			assert.Equal(t, assetId, q.Asset, "asset query")
			page := []note.Record{}
			for _, r := range records {
				if r.BlockNumber >= q.FromBlockNumber && len(page) < q.Count {
					page = append(page, r)
				}
			}
			return page, nil
		}).MinTimes(1)
	f.deps.NoteStore = noteStore

	cfg := testConfiguration
	cfg.NotesPerBatch = 2

	a := asset.New(assetId, nil, f.deps, cfg)
	defer a.Close()

	// an optimistic local note is kept
	a.AddNoteValue(20, "n:50")

	err := a.Resync(context.Background())
	require.NoError(t, err, "resync")

	assert.Equal(t, uint64(24), a.Balance(), "balance")
	assert.Equal(t, uint64(4), a.LastSynced().BlockNumber, "last synced")
	view := a.View()
	assert.Equal(t, view.Values.Balance(), view.Balance, "balance invariant")
	assert.Equal(t, []uint64{1, 3, 20}, view.SortedValues(), "values")
}

// decrypter that records its concurrency
type slowDecrypter struct {
	asset.Decrypter
	active  int32
	maximum int32
}

func (d *slowDecrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	n := atomic.AddInt32(&d.active, 1)
	for {
		m := atomic.LoadInt32(&d.maximum)
		if n <= m || atomic.CompareAndSwapInt32(&d.maximum, m, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	atomic.AddInt32(&d.active, -1)
	return d.Decrypter.Decrypt(ciphertext)
}

func TestProcessLimit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	decrypter := &slowDecrypter{Decrypter: f.deps.Decrypter}
	f.deps.Decrypter = decrypter

	total := uint64(0)
	for i := uint64(1); i <= 20; i += 1 {
		f.rawNotes.push(sealed(t, f.keyPair, fmt.Sprintf("note-%d", i), i, i, note.Created))
		total += i
	}

	cfg := testConfiguration
	cfg.NotesPerBatch = 10
	cfg.NotesPerDecryptionBatch = 1

	a := asset.New(assetId, nil, f.deps, cfg)
	defer a.Close()

	wait(t, a.StartSync())

	assert.Equal(t, total, a.Balance(), "balance")
	assert.True(t, atomic.LoadInt32(&decrypter.maximum) <= int32(cfg.MaxProcesses), "process limit")

	active, pending := a.Processes()
	assert.Equal(t, 0, active, "no active processes")
	assert.Equal(t, 0, pending, "no pending processes")
}

func TestStoreErrorKeepsModified(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)

	failed := make(chan struct{})
	store := mocks.NewMockStore(ctl)
	store.EXPECT().Lock(asset.SummaryKey, gomock.Any()).DoAndReturn(
		func(key string, fn func() error) error {
			close(failed)
			return fmt.Errorf("disk full")
		}).Times(1)
	f.deps.Store = store

	a := asset.New(assetId, nil, f.deps, testConfiguration)

	a.AddNoteValue(2, "n:0")
	wait(t, failed)

	// allow the save to finish reporting
	time.Sleep(10 * time.Millisecond)
	a.Close()

	assert.True(t, a.Modified(), "still modified")
	assert.Equal(t, 0, f.events.count(asset.EventBalance), "no balance event")
}

func TestClosedAsset(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	a := asset.New(assetId, nil, f.deps, testConfiguration)
	a.Close()
	a.Close()

	wait(t, a.StartSync())
	assert.False(t, a.Synced(), "never synced")
}
