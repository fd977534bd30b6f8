// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager_test

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/manager"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/util"
)

const (
	dir = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

const owner = note.Address("owner-one")

// note store held in memory, ordered by block
type noteStore struct {
	sync.Mutex
	records []note.Record
}

func (s *noteStore) add(assetId note.AssetId, blockNumber uint64, value uint64) note.Record {
	s.Lock()
	defer s.Unlock()
	r := note.Record{
		Hash:        note.NewHash([]byte(fmt.Sprintf("%s-%d-%d-%d", assetId, blockNumber, value, len(s.records)))),
		Asset:       assetId,
		Owner:       owner,
		BlockNumber: blockNumber,
		Status:      note.Created,
		Metadata:    util.ToVarint64(value),
	}
	s.records = append(s.records, r)
	sort.SliceStable(s.records, func(i, j int) bool { return s.records[i].BlockNumber < s.records[j].BlockNumber })
	return r
}

func (s *noteStore) FetchNotes(ctx context.Context, q note.Query) ([]note.Record, error) {
	s.Lock()
	defer s.Unlock()
	result := []note.Record{}
	for _, r := range s.records {
		if len(result) >= q.Count {
			break
		}
		if r.Owner != q.Owner || r.BlockNumber < q.FromBlockNumber {
			continue
		}
		if 0 != q.ToBlockNumber && r.BlockNumber > q.ToBlockNumber {
			continue
		}
		if "" != q.Asset && r.Asset != q.Asset {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// persisted store held in memory
type memStore struct {
	mu    sync.Mutex
	lock  sync.Mutex
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{
		blobs: make(map[string][]byte),
	}
}

func (s *memStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[key], nil
}

func (s *memStore) Set(items map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range items {
		if nil == v {
			delete(s.blobs, k)
		} else {
			s.blobs[k] = v
		}
	}
	return nil
}

func (s *memStore) Lock(key string, fn func() error) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return fn()
}

// key per hash in order of first sight
type keyTable struct {
	sync.Mutex
	keys map[note.Hash]note.Key
}

func (k *keyTable) Resolve(owner note.Address, hash note.Hash) (note.Key, error) {
	k.Lock()
	defer k.Unlock()
	if nil == k.keys {
		k.keys = make(map[note.Hash]note.Key)
	}
	key, ok := k.keys[hash]
	if !ok {
		key = note.NewKey(uint64(len(k.keys)))
		k.keys[hash] = key
	}
	return key, nil
}

// metadata is the plain varint value
type plainDecrypter struct{}

func (plainDecrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	return ciphertext, nil
}

func (plainDecrypter) Value(viewingKey []byte) (uint64, error) {
	value, n := util.FromVarint64(viewingKey)
	if 0 == n {
		return 0, fault.ErrInvalidViewingKey
	}
	return value, nil
}

// blocks every decryption until opened
type gateDecrypter struct {
	plainDecrypter
	gate chan struct{}
}

func (d *gateDecrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	<-d.gate
	return ciphertext, nil
}

func waitSynced(t *testing.T, m *manager.Manager, assetId note.AssetId) *note.View {
	views := make(chan *note.View, 1)
	m.EnsureSynced(assetId, func(view *note.View) {
		views <- view
	})
	select {
	case view := <-views:
		return view
	case <-time.After(5 * time.Second):
		t.Fatalf("asset: %s  not synced", assetId)
	}
	return nil
}

func waitFor(t *testing.T, what string, f func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for: %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
