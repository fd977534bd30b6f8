// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session_test

import (
	"context"
	"crypto/rand"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/session"
	"github.com/bitmark-inc/notesync/storage"
	"github.com/bitmark-inc/notesync/viewingkey"
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

const (
	owner = note.Address("owner-one")
	gold  = note.AssetId("gold")
)

type environment struct {
	dir      string
	database *storage.Database
	keyPair  *viewingkey.KeyPair
	events   *eventLog
}

func newEnvironment(t *testing.T) *environment {
	dir, err := ioutil.TempDir("", "notesync-session")
	require.NoError(t, err, "temp dir")

	database, err := storage.Open(filepath.Join(dir, "test.leveldb"), storage.ReadWrite)
	if nil != err {
		_ = os.RemoveAll(dir)
		t.Fatalf("storage open error: %s", err)
	}

	public, private, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err, "generate key")

	return &environment{
		dir:      dir,
		database: database,
		keyPair: &viewingkey.KeyPair{
			PublicKey:  public,
			PrivateKey: private,
		},
		events: &eventLog{},
	}
}

func (e *environment) close() {
	e.database.Close()
	_ = os.RemoveAll(e.dir)
}

func (e *environment) session(t *testing.T) *session.Session {
	s, err := session.New(e.database, viewingkey.NewDecrypter(e.keyPair), e.events, session.Configuration{
		Network:       "testing",
		Owner:         owner,
		MaximumNotes:  1000,
		MaximumAssets: 10,
	})
	require.NoError(t, err, "new session")
	require.NoError(t, s.Start(context.Background()), "start session")
	return s
}

func (e *environment) sealed(t *testing.T, seed string, value uint64, blockNumber uint64) note.Record {
	viewingKey, err := viewingkey.NewViewingKey(value)
	require.NoError(t, err, "viewing key")
	metadata, err := viewingkey.Seal(e.keyPair.PublicKey, viewingKey)
	require.NoError(t, err, "seal")
	return note.Record{
		Hash:        note.NewHash([]byte(seed)),
		Asset:       gold,
		Owner:       owner,
		BlockNumber: blockNumber,
		Status:      note.Created,
		Metadata:    metadata,
	}
}

// records notifications
type eventLog struct {
	sync.Mutex
	events []string
}

func (l *eventLog) Notify(event string, assetId note.AssetId, payload interface{}) {
	l.Lock()
	l.events = append(l.events, event)
	l.Unlock()
}

func (l *eventLog) count(event string) int {
	l.Lock()
	defer l.Unlock()
	n := 0
	for _, e := range l.events {
		if e == event {
			n += 1
		}
	}
	return n
}

var _ asset.Notifier = &eventLog{}

func waitFor(t *testing.T, what string, f func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for: %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
