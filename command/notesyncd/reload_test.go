// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/rpc/fixtures"
)

type prioritySink chan []note.AssetId

func (s prioritySink) SetPriority(ids []note.AssetId) {
	s <- ids
}

func TestReload(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	fileName, cleanup := setupDirectory(t, `return { priority = { "gold" } }`)
	defer cleanup()

	sink := make(prioritySink, 5)
	w, err := newConfigWatcher(fileName, sink, []string{"gold"})
	require.NoError(t, err, "new watcher")
	defer w.watcher.Close()

	assert.False(t, w.reload(), "unchanged priority")
	assert.Empty(t, sink, "nothing applied")

	err = ioutil.WriteFile(fileName, []byte(`return { priority = { "silver", "", "gold" } }`), 0600)
	require.NoError(t, err, "rewrite")

	assert.True(t, w.reload(), "changed priority")
	assert.Equal(t, []note.AssetId{"silver", "gold"}, <-sink, "applied priority")

	err = ioutil.WriteFile(fileName, []byte(`return {`), 0600)
	require.NoError(t, err, "break file")
	assert.False(t, w.reload(), "bad file keeps priority")
	assert.Equal(t, []note.AssetId{"silver", "gold"}, w.current, "current kept")
}

func TestWatcherRun(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	fileName, cleanup := setupDirectory(t, `return { }`)
	defer cleanup()

	sink := make(prioritySink, 5)
	w, err := newConfigWatcher(fileName, sink, nil)
	require.NoError(t, err, "new watcher")

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		w.Run(nil, shutdown)
		close(done)
	}()

	err = ioutil.WriteFile(fileName, []byte(`return { priority = { "copper" } }`), 0600)
	require.NoError(t, err, "rewrite")

	select {
	case ids := <-sink:
		assert.Equal(t, []note.AssetId{"copper"}, ids, "priority from file event")
	case <-time.After(5 * time.Second):
		t.Error("no priority change seen")
	}

	close(shutdown)
	<-done
}
