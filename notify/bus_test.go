// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notify_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/messagebus"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/notify"
)

var _ asset.Notifier = &notify.Bus{}

func TestSubscribe(t *testing.T) {
	b := notify.New()

	var mu sync.Mutex
	received := []note.AssetId{}
	h := func(assetId note.AssetId, payload interface{}) {
		mu.Lock()
		received = append(received, assetId)
		mu.Unlock()
	}

	err := b.Subscribe(asset.EventBalance, h)
	require.NoError(t, err, "subscribe")

	b.Notify(asset.EventBalance, "a1", note.Summary{Balance: 5})
	b.Notify(asset.EventSynced, "a2", nil)
	b.Notify(asset.EventBalance, "a3", nil)
	b.Wait()

	mu.Lock()
	assert.Equal(t, []note.AssetId{"a1", "a3"}, received, "balance events in order")
	mu.Unlock()
}

func TestForward(t *testing.T) {
	b := notify.New()
	queue := messagebus.NewBroadcast(asset.EventBalance)
	listener := queue.Chan(10)

	err := b.Forward(queue, asset.EventBalance, asset.EventSynced)
	require.NoError(t, err, "forward")

	summary := note.Summary{Balance: 9}
	b.Notify(asset.EventBalance, "a1", summary)
	b.Wait()
	b.Notify(asset.EventSynced, "a1", summary)
	b.Wait()

	m := <-listener
	assert.Equal(t, asset.EventBalance, m.Event, "first event")
	assert.Equal(t, note.AssetId("a1"), m.Asset, "asset")
	assert.Equal(t, summary, m.Payload, "payload")

	m = <-listener
	assert.Equal(t, asset.EventSynced, m.Event, "second event")
}
