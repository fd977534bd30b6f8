// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"context"

	"github.com/bitmark-inc/notesync/note"
)

// Cache - per asset note buckets shared by all assets
type Cache interface {
	Add(assetId note.AssetId, d note.Decrypted, increasePriority bool) bool
	Remove(assetId note.AssetId, d note.Decrypted, increasePriority bool) bool
	Set(assetId note.AssetId, values note.Values, increasePriority bool)
	Get(assetId note.AssetId, increasePriority bool) (note.Values, bool)
	Peek(assetId note.AssetId) (note.Values, uint64, bool)
	Has(assetId note.AssetId) bool
	Persist(versions map[note.AssetId]uint64, write func(current map[note.AssetId]bool) error) error
}

// RawNotes - source of undecrypted notes
type RawNotes interface {
	SetAssetLastSynced(assetId note.AssetId, lastSynced note.Cursor)
	FetchAndRemove(ctx context.Context, assetId note.AssetId, count int) ([]note.Record, error)
}

// NoteStore - paginated note store used for a full resync
type NoteStore interface {
	FetchNotes(ctx context.Context, q note.Query) ([]note.Record, error)
}

// KeyResolver - canonical key of a note, the same hash always gives
// the same key
type KeyResolver interface {
	Resolve(owner note.Address, hash note.Hash) (note.Key, error)
}

// Decrypter - recovers note values from viewing key ciphertext
type Decrypter interface {
	Decrypt(ciphertext []byte) ([]byte, error)
	Value(viewingKey []byte) (uint64, error)
}

// Store - persisted blobs
type Store interface {
	Get(key string) ([]byte, error)
	Set(items map[string][]byte) error
	Lock(key string, fn func() error) error
}

// Notifier - fire and forget subscriber notification
type Notifier interface {
	Notify(event string, assetId note.AssetId, payload interface{})
}

// event names
const (
	EventBalance = "balance"
	EventSynced  = "synced"
)
