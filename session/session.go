// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/background"
	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/manager"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/notecache"
	"github.com/bitmark-inc/notesync/rawnotes"
	"github.com/bitmark-inc/notesync/storage"
)

// Configuration - everything needed for one owner on one network
type Configuration struct {
	Network       string
	Owner         note.Address
	MaximumNotes  int
	MaximumAssets int
	RawNotes      rawnotes.Configuration
	Manager       manager.Configuration
}

// PickOptions - constraints on a note selection
type PickOptions struct {
	NumberOfNotes int
	AllowLess     bool
}

// Session - the note pipeline for one owner
type Session struct {
	sync.Mutex

	log      *logger.L
	owner    note.Address
	database *storage.Database
	cache    *notecache.Cache
	rawNotes *rawnotes.Manager
	manager  *manager.Manager

	processes *background.T
	started   bool
	stopped   bool
}

// New - assemble the pipeline, nothing runs until Start
func New(database *storage.Database, decrypter asset.Decrypter, notifier asset.Notifier, conf Configuration) (*Session, error) {
	if "" == conf.Owner {
		return nil, fault.ErrInvalidOwner
	}

	cache := notecache.New(conf.MaximumNotes, conf.MaximumAssets)
	rawNotes := rawnotes.New(conf.Owner, database, conf.RawNotes)

	deps := asset.Dependencies{
		Owner:     conf.Owner,
		NoteStore: database,
		Keys:      database.NewKeyResolver(),
		Decrypter: decrypter,
		Store:     database.NewStore(conf.Network, string(conf.Owner)),
		Notifier:  notifier,
	}
	m := manager.New(cache, rawNotes, deps, conf.Manager)
	rawNotes.SetHandler(m.HandleNewRawNotes)

	return &Session{
		log:      logger.New("session"),
		owner:    conf.Owner,
		database: database,
		cache:    cache,
		rawNotes: rawNotes,
		manager:  m,
	}, nil
}

// Start - restore persisted state and begin syncing
func (s *Session) Start(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.started {
		return fault.ErrAlreadyInitialised
	}

	err := s.manager.Init(ctx)
	if nil != err {
		s.log.Errorf("init error: %s", err)
		return err
	}

	s.processes = background.Start(background.Processes{s.rawNotes}, nil)
	s.started = true

	s.log.Infof("started owner: %s", s.owner)
	return nil
}

// Stop - persist every modified asset and stop syncing
func (s *Session) Stop() {
	s.Lock()
	defer s.Unlock()

	if !s.started || s.stopped {
		return
	}
	s.stopped = true

	if err := s.manager.SaveAll(); nil != err {
		s.log.Errorf("save on stop error: %s", err)
	}
	s.processes.Stop()
	s.rawNotes.Stop()
	s.manager.Close()

	s.log.Info("stopped")
}

// Owner - the session owner
func (s *Session) Owner() note.Address {
	return s.owner
}

// Manager - the asset manager of the session
func (s *Session) Manager() *manager.Manager {
	return s.manager
}

// Balance - best effort balance, zero for an unknown asset
func (s *Session) Balance(owner note.Address, assetId note.AssetId) uint64 {
	if !s.isOwner(owner, "balance") {
		return 0
	}
	if !s.manager.Has(assetId) {
		return 0
	}
	return s.manager.Asset(assetId).Balance()
}

// Pick - select keys of notes summing to at least minSum once the asset
// is synced
func (s *Session) Pick(ctx context.Context, owner note.Address, assetId note.AssetId, minSum uint64, options PickOptions) ([]note.Key, error) {
	if !s.isOwner(owner, "pick") {
		return []note.Key{}, nil
	}

	if s.isStopped() {
		return nil, fault.ErrSessionClosed
	}

	views := make(chan *note.View, 1)
	s.manager.EnsureSynced(assetId, func(view *note.View) {
		views <- view
	})

	select {
	case view := <-views:
		return note.Pick(view.Values, minSum, options.NumberOfNotes, options.AllowLess)
	case <-ctx.Done():
		s.log.Warnf("asset: %s  pick abandoned: %s", assetId, ctx.Err())
		return nil, ctx.Err()
	}
}

// AddNoteValue - record a note ahead of the chain
func (s *Session) AddNoteValue(owner note.Address, assetId note.AssetId, value uint64, key note.Key) {
	if !s.isOwner(owner, "add note value") {
		return
	}
	s.manager.Asset(assetId).AddNoteValue(value, key)
}

// RemoveNoteValue - drop a note ahead of the chain
func (s *Session) RemoveNoteValue(owner note.Address, assetId note.AssetId, value uint64, key note.Key) {
	if !s.isOwner(owner, "remove note value") {
		return
	}
	s.manager.Asset(assetId).RemoveNoteValue(value, key)
}

// SyncAsset - rebuild one asset from the note store
func (s *Session) SyncAsset(ctx context.Context, owner note.Address, assetId note.AssetId) error {
	if !s.isOwner(owner, "sync asset") {
		return nil
	}
	return s.manager.SyncAsset(ctx, assetId)
}

// SetPriority - replace the explicit priority order
func (s *Session) SetPriority(ids []note.AssetId) {
	s.manager.HandleCallbackPriorityChanged(ids)
}

// Submit - store live notes and queue those that are new
//
// returns the number of records not seen before
func (s *Session) Submit(records []note.Record) (int, error) {
	added, err := s.database.PutNotes(records)
	if nil != err {
		s.log.Errorf("submit error: %s", err)
		return 0, err
	}
	if 0 != len(added) {
		s.rawNotes.AppendTails(added)
	}
	s.log.Debugf("submitted: %d  new: %d", len(records), len(added))
	return len(added), nil
}

func (s *Session) isStopped() bool {
	s.Lock()
	defer s.Unlock()
	return s.stopped
}

func (s *Session) isOwner(owner note.Address, operation string) bool {
	if owner == s.owner {
		return true
	}
	s.log.Warnf("%s: owner: %s  does not match session owner: %s", operation, owner, s.owner)
	return false
}
