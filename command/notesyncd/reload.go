// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/configuration"
	"github.com/bitmark-inc/notesync/note"
)

type prioritySetter interface {
	SetPriority([]note.AssetId)
}

// re-applies the priority list whenever the configuration file is saved
type configWatcher struct {
	log      *logger.L
	fileName string
	watcher  *fsnotify.Watcher
	target   prioritySetter
	current  []note.AssetId
}

// only the priority key is read on reload
type reloadable struct {
	Priority []string `gluamapper:"priority"`
}

func newConfigWatcher(fileName string, target prioritySetter, current []string) (*configWatcher, error) {
	log := logger.New("watcher")

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	// editors often replace the file so watch its directory
	if err := watcher.Add(filepath.Dir(fileName)); nil != err {
		log.Errorf("watch: %q error: %s", fileName, err)
		watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		fileName: fileName,
		watcher:  watcher,
		target:   target,
		current:  toAssetIds(current),
	}, nil
}

// Run - reload on change until shutdown
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("watching: %q", w.fileName)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.fileName {
				continue loop
			}
			if 0 == event.Op&(fsnotify.Write|fsnotify.Create) {
				continue loop
			}
			log.Debugf("file event: %v", event)
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watch error: %s", err)
		}
	}

	w.watcher.Close()
	log.Info("stopped")
}

// returns true if a new priority was applied
func (w *configWatcher) reload() bool {
	options := &reloadable{}
	err := configuration.ParseConfigurationFile(w.fileName, options)
	if nil != err {
		w.log.Errorf("reload: %q error: %s", w.fileName, err)
		return false
	}

	priority := toAssetIds(options.Priority)
	if equalIds(priority, w.current) {
		return false
	}

	w.log.Infof("priority changed: %v", priority)
	w.current = priority
	w.target.SetPriority(priority)
	return true
}

func toAssetIds(assets []string) []note.AssetId {
	ids := make([]note.AssetId, 0, len(assets))
	for _, a := range assets {
		if "" != a {
			ids = append(ids, note.AssetId(a))
		}
	}
	return ids
}

func equalIds(a []note.AssetId, b []note.AssetId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
