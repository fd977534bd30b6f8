// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"context"

	"github.com/google/uuid"

	"github.com/bitmark-inc/notesync/note"
)

type processFunc func(ctx context.Context) error

type process struct {
	id   uuid.UUID
	name string
	run  processFunc
}

// StartSync - unlock and run a sync round
//
// returns a channel that is closed when the round completes, that is
// when no process is active or pending and the asset is unlocked, the
// same channel is returned until then
func (a *Asset) StartSync() <-chan struct{} {
	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return done
	}

	if nil == a.done {
		a.done = make(chan struct{})
	}
	done := a.done
	a.synced = false

	a.deps.RawNotes.SetAssetLastSynced(a.id, a.lastSynced)

	if 0 == len(a.pending) {
		if a.deps.Cache.Has(a.id) {
			a.addProcess("getRawNotes", a.getRawNotes)
		} else {
			a.addProcess("restore", a.restore)
		}
	}

	synced := a.unlock()
	a.mu.Unlock()

	if synced {
		a.notify(EventSynced, a.Summary())
	}
	return done
}

// queue a process and start it if there is capacity
//
// must hold lock
func (a *Asset) addProcess(name string, run processFunc) {
	p := &process{
		id:   uuid.New(),
		name: name,
		run:  run,
	}
	a.pending = append(a.pending, p)
	a.runNextProcess()
}

// start pending processes in order while there is capacity
//
// must hold lock
func (a *Asset) runNextProcess() {
	for !a.locked && !a.closed && len(a.active) < a.conf.MaxProcesses && 0 != len(a.pending) {
		p := a.pending[0]
		a.pending[0] = nil
		a.pending = a.pending[1:]
		a.active[p.id] = p
		go a.runProcess(p)
	}
}

func (a *Asset) runProcess(p *process) {
	a.log.Debugf("asset: %s  process: %s  id: %s  start", a.id, p.name, p.id)

	err := p.run(a.ctx)
	if nil != err {
		a.log.Errorf("asset: %s  process: %s  id: %s  error: %s", a.id, p.name, p.id, err)
	}

	a.mu.Lock()
	delete(a.active, p.id)
	a.runNextProcess()
	synced := a.checkDone()
	a.mu.Unlock()

	if synced {
		a.log.Infof("asset: %s  synced  balance: %d  last synced: %s", a.id, a.Balance(), a.LastSynced())
		a.notify(EventSynced, a.Summary())
	}
}

// close the round channel when all work is finished
//
// must hold lock
func (a *Asset) checkDone() bool {
	if nil == a.done || a.locked || a.busy() {
		return false
	}
	a.synced = true
	close(a.done)
	a.done = nil
	if 0 != len(a.tombstones) {
		a.log.Debugf("asset: %s  discard: %d tombstones", a.id, len(a.tombstones))
		a.tombstones = make(map[note.Key]struct{})
	}
	if a.modified {
		a.scheduleSave()
	}
	return true
}
