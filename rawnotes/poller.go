// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rawnotes

import (
	"context"
	"time"
)

// Run - background polling of the head window
//
// a full page is followed immediately by the next, subject to the
// fetch rate limit, otherwise the store is polled every sync interval
func (m *Manager) Run(args interface{}, shutdown <-chan struct{}) {

	m.log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	timer := time.NewTimer(m.syncInterval)
	defer timer.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-m.wake:
		case <-timer.C:
		}

	paging:
		for {
			if err := m.limiter.Wait(ctx); nil != err {
				break loop
			}
			more, err := m.FetchHeadNotes(ctx)
			if nil != err || !more {
				break paging
			}
			select {
			case <-shutdown:
				break loop
			default:
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(m.syncInterval)
	}

	m.log.Info("shutting down…")
}
