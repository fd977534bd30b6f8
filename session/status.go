// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"github.com/bitmark-inc/notesync/note"
)

// Status - counters describing the pipeline
type Status struct {
	Owner        note.Address `json:"owner"`
	Assets       int          `json:"assets"`
	Active       int          `json:"active"`
	Pending      int          `json:"pending"`
	CachedAssets int          `json:"cachedAssets"`
	CachedNotes  int          `json:"cachedNotes"`
	HeadNotes    int          `json:"headNotes"`
	TailNotes    int          `json:"tailNotes"`
	HeadBlock    uint64       `json:"headBlock"`
	Decrypted    uint64       `json:"decrypted"`
	Failed       uint64       `json:"failed"`
}

// Status - a snapshot of the counters
func (s *Session) Status() Status {
	active, pending := s.manager.Counts()
	heads, tails := s.rawNotes.Counts()

	status := Status{
		Owner:        s.owner,
		Active:       active,
		Pending:      pending,
		CachedAssets: s.cache.Assets(),
		CachedNotes:  s.cache.MemoryUsage(),
		HeadNotes:    heads,
		TailNotes:    tails,
		HeadBlock:    s.rawNotes.MinHeadBlockNumber(),
	}

	for _, id := range s.manager.Assets() {
		decrypted, failed := s.manager.Asset(id).Counts()
		status.Assets += 1
		status.Decrypted += decrypted
		status.Failed += failed
	}
	return status
}
