// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notecache

import (
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/priority"
)

// Contents - persisted form of the cache
type Contents struct {
	Summary  map[note.AssetId]note.Summary `json:"assetSummary,omitempty"`
	Notes    map[note.AssetId]note.Values  `json:"assetNotes"`
	Priority []note.AssetId                `json:"priority"`
}

// Export - dump buckets and priority ordering
func (c *Cache) Export() *Contents {
	c.Lock()
	defer c.Unlock()

	notes := make(map[note.AssetId]note.Values, len(c.entries))
	for id, e := range c.entries {
		notes[id] = e.values.Clone()
	}
	return &Contents{
		Notes:    notes,
		Priority: c.priority.List(),
	}
}

// Import - replace the cache contents from persisted data
//
// assets are admitted in priority order until the next one would
// exceed the note capacity or the asset limit, the first asset is
// always admitted, assets with no Notes entry are skipped while an
// empty entry is admitted to keep its place in the priority
//
// returns the admitted asset ids in priority order
func (c *Cache) Import(contents *Contents) []note.AssetId {
	c.Lock()
	defer c.Unlock()

	c.entries = make(map[note.AssetId]*entry)
	c.priority = priority.New()
	c.memoryUsage = 0

	if nil == contents {
		return nil
	}

	admitted := make([]note.AssetId, 0, len(contents.Priority))
	for _, id := range contents.Priority {
		values, ok := contents.Notes[id]
		if !ok || c.priority.Has(id) {
			continue
		}
		size := values.Count()
		if s, ok := contents.Summary[id]; ok && s.Size > size {
			size = s.Size
		}

		if 0 != len(admitted) && c.overCapacity(size, true) {
			c.log.Infof("import stopped at asset: %s  size: %d  usage: %d", id, size, c.memoryUsage)
			break
		}

		values = values.Clone()
		if nil == values {
			values = make(note.Values)
		}
		count := values.Count()
		c.entries[id] = &entry{
			values: values,
			size:   count,
		}
		c.priority.AddToBottom(id)
		c.memoryUsage += count
		admitted = append(admitted, id)
	}
	return admitted
}
