// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notecache_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/notecache"
)

func TestBasicSync(t *testing.T) {
	c := notecache.New(100, 10)
	c.Set("asset", note.Values{0: {"n:0", "n:1"}, 2: {"n:2"}}, false)

	ok := c.Add("asset", note.Decrypted{Key: "n:3", Value: 2}, false)
	assert.True(t, ok, "add")

	values, ok := c.Get("asset", false)
	assert.True(t, ok, "get")
	assert.Equal(t, note.Values{0: {"n:0", "n:1"}, 2: {"n:2", "n:3"}}, values)
	assert.Equal(t, 4, c.Size("asset"), "size")
	assert.Equal(t, 4, c.MemoryUsage(), "usage")
}

func TestIdempotentAdd(t *testing.T) {
	c := notecache.New(100, 10)
	d := note.Decrypted{Key: "n:7", Value: 12}

	assert.True(t, c.Add("asset", d, false), "first")
	assert.False(t, c.Add("asset", d, false), "second")
	assert.Equal(t, 1, c.Size("asset"), "size")

	assert.False(t, c.Remove("asset", note.Decrypted{Key: "n:8", Value: 12}, false), "absent key")
	assert.False(t, c.Remove("asset", note.Decrypted{Key: "n:7", Value: 13}, false), "absent bucket")
	assert.False(t, c.Remove("other", d, false), "absent asset")
	assert.True(t, c.Remove("asset", d, false), "remove")
	assert.Equal(t, 0, c.Size("asset"), "size after remove")
	assert.Equal(t, 0, c.MemoryUsage(), "usage after remove")
}

func TestGetReturnsCopy(t *testing.T) {
	c := notecache.New(100, 10)
	c.Add("asset", note.Decrypted{Key: "n:0", Value: 1}, false)

	values, _ := c.Get("asset", false)
	values.Add(5, "n:1")

	assert.Equal(t, 1, c.Size("asset"))
	again, _ := c.Get("asset", false)
	assert.Equal(t, note.Values{1: {"n:0"}}, again)

	_, ok := c.Get("missing", false)
	assert.False(t, ok)
}

func TestPriorityEviction(t *testing.T) {
	c := notecache.New(3, 10)

	evictions := map[note.AssetId]note.Values{}
	c.SetEvictHandler(func(id note.AssetId, values note.Values) error {
		evictions[id] = values
		return nil
	})

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Add("b", note.Decrypted{Key: "n:1", Value: 1}, false)
	c.Add("c", note.Decrypted{Key: "n:2", Value: 1}, false)
	assert.Equal(t, []note.AssetId{"a", "b", "c"}, c.Priority(), "new assets enter at bottom")

	// c is lowest but is the target so the next lowest goes
	c.Add("c", note.Decrypted{Key: "n:3", Value: 1}, false)

	assert.True(t, c.Has("a"), "a kept")
	assert.False(t, c.Has("b"), "b evicted")
	assert.True(t, c.Has("c"), "c kept")
	assert.Equal(t, 2, c.Size("c"))
	assert.Equal(t, 3, c.MemoryUsage())
	assert.Equal(t, map[note.AssetId]note.Values{"b": {1: {"n:1"}}}, evictions)
}

func TestIncreasePriority(t *testing.T) {
	c := notecache.New(2, 10)

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Add("b", note.Decrypted{Key: "n:1", Value: 1}, false)
	c.Get("b", true)
	assert.Equal(t, []note.AssetId{"b", "a"}, c.Priority())

	c.Add("c", note.Decrypted{Key: "n:2", Value: 1}, true)
	assert.Equal(t, []note.AssetId{"c", "b"}, c.Priority(), "a evicted, c on top")
}

func TestAssetLimit(t *testing.T) {
	c := notecache.New(100, 2)

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Add("b", note.Decrypted{Key: "n:1", Value: 1}, false)
	c.Add("c", note.Decrypted{Key: "n:2", Value: 1}, false)

	assert.Equal(t, 2, c.Assets())
	assert.False(t, c.Has("b"), "lowest evicted")
	assert.Equal(t, []note.AssetId{"a", "c"}, c.Priority())
}

func TestSingleAssetOverCapacity(t *testing.T) {
	c := notecache.New(2, 10)

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Set("b", note.Values{1: {"n:1", "n:2", "n:3"}}, false)

	assert.False(t, c.Has("a"), "other asset evicted")
	assert.Equal(t, 3, c.Size("b"), "written asset kept whole")
	assert.Equal(t, 3, c.MemoryUsage())

	c.Add("b", note.Decrypted{Key: "n:4", Value: 1}, false)
	assert.Equal(t, 4, c.Size("b"), "alone it may grow")
}

func TestSetShrinks(t *testing.T) {
	c := notecache.New(10, 10)
	c.Set("a", note.Values{1: {"n:0", "n:1"}, 2: {"n:2"}}, false)
	c.Set("a", note.Values{1: {"n:0"}}, false)
	assert.Equal(t, 1, c.Size("a"))
	assert.Equal(t, 1, c.MemoryUsage())

	assert.True(t, c.Delete("a"))
	assert.Equal(t, 0, c.MemoryUsage())
	assert.False(t, c.Delete("a"))
}

// random operations never leave more notes than capacity unless a
// single asset holds them all
func TestCapacityInvariant(t *testing.T) {
	const capacity = 20
	c := notecache.New(capacity, 5)
	r := rand.New(rand.NewSource(12345))

	for i := 0; i < 2000; i += 1 {
		id := note.AssetId(fmt.Sprintf("asset-%d", r.Intn(8)))
		switch r.Intn(4) {
		case 0, 1:
			c.Add(id, note.Decrypted{Key: note.NewKey(uint64(r.Intn(50))), Value: uint64(r.Intn(5))}, 0 == r.Intn(3))
		case 2:
			c.Remove(id, note.Decrypted{Key: note.NewKey(uint64(r.Intn(50))), Value: uint64(r.Intn(5))}, false)
		case 3:
			values := note.Values{}
			for j := r.Intn(8); j > 0; j -= 1 {
				values.Add(uint64(r.Intn(5)), note.NewKey(uint64(100+j)))
			}
			c.Set(id, values, 0 == r.Intn(2))
		}

		total := 0
		for _, a := range c.Priority() {
			total += c.Size(a)
		}
		assert.Equal(t, total, c.MemoryUsage(), "%d: usage", i)
		if total > capacity {
			assert.Equal(t, 1, c.Assets(), "%d: over capacity with more than one asset", i)
		}
		assert.True(t, c.Assets() <= 5, "%d: asset limit", i)
	}
}

func TestExportImport(t *testing.T) {
	c := notecache.New(10, 10)
	c.Set("a", note.Values{1: {"n:0", "n:1"}}, false)
	c.Set("b", note.Values{2: {"n:2"}}, true)

	contents := c.Export()
	assert.Equal(t, []note.AssetId{"b", "a"}, contents.Priority)

	d := notecache.New(10, 10)
	admitted := d.Import(contents)
	assert.Equal(t, []note.AssetId{"b", "a"}, admitted)
	assert.Equal(t, 3, d.MemoryUsage())
	values, _ := d.Get("a", false)
	assert.Equal(t, note.Values{1: {"n:0", "n:1"}}, values)
}

func TestImportBounds(t *testing.T) {
	contents := &notecache.Contents{
		Notes: map[note.AssetId]note.Values{
			"big":   {1: {"n:0", "n:1", "n:2", "n:3", "n:4"}},
			"small": {1: {"n:5"}},
			"other": {1: {"n:6"}},
		},
		Priority: []note.AssetId{"big", "small", "other"},
	}

	c := notecache.New(3, 10)
	admitted := c.Import(contents)
	assert.Equal(t, []note.AssetId{"big"}, admitted, "first admitted even when oversized")
	assert.Equal(t, 5, c.MemoryUsage())

	contents.Priority = []note.AssetId{"small", "other", "big"}
	c = notecache.New(3, 10)
	admitted = c.Import(contents)
	assert.Equal(t, []note.AssetId{"small", "other"}, admitted, "stops before exceeding")

	c = notecache.New(100, 1)
	admitted = c.Import(contents)
	assert.Equal(t, []note.AssetId{"small"}, admitted, "asset limit")
}

func TestReloadAfterEviction(t *testing.T) {
	c := notecache.New(2, 10)

	shelf := map[note.AssetId]note.Values{}
	c.SetEvictHandler(func(id note.AssetId, values note.Values) error {
		shelf[id] = values
		return nil
	})
	c.SetLoadHandler(func(id note.AssetId) note.Values {
		values := shelf[id]
		delete(shelf, id)
		return values
	})

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Add("a", note.Decrypted{Key: "n:1", Value: 2}, false)
	c.Add("b", note.Decrypted{Key: "n:2", Value: 3}, true)

	assert.False(t, c.Has("a"), "a evicted")
	assert.Equal(t, 2, shelf["a"].Count(), "a shelved")

	// a comes back whole and b makes way
	c.Add("a", note.Decrypted{Key: "n:3", Value: 4}, false)
	values, ok := c.Get("a", false)
	assert.True(t, ok, "a resident")
	assert.Equal(t, note.Values{1: {"n:0"}, 2: {"n:1"}, 4: {"n:3"}}, values, "a reloaded")
	assert.False(t, c.Has("b"), "b evicted")

	assert.False(t, c.Remove("c", note.Decrypted{Key: "n:9", Value: 1}, false), "nothing to reload")
	assert.False(t, c.Has("c"), "no entry created")
}

func TestEvictHandlerOutsideLock(t *testing.T) {
	c := notecache.New(1, 10)

	type seen struct {
		resident bool
		values   note.Values
		ok       bool
	}
	observed := []seen{}
	c.SetEvictHandler(func(id note.AssetId, values note.Values) error {
		// the handler may use the cache, and a reload finds the buckets
		// that are still being written
		pending, _, ok := c.Peek(id)
		observed = append(observed, seen{resident: c.Has(id), values: pending, ok: ok})
		return nil
	})

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Add("b", note.Decrypted{Key: "n:1", Value: 2}, false)

	assert.Equal(t, []seen{{resident: false, values: note.Values{1: {"n:0"}}, ok: true}}, observed, "observed from handler")

	_, _, ok := c.Peek("a")
	assert.False(t, ok, "written eviction is released")
}

func TestFailedEvictionKeepsBuckets(t *testing.T) {
	c := notecache.New(1, 10)
	c.SetEvictHandler(func(id note.AssetId, values note.Values) error {
		return fmt.Errorf("disk full")
	})
	c.SetLoadHandler(func(id note.AssetId) note.Values {
		return nil
	})

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Add("b", note.Decrypted{Key: "n:1", Value: 2}, false)
	assert.False(t, c.Has("a"), "a evicted")

	values, _, ok := c.Peek("a")
	assert.True(t, ok, "unwritten buckets kept")
	assert.Equal(t, note.Values{1: {"n:0"}}, values, "kept values")

	c.Add("a", note.Decrypted{Key: "n:2", Value: 3}, true)
	values, _ = c.Get("a", false)
	assert.Equal(t, note.Values{1: {"n:0"}, 3: {"n:2"}}, values, "reloaded from kept buckets")
}

func TestVersions(t *testing.T) {
	c := notecache.New(10, 10)
	assert.Equal(t, uint64(0), c.Version("a"), "unknown asset")

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	assert.Equal(t, uint64(1), c.Version("a"), "repeat add is not a change")

	c.Remove("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	c.Set("a", note.Values{2: {"n:1"}}, false)
	_, version, ok := c.Peek("a")
	assert.True(t, ok, "resident")
	assert.Equal(t, uint64(3), version, "peek version")
}

func TestPersistSkipsOlderVersions(t *testing.T) {
	c := notecache.New(10, 10)

	written := map[note.AssetId]bool{}
	write := func(current map[note.AssetId]bool) error {
		for id, ok := range current {
			written[id] = ok
		}
		return nil
	}

	err := c.Persist(map[note.AssetId]uint64{"a": 5, "b": 1}, write)
	assert.NoError(t, err, "newer write")
	assert.Equal(t, map[note.AssetId]bool{"a": true, "b": true}, written, "both current")

	err = c.Persist(map[note.AssetId]uint64{"a": 4, "b": 1}, write)
	assert.NoError(t, err, "older write")
	assert.Equal(t, map[note.AssetId]bool{"a": false, "b": true}, written, "older a skipped")

	err = c.Persist(map[note.AssetId]uint64{"a": 7}, func(current map[note.AssetId]bool) error {
		return fmt.Errorf("disk full")
	})
	assert.Error(t, err, "failed write")

	err = c.Persist(map[note.AssetId]uint64{"a": 6}, write)
	assert.NoError(t, err, "after failure")
	assert.True(t, written["a"], "failed write is not recorded")
}

func TestStaleEvictionSkipped(t *testing.T) {
	c := notecache.New(1, 10)

	shelf := map[note.AssetId]note.Values{}
	c.SetEvictHandler(func(id note.AssetId, values note.Values) error {
		shelf[id] = values
		return nil
	})

	c.Add("a", note.Decrypted{Key: "n:0", Value: 1}, false)
	version := c.Version("a")

	// a newer write of a lands before its eviction
	err := c.Persist(map[note.AssetId]uint64{"a": version + 1}, func(current map[note.AssetId]bool) error {
		return nil
	})
	assert.NoError(t, err, "persist")

	c.Add("b", note.Decrypted{Key: "n:1", Value: 2}, false)
	assert.False(t, c.Has("a"), "a evicted")
	_, ok := shelf["a"]
	assert.False(t, ok, "older eviction not written")
}

func TestImportEmptyBuckets(t *testing.T) {
	contents := &notecache.Contents{
		Notes: map[note.AssetId]note.Values{
			"empty": {},
			"full":  {1: {"n:0"}},
		},
		Priority: []note.AssetId{"missing", "empty", "full"},
	}

	c := notecache.New(10, 10)
	admitted := c.Import(contents)
	assert.Equal(t, []note.AssetId{"empty", "full"}, admitted, "empty buckets admitted, missing skipped")
	assert.Equal(t, 0, c.Size("empty"), "empty size")
	assert.Equal(t, 1, c.MemoryUsage(), "memory usage")
}

func TestTouch(t *testing.T) {
	c := notecache.New(10, 10)
	c.Set("a", note.Values{1: {"n:0"}}, false)
	c.Set("b", note.Values{1: {"n:1"}}, false)

	assert.Equal(t, []note.AssetId{"a", "b"}, c.Priority(), "insertion order")
	assert.True(t, c.Touch("b"), "touch resident")
	assert.Equal(t, []note.AssetId{"b", "a"}, c.Priority(), "b raised")
	assert.False(t, c.Touch("c"), "touch absent")
}
