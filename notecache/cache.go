// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notecache

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/priority"
)

// EvictFunc - persists the buckets of an evicted asset
//
// called after the cache lock is released, writes go through Persist
// so an older version never replaces a newer one
type EvictFunc func(assetId note.AssetId, values note.Values) error

// LoadFunc - returns the persisted buckets of an asset that is not
// resident, nil if there are none
//
// called with the cache locked so it must not call back into the cache
type LoadFunc func(assetId note.AssetId) note.Values

type entry struct {
	values note.Values
	size   int
}

type evicted struct {
	assetId note.AssetId
	values  note.Values
	version uint64
}

// Cache - note buckets for many assets
type Cache struct {
	sync.Mutex

	log         *logger.L
	capacity    int
	maxAssets   int
	memoryUsage int
	entries     map[note.AssetId]*entry
	priority    *priority.Queue
	onEvict     EvictFunc
	onLoad      LoadFunc

	versions  map[note.AssetId]uint64   // bumped on every change to the buckets
	persisted map[note.AssetId]uint64   // latest version written
	evicting  map[note.AssetId]*evicted // evicted but not yet written
	queue     []*evicted

	persistLock sync.Mutex
}

// New - create a cache holding at most capacity notes for at most
// maxAssets assets, zero means unbounded
func New(capacity int, maxAssets int) *Cache {
	return &Cache{
		log:       logger.New("notecache"),
		capacity:  capacity,
		maxAssets: maxAssets,
		entries:   make(map[note.AssetId]*entry),
		priority:  priority.New(),
		versions:  make(map[note.AssetId]uint64),
		persisted: make(map[note.AssetId]uint64),
		evicting:  make(map[note.AssetId]*evicted),
	}
}

// SetEvictHandler - install the eviction observer
func (c *Cache) SetEvictHandler(f EvictFunc) {
	c.Lock()
	c.onEvict = f
	c.Unlock()
}

// SetLoadHandler - install the source used by Add and Remove to bring
// back the buckets of an asset that was evicted
func (c *Cache) SetLoadHandler(f LoadFunc) {
	c.Lock()
	c.onLoad = f
	c.Unlock()
}

// Add - insert a decrypted note into its value bucket
//
// returns false if the key is already in that bucket
func (c *Cache) Add(assetId note.AssetId, d note.Decrypted, increasePriority bool) bool {
	defer c.drain()
	c.Lock()
	defer c.Unlock()

	e, ok := c.entries[assetId]
	if !ok {
		e, ok = c.reload(assetId, increasePriority)
	}
	if ok && e.values.Has(d.Value, d.Key) {
		if increasePriority {
			c.priority.MoveToTop(assetId)
		}
		return false
	}

	c.evict(c.ensureEnoughMemory(assetId, 1, !ok))
	e = c.entry(assetId, increasePriority)
	e.values.Add(d.Value, d.Key)
	e.size += 1
	c.memoryUsage += 1
	c.versions[assetId] += 1

	return true
}

// Remove - delete a note from its value bucket
//
// returns false if the bucket or key is absent
func (c *Cache) Remove(assetId note.AssetId, d note.Decrypted, increasePriority bool) bool {
	defer c.drain()
	c.Lock()
	defer c.Unlock()

	e, ok := c.entries[assetId]
	if !ok {
		e, ok = c.reload(assetId, increasePriority)
		if !ok {
			return false
		}
	}
	if increasePriority {
		c.priority.MoveToTop(assetId)
	}
	if !e.values.Remove(d.Value, d.Key) {
		return false
	}
	e.size -= 1
	c.memoryUsage -= 1
	c.versions[assetId] += 1
	return true
}

// Set - replace all buckets of an asset
func (c *Cache) Set(assetId note.AssetId, values note.Values, increasePriority bool) {
	values = values.Clone()
	if nil == values {
		values = make(note.Values)
	}
	size := values.Count()

	defer c.drain()
	c.Lock()
	defer c.Unlock()

	e, ok := c.entries[assetId]
	extra := size
	if ok {
		extra = size - e.size
	}
	if extra > 0 || !ok {
		c.evict(c.ensureEnoughMemory(assetId, extra, !ok))
	}

	e = c.entry(assetId, increasePriority)
	c.memoryUsage += size - e.size
	e.values = values
	e.size = size
	c.versions[assetId] += 1
}

// Get - copy of the buckets of an asset
func (c *Cache) Get(assetId note.AssetId, increasePriority bool) (note.Values, bool) {
	c.Lock()
	defer c.Unlock()

	e, ok := c.entries[assetId]
	if !ok {
		return nil, false
	}
	if increasePriority {
		c.priority.MoveToTop(assetId)
	}
	return e.values.Clone(), true
}

// Peek - copy of the buckets of a resident asset, or of one whose
// eviction is still being written, and their version
func (c *Cache) Peek(assetId note.AssetId) (note.Values, uint64, bool) {
	c.Lock()
	defer c.Unlock()

	if e, ok := c.entries[assetId]; ok {
		return e.values.Clone(), c.versions[assetId], true
	}
	if v, ok := c.evicting[assetId]; ok {
		return v.values.Clone(), c.versions[assetId], true
	}
	return nil, c.versions[assetId], false
}

// Version - modification count of the buckets of an asset
//
// when the asset is neither resident nor being evicted this is the
// version of its persisted buckets
func (c *Cache) Version(assetId note.AssetId) uint64 {
	c.Lock()
	defer c.Unlock()
	return c.versions[assetId]
}

// Persist - serialise a write of asset buckets taken at the given
// versions
//
// write receives the subset of ids that are not older than what was
// already written, only those may be written
func (c *Cache) Persist(versions map[note.AssetId]uint64, write func(current map[note.AssetId]bool) error) error {
	c.persistLock.Lock()
	defer c.persistLock.Unlock()

	current := make(map[note.AssetId]bool, len(versions))
	c.Lock()
	for id, version := range versions {
		current[id] = version >= c.persisted[id]
	}
	c.Unlock()

	err := write(current)
	if nil != err {
		return err
	}

	c.Lock()
	for id, version := range versions {
		if current[id] {
			c.persisted[id] = version
		}
	}
	c.Unlock()
	return nil
}

// Has - check if an asset is resident
func (c *Cache) Has(assetId note.AssetId) bool {
	c.Lock()
	defer c.Unlock()
	_, ok := c.entries[assetId]
	return ok
}

// Size - number of notes held for an asset, zero if absent
func (c *Cache) Size(assetId note.AssetId) int {
	c.Lock()
	defer c.Unlock()
	if e, ok := c.entries[assetId]; ok {
		return e.size
	}
	return 0
}

// MemoryUsage - total notes held
func (c *Cache) MemoryUsage() int {
	c.Lock()
	defer c.Unlock()
	return c.memoryUsage
}

// Assets - number of resident assets
func (c *Cache) Assets() int {
	c.Lock()
	defer c.Unlock()
	return len(c.entries)
}

// Priority - resident assets from highest to lowest priority
func (c *Cache) Priority() []note.AssetId {
	c.Lock()
	defer c.Unlock()
	return c.priority.List()
}

// Touch - raise a resident asset to the top priority
func (c *Cache) Touch(assetId note.AssetId) bool {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.entries[assetId]; !ok {
		return false
	}
	c.priority.MoveToTop(assetId)
	return true
}

// Delete - drop an asset without notifying the eviction handler
func (c *Cache) Delete(assetId note.AssetId) bool {
	c.Lock()
	defer c.Unlock()
	e, ok := c.entries[assetId]
	if !ok {
		return false
	}
	c.memoryUsage -= e.size
	delete(c.entries, assetId)
	c.priority.Remove(assetId)
	return true
}

// must hold lock
func (c *Cache) entry(assetId note.AssetId, increasePriority bool) *entry {
	e, ok := c.entries[assetId]
	if !ok {
		e = &entry{
			values: make(note.Values),
		}
		c.entries[assetId] = e
		if increasePriority {
			c.priority.AddToTop(assetId)
		} else {
			c.priority.AddToBottom(assetId)
		}
		return e
	}
	if increasePriority {
		c.priority.MoveToTop(assetId)
	}
	return e
}

// evict lowest priority assets until extra notes (and possibly one
// more asset) fit, never evicting the target
//
// must hold lock
func (c *Cache) ensureEnoughMemory(target note.AssetId, extra int, newAsset bool) []evicted {
	var victims []evicted
	for c.overCapacity(extra, newAsset) {
		victim, ok := c.priority.LowestExcept(target)
		if !ok {
			c.log.Debugf("asset: %s exceeds capacity: %d  usage: %d  extra: %d", target, c.capacity, c.memoryUsage, extra)
			break
		}
		e := c.entries[victim]
		c.log.Debugf("evict asset: %s  size: %d", victim, e.size)
		c.memoryUsage -= e.size
		delete(c.entries, victim)
		c.priority.Remove(victim)
		victims = append(victims, evicted{assetId: victim, values: e.values, version: c.versions[victim]})
	}
	return victims
}

// must hold lock
func (c *Cache) overCapacity(extra int, newAsset bool) bool {
	if c.capacity > 0 && c.memoryUsage+extra > c.capacity {
		return true
	}
	if newAsset && c.maxAssets > 0 && len(c.entries)+1 > c.maxAssets {
		return true
	}
	return false
}

// bring back the persisted buckets of an absent asset
//
// must hold lock
func (c *Cache) reload(assetId note.AssetId, increasePriority bool) (*entry, bool) {
	var values note.Values
	if v, ok := c.evicting[assetId]; ok {
		values = v.values.Clone()
	} else if nil != c.onLoad {
		values = c.onLoad(assetId).Clone()
	}
	size := values.Count()
	if 0 == size {
		return nil, false
	}

	c.log.Debugf("reload asset: %s  size: %d", assetId, size)
	c.evict(c.ensureEnoughMemory(assetId, size, true))
	e := c.entry(assetId, increasePriority)
	e.values = values
	e.size = size
	c.memoryUsage += size
	return e, true
}

// queue evicted buckets to be written once the lock is released
//
// must hold lock
func (c *Cache) evict(victims []evicted) {
	if nil == c.onEvict {
		return
	}
	for i := range victims {
		v := &victims[i]
		c.evicting[v.assetId] = v
		c.queue = append(c.queue, v)
	}
}

// write queued evictions
//
// call without lock
func (c *Cache) drain() {
	for {
		c.Lock()
		if 0 == len(c.queue) {
			c.Unlock()
			return
		}
		v := c.queue[0]
		c.queue[0] = nil
		c.queue = c.queue[1:]
		onEvict := c.onEvict
		c.Unlock()

		err := c.Persist(map[note.AssetId]uint64{v.assetId: v.version}, func(current map[note.AssetId]bool) error {
			if !current[v.assetId] {
				return nil
			}
			return onEvict(v.assetId, v.values)
		})

		c.Lock()
		if nil != err {
			// kept so that a reload still finds the buckets
			c.log.Errorf("asset: %s  evict error: %s", v.assetId, err)
		} else if c.evicting[v.assetId] == v {
			delete(c.evicting, v.assetId)
		}
		c.Unlock()
	}
}
