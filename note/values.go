// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package note

import (
	"sort"
)

// Values - note keys bucketed by decrypted value
//
// a key appears in at most one bucket
type Values map[uint64][]Key

// Add - put key into the bucket for value
// returns false if it was already there
func (v Values) Add(value uint64, key Key) bool {
	bucket := v[value]
	for _, k := range bucket {
		if k == key {
			return false
		}
	}
	v[value] = append(bucket, key)
	return true
}

// Remove - take key out of the bucket for value
// returns false if the bucket or key is absent
func (v Values) Remove(value uint64, key Key) bool {
	bucket, ok := v[value]
	if !ok {
		return false
	}
	for i, k := range bucket {
		if k != key {
			continue
		}
		if 1 == len(bucket) {
			delete(v, value)
			return true
		}
		nb := make([]Key, 0, len(bucket)-1)
		nb = append(nb, bucket[:i]...)
		v[value] = append(nb, bucket[i+1:]...)
		return true
	}
	return false
}

// Has - check for key in a specific bucket
func (v Values) Has(value uint64, key Key) bool {
	for _, k := range v[value] {
		if k == key {
			return true
		}
	}
	return false
}

// Find - locate the bucket holding key
func (v Values) Find(key Key) (uint64, bool) {
	for value, bucket := range v {
		for _, k := range bucket {
			if k == key {
				return value, true
			}
		}
	}
	return 0, false
}

// Count - total number of notes
func (v Values) Count() int {
	n := 0
	for _, bucket := range v {
		n += len(bucket)
	}
	return n
}

// Balance - sum of value × notes
func (v Values) Balance() uint64 {
	total := uint64(0)
	for value, bucket := range v {
		total += value * uint64(len(bucket))
	}
	return total
}

// DistinctValues - the bucket values in ascending order
func (v Values) DistinctValues() []uint64 {
	values := make([]uint64, 0, len(v))
	for value, bucket := range v {
		if 0 != len(bucket) {
			values = append(values, value)
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// SortedValues - one entry per note in ascending value order
func (v Values) SortedValues() []uint64 {
	values := make([]uint64, 0, v.Count())
	for _, value := range v.DistinctValues() {
		for range v[value] {
			values = append(values, value)
		}
	}
	return values
}

// Clone - deep copy
func (v Values) Clone() Values {
	if nil == v {
		return nil
	}
	c := make(Values, len(v))
	for value, bucket := range v {
		if 0 == len(bucket) {
			continue
		}
		c[value] = append(make([]Key, 0, len(bucket)), bucket...)
	}
	return c
}

// sortKeys - order each bucket by key index
func (v Values) sortKeys() {
	for _, bucket := range v {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Less(bucket[j]) })
	}
}
