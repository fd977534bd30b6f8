// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package note

// Data - the decrypted state of one asset
//
// Balance always equals Values.Balance()
type Data struct {
	Balance    uint64 `json:"balance"`
	Values     Values `json:"noteValues"`
	LastSynced Cursor `json:"lastSynced"`
}

// NewData - empty data
func NewData() *Data {
	return &Data{
		Values: make(Values),
	}
}

// AddNote - add a note and adjust the balance
func (d *Data) AddNote(value uint64, key Key) bool {
	if nil == d.Values {
		d.Values = make(Values)
	}
	if !d.Values.Add(value, key) {
		return false
	}
	d.Balance += value
	return true
}

// RemoveNote - remove a note and adjust the balance
func (d *Data) RemoveNote(value uint64, key Key) bool {
	if !d.Values.Remove(value, key) {
		return false
	}
	d.Balance -= value
	return true
}

// Summary - the persisted per asset header
type Summary struct {
	Balance    uint64 `json:"balance"`
	LastSynced Cursor `json:"lastSynced"`
	Size       int    `json:"size"`
}

// Snapshot - everything persisted for one asset
type Snapshot struct {
	Balance    uint64 `json:"balance"`
	LastSynced Cursor `json:"lastSynced"`
	Size       int    `json:"size"`
	Values     Values `json:"noteValues"`

	Version uint64 `json:"-"` // note cache version of Values
}

// Summary - header part of a snapshot
func (s *Snapshot) Summary() Summary {
	return Summary{
		Balance:    s.Balance,
		LastSynced: s.LastSynced,
		Size:       s.Size,
	}
}

// View - read only state handed to callers waiting on a synced asset
type View struct {
	Asset   AssetId
	Balance uint64
	Values  Values
}

// NewView - copy values so the caller cannot disturb the cache
func NewView(assetId AssetId, balance uint64, values Values) *View {
	return &View{
		Asset:   assetId,
		Balance: balance,
		Values:  values.Clone(),
	}
}

// SortedValues - one entry per note, ascending
func (v *View) SortedValues() []uint64 {
	return v.Values.SortedValues()
}

// Merge - combine two states of the same asset
//
// every key is counted once, b is the newer state so where a key is
// bucketed under different values the value from b is kept
func Merge(a Data, b Data) Data {
	values := a.Values.Clone()
	if nil == values {
		values = make(Values)
	}

	for value, bucket := range b.Values {
		for _, key := range bucket {
			if old, ok := values.Find(key); ok {
				if old == value {
					continue
				}
				values.Remove(old, key)
			}
			values.Add(value, key)
		}
	}
	values.sortKeys()

	return Data{
		Balance:    values.Balance(),
		Values:     values,
		LastSynced: MaxCursor(a.LastSynced, b.LastSynced),
	}
}
