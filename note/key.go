// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package note

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/notesync/fault"
)

const keyPrefix = "n:"

// Key - canonical note key "n:<index>"
type Key string

// NewKey - key for an index
func NewKey(index uint64) Key {
	return Key(keyPrefix + strconv.FormatUint(index, 10))
}

// Index - the numeric part of the key
func (k Key) Index() (uint64, error) {
	s := string(k)
	if !strings.HasPrefix(s, keyPrefix) {
		return 0, fault.ErrInvalidNoteKey
	}
	n, err := strconv.ParseUint(s[len(keyPrefix):], 10, 64)
	if nil != err {
		return 0, fault.ErrInvalidNoteKey
	}
	return n, nil
}

// Less - keys order by index, malformed keys sort first
func (k Key) Less(other Key) bool {
	a, errA := k.Index()
	b, errB := other.Index()
	switch {
	case nil != errA && nil != errB:
		return k < other
	case nil != errA:
		return true
	case nil != errB:
		return false
	}
	return a < b
}

// Cursor - how far an asset has been synchronised
//
// ordered by block number then by key index, the zero value is the
// beginning of time
type Cursor struct {
	BlockNumber uint64 `json:"blockNumber"`
	Key         Key    `json:"key,omitempty"`
}

// IsZero - nothing synced yet
func (c Cursor) IsZero() bool {
	return 0 == c.BlockNumber && "" == c.Key
}

// Compare - -1, 0, +1
func (c Cursor) Compare(other Cursor) int {
	switch {
	case c.BlockNumber < other.BlockNumber:
		return -1
	case c.BlockNumber > other.BlockNumber:
		return 1
	case c.Key == other.Key:
		return 0
	case "" == c.Key:
		return -1
	case "" == other.Key:
		return 1
	case c.Key.Less(other.Key):
		return -1
	case other.Key.Less(c.Key):
		return 1
	}
	return 0
}

// Less - strictly before
func (c Cursor) Less(other Cursor) bool {
	return c.Compare(other) < 0
}

// Advance - move forward to other, never backwards
func (c *Cursor) Advance(other Cursor) bool {
	if c.Less(other) {
		*c = other
		return true
	}
	return false
}

// String - for logging
func (c Cursor) String() string {
	if "" == c.Key {
		return fmt.Sprintf("%d", c.BlockNumber)
	}
	return fmt.Sprintf("%d/%s", c.BlockNumber, c.Key)
}

// MaxCursor - the later of two cursors
func MaxCursor(a Cursor, b Cursor) Cursor {
	if a.Less(b) {
		return b
	}
	return a
}
