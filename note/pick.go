// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package note

import (
	"sort"

	"github.com/bitmark-inc/notesync/fault"
)

type entry struct {
	value uint64
	key   Key
}

// Pick - choose notes whose total is at least minSum
//
// exactly numberOfNotes keys are returned unless allowLess is set and
// fewer notes exist, in which case all of them are considered
//
// notes are taken as a contiguous run of the value ordered list so the
// smallest qualifying run is returned and large notes are kept back
func Pick(values Values, minSum uint64, numberOfNotes int, allowLess bool) ([]Key, error) {
	if numberOfNotes < 1 {
		return nil, fault.ErrInvalidCount
	}

	notes := make([]entry, 0, values.Count())
	for value, bucket := range values {
		for _, key := range bucket {
			notes = append(notes, entry{value: value, key: key})
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].value == notes[j].value {
			return notes[i].key.Less(notes[j].key)
		}
		return notes[i].value < notes[j].value
	})

	count := numberOfNotes
	if len(notes) < numberOfNotes {
		if !allowLess {
			return nil, fault.NewArgumentError(fault.ErrNotEnoughNotes, uint64(numberOfNotes), uint64(len(notes)))
		}
		count = len(notes)
	}

	if 0 == count {
		if 0 == minSum {
			return []Key{}, nil
		}
		return nil, fault.NewArgumentError(fault.ErrInsufficientFunds, minSum, 0)
	}

	// sliding window, sums never decrease as the window moves up
	sum := uint64(0)
	for i := 0; i < count; i += 1 {
		sum += notes[i].value
	}
	start := 0
	for sum < minSum {
		if start+count >= len(notes) {
			return nil, fault.NewArgumentError(fault.ErrInsufficientFunds, minSum, sum)
		}
		sum = sum - notes[start].value + notes[start+count].value
		start += 1
	}

	keys := make([]Key, count)
	for i := range keys {
		keys[i] = notes[start+i].key
	}
	return keys, nil
}
