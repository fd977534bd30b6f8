// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/notesync/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestVarint64(t *testing.T) {

	for i, item := range varint64Tests {
		if result := util.ToVarint64(item.value); !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%x) -> %x  expected: %x", i, item.value, result, item.encoded)
		}
		value, count := util.FromVarint64(item.encoded)
		if value != item.value || count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: %d", i, item.encoded, value, count, item.value)
		}
	}

	for i, item := range [][]byte{{}, {0x80}, {0xff, 0xff}} {
		value, count := util.FromVarint64(item)
		if 0 != value || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, item, value, count)
		}
	}
}

func TestPackBytes(t *testing.T) {
	buffer := util.PackBytes(nil, []byte("asset-one"))
	buffer = util.PackBytes(buffer, []byte{})
	buffer = append(buffer, 0x42)

	data, n := util.UnpackBytes(buffer)
	assert.Equal(t, []byte("asset-one"), data)
	assert.Equal(t, 10, n)

	data, m := util.UnpackBytes(buffer[n:])
	assert.Equal(t, []byte{}, data)
	assert.Equal(t, 1, m)
	assert.Equal(t, byte(0x42), buffer[n+m])

	data, n = util.UnpackBytes([]byte{0x05, 'a', 'b'})
	assert.Nil(t, data, "truncated")
	assert.Equal(t, 0, n)
}
