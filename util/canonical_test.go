// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/util"
)

func TestCanonical(t *testing.T) {
	items := []struct {
		in  string
		out string
		err error
	}{
		{"127.0.0.1:2150", "127.0.0.1:2150", nil},
		{" 127.0.0.1 : 2150 ", "127.0.0.1:2150", nil},
		{"*:2150", "0.0.0.0:2150", nil},
		{"[::1]:2150", "[::1]:2150", nil},
		{"[0:0::1]:2150", "[::1]:2150", nil},
		{"localhost:2150", "", fault.ErrInvalidIPAddress},
		{"127.0.0.1:0", "", fault.ErrInvalidPortNumber},
		{"127.0.0.1:65536", "", fault.ErrInvalidPortNumber},
		{"127.0.0.1", "", fault.ErrInvalidIPAddress},
	}

	for i, item := range items {
		out, err := util.CanonicalIPandPort(item.in)
		assert.Equal(t, item.err, err, "%d: error for %q", i, item.in)
		assert.Equal(t, item.out, out, "%d: result for %q", i, item.in)
	}
}
