// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package callback_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/notesync/callback"
)

func TestFlushOrder(t *testing.T) {
	c := callback.New()

	calls := []int{}
	c.Add("a", func() { calls = append(calls, 1) })
	c.Add("b", func() { calls = append(calls, 9) })
	c.Add("a", func() { calls = append(calls, 2) })

	assert.True(t, c.Has("a"))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"a", "b"}, c.Keys())

	for _, f := range c.Flush("a") {
		f()
	}
	assert.Equal(t, []int{1, 2}, calls, "fifo")
	assert.False(t, c.Has("a"), "flushed")
	assert.Nil(t, c.Flush("a"), "second flush empty")

	assert.Equal(t, 1, c.Remove("b"))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []int{1, 2}, calls, "removed not run")
}

func TestFlushOutsideLock(t *testing.T) {
	c := callback.New()

	// a callback that re-registers must not deadlock
	c.Add("a", func() { c.Add("a", func() {}) })
	for _, f := range c.Flush("a") {
		f()
	}
	assert.True(t, c.Has("a"))
}

func TestConcurrentAdd(t *testing.T) {
	c := callback.New()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add("k", func() {})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, len(c.Flush("k")))
}
