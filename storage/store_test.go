// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreNamespaces(t *testing.T) {
	db, teardown := setup(t)
	defer teardown()

	s1 := db.NewStore("testnet", "alice")
	s2 := db.NewStore("testnet", "bob")

	err := s1.Set(map[string][]byte{
		"priority":        []byte(`["gold"]`),
		"assetNotes/gold": []byte(`{}`),
	})
	assert.Nil(t, err)

	value, err := s1.Get("priority")
	assert.Nil(t, err)
	assert.Equal(t, []byte(`["gold"]`), value)

	value, err = s2.Get("priority")
	assert.Nil(t, err)
	assert.Nil(t, value, "other namespace")

	keys, err := s1.Keys()
	assert.Nil(t, err)
	assert.Equal(t, []string{"assetNotes/gold", "priority"}, keys)

	err = s1.Set(map[string][]byte{"priority": nil})
	assert.Nil(t, err)
	value, _ = s1.Get("priority")
	assert.Nil(t, value, "deleted")
}

func TestStoreLock(t *testing.T) {
	db, teardown := setup(t)
	defer teardown()

	s := db.NewStore("testnet", "alice")

	inside := 0
	maximum := 0
	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	for i := 0; i < 10; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Lock("assetSummary", func() error {
				mu.Lock()
				inside += 1
				if inside > maximum {
					maximum = inside
				}
				mu.Unlock()

				mu.Lock()
				inside -= 1
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maximum, "serialised")
}
