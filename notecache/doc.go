// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notecache - in memory note value buckets per asset
//
// the cache is bounded by the total number of notes and by the number
// of assets, when a write would exceed either bound the lowest priority
// asset other than the one being written is evicted, if no other asset
// remains the write proceeds over capacity
//
// evicted buckets are passed to the eviction handler after the cache
// lock has been released so that the handler may persist them
package notecache
