// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package manager - schedules the sync of many assets
//
// at most MaxActiveAssets assets sync at once, the rest wait in the
// pending queue, the next asset to activate is taken from:
//
//   1. the top of the pending queue
//   2. the explicit priority list, first asset not yet synced
//   3. any other known asset not yet synced
//
// each activation is numbered so a completion from an earlier
// activation of the same asset is recognised and ignored
package manager
