// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - decryption pipeline for the notes of one asset
//
// an asset pulls raw notes from the raw note manager, decrypts them in
// a bounded number of concurrent processes and applies the values to
// the shared note cache
//
// mutations pass through a write barrier: while the asset is locked
// they are queued and applied in order on unlock, processes already
// running complete but cannot commit until then
package asset
