// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - queues carrying asset events from the
// notification bus to the broadcasters
//
// the latest message of each cacheable event and asset is replayed to
// a listener when it attaches so it starts from the current balances
package messagebus
