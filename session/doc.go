// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session ties the note pipeline of one owner together
//
// the session owns the note cache, the raw note manager with its
// background poller and the asset manager, requests for any other owner
// are logged and answered with an empty result
package session
