// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notes - JSON RPC access to the balance and note selection of
// the session owner
//
// an owner other than the session owner is not an error, it is logged
// and sees an empty result
package notes
