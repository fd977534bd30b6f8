// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package viewingkey - sealed viewing keys carried in note metadata
//
// each note carries its viewing key sealed to the owner's public key
// with NaCl box, opening it with the owner's private key reveals the
// note value
package viewingkey
