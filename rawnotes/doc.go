// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rawnotes - buffer of raw notes waiting to be decrypted
//
// for one owner two windows of raw note records are kept:
//
//   head  - fetched forward from the note store starting at the
//           lowest block any known asset still needs
//   tail  - appended live as new notes are submitted
//
// the head never fetches into the tail, and notes at or below the head
// boundary are dropped from the tail, so no note is buffered twice
//
// consumers pull per asset with FetchAndRemove, for one asset notes are
// returned in non-decreasing block number order: first any notes older
// than the head start ("prepend"), then head notes, then tail notes
// once the head has caught up with the tail
package rawnotes
