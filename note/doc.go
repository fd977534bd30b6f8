// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package note - the note data model
//
// raw note records as produced by the note store, decrypted notes,
// the value buckets that hold an asset's note keys and the cursor
// that records how far an asset has been synchronised
//
// also provides the merge and pick utilities used by the asset
// layer and the client facing session
package note
