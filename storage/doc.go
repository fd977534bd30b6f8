// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. hash         = note hash as 32 byte SHA3-256(data)
// 5. owner        = varint length ++ owner address bytes
// 6. asset        = varint length ++ asset id bytes
// 7. count        = successive index value as big endian uint64 (8 bytes)
//
// Note records:
//
//   N ++ owner ++ block number ++ hash           - all notes of an owner
//                                                  data: packed record
//   A ++ owner ++ asset ++ block number ++ hash  - notes of an owner for one asset
//                                                  data: packed record
//   H ++ hash ++ status                          - seen records, to drop duplicate submissions
//                                                  data: block number
//
// Note keys:
//
//   C ++ owner                 - next count value to use for a note key
//                                data: count
//   K ++ owner ++ hash         - assigned note key index
//                                data: count
//
// Persisted session data:
//
//   D ++ namespaced key        - opaque blob written through Store
//
// Testing:
//   Z ++ key                   - testing data
package storage
