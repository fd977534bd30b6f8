// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/util"
)

// packed record layout:
//   hash ++ asset ++ owner ++ block number(varint) ++ status(varint) ++ metadata
//   where asset, owner and metadata are varint length prefixed
func packRecord(r *note.Record) []byte {
	buffer := make([]byte, 0, note.HashLength+len(r.Asset)+len(r.Owner)+len(r.Metadata)+24)
	buffer = append(buffer, r.Hash[:]...)
	buffer = util.PackBytes(buffer, []byte(r.Asset))
	buffer = util.PackBytes(buffer, []byte(r.Owner))
	buffer = append(buffer, util.ToVarint64(r.BlockNumber)...)
	buffer = append(buffer, util.ToVarint64(uint64(r.Status))...)
	buffer = util.PackBytes(buffer, r.Metadata)
	return buffer
}

func unpackRecord(buffer []byte) (*note.Record, error) {
	if len(buffer) < note.HashLength {
		return nil, fault.ErrTruncatedRecord
	}

	r := &note.Record{}
	copy(r.Hash[:], buffer[:note.HashLength])
	n := note.HashLength

	asset, count := util.UnpackBytes(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	r.Asset = note.AssetId(asset)
	n += count

	owner, count := util.UnpackBytes(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	r.Owner = note.Address(owner)
	n += count

	blockNumber, count := util.FromVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	r.BlockNumber = blockNumber
	n += count

	status, count := util.FromVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	r.Status = note.Status(status)
	if note.Created != r.Status && note.Destroyed != r.Status {
		return nil, fault.ErrInvalidNoteStatus
	}
	n += count

	metadata, count := util.UnpackBytes(buffer[n:])
	if 0 == count {
		return nil, fault.ErrTruncatedRecord
	}
	r.Metadata = metadata

	return r, nil
}

// owner ++ [asset] prefix for the note indexes
func ownerKey(owner note.Address) []byte {
	return util.PackBytes(nil, []byte(owner))
}

func assetKey(owner note.Address, assetId note.AssetId) []byte {
	return util.PackBytes(ownerKey(owner), []byte(assetId))
}

func blockKey(prefix []byte, blockNumber uint64) []byte {
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], blockNumber)
	return key
}

func recordKey(prefix []byte, r *note.Record) []byte {
	return append(blockKey(prefix, r.BlockNumber), r.Hash[:]...)
}

func seenKey(r *note.Record) []byte {
	return append(r.Hash[:len(r.Hash):len(r.Hash)], byte(r.Status))
}
