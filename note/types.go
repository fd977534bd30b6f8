// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package note

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/notesync/fault"
)

// HashLength - number of bytes in a note hash
const HashLength = 32

// Hash - the content hash identifying a note
type Hash [HashLength]byte

// AssetId - identifier grouping notes of the same token
type AssetId string

// Address - an owner address
type Address string

// NewHash - create a note hash from a byte slice
func NewHash(record []byte) Hash {
	return sha3.Sum256(record)
}

// String - hex representation for the fmt package (%s)
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// GoString - for %#v
func (h Hash) GoString() string {
	return "<note:" + hex.EncodeToString(h[:]) + ">"
}

// MarshalText - convert hash to hex text for JSON
func (h Hash) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(HashLength))
	hex.Encode(buffer, h[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a hash
func (h *Hash) UnmarshalText(s []byte) error {
	if len(s) != hex.EncodedLen(HashLength) {
		return fault.ErrTruncatedRecord
	}
	_, err := hex.Decode(h[:], s)
	return err
}

// HashFromString - parse a hex string
func HashFromString(s string) (Hash, error) {
	h := Hash{}
	err := h.UnmarshalText([]byte(s))
	return h, err
}

// Status - on chain state of a note
type Status int

// possible note states
const (
	Created Status = iota
	Destroyed
)

// String - text form of status
func (s Status) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Destroyed:
		return "DESTROYED"
	default:
		return fmt.Sprintf("*unknown(%d)*", int(s))
	}
}

// MarshalText - status as text for JSON
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Created, Destroyed:
		return []byte(s.String()), nil
	default:
		return nil, fault.ErrInvalidNoteStatus
	}
}

// UnmarshalText - status from JSON text
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "CREATED":
		*s = Created
	case "DESTROYED":
		*s = Destroyed
	default:
		return fault.ErrInvalidNoteStatus
	}
	return nil
}

// Record - a raw note as delivered by the note store
//
// the metadata holds the viewing key ciphertext and is opaque here
type Record struct {
	Hash        Hash    `json:"noteHash"`
	Asset       AssetId `json:"asset"`
	Owner       Address `json:"owner"`
	BlockNumber uint64  `json:"blockNumber"`
	Status      Status  `json:"status"`
	Metadata    []byte  `json:"metadata"`
}

// Decrypted - a note whose value has been recovered
type Decrypted struct {
	Key   Key    `json:"key"`
	Value uint64 `json:"value"`
}

// Query - a page request to the note store
//
// block number bounds are inclusive, a zero ToBlockNumber is unbounded
// and an empty Asset selects every asset of the owner
type Query struct {
	Owner           Address
	Asset           AssetId
	Count           int
	FromBlockNumber uint64
	ToBlockNumber   uint64
}
