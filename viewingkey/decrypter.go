// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewingkey

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/nacl/box"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/util"
)

const (
	nonceLength = 24

	// random part of a viewing key, the value follows as a varint
	secretLength = 32
)

// Decrypter - opens the viewing keys sealed to one owner
//
// note metadata layout:
//   ephemeral public key(32) ++ nonce(24) ++ box sealed viewing key
// viewing key layout:
//   secret(32) ++ value(varint)
type Decrypter struct {
	privateKey *[keyLength]byte
}

// NewDecrypter - decrypter for an owner's private key
func NewDecrypter(keyPair *KeyPair) *Decrypter {
	return &Decrypter{
		privateKey: keyPair.PrivateKey,
	}
}

// Decrypt - recover the plaintext viewing key from note metadata
func (d *Decrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < keyLength+nonceLength+box.Overhead {
		return nil, fault.ErrInvalidViewingKey
	}

	var peerKey [keyLength]byte
	var nonce [nonceLength]byte
	copy(peerKey[:], ciphertext[:keyLength])
	copy(nonce[:], ciphertext[keyLength:keyLength+nonceLength])

	plaintext, ok := box.Open(nil, ciphertext[keyLength+nonceLength:], &nonce, &peerKey, d.privateKey)
	if !ok {
		return nil, fault.ErrViewingKeyDecryptFailed
	}
	return plaintext, nil
}

// Value - extract the note value from a plaintext viewing key
func (d *Decrypter) Value(viewingKey []byte) (uint64, error) {
	if len(viewingKey) <= secretLength {
		return 0, fault.ErrInvalidViewingKey
	}
	value, n := util.FromVarint64(viewingKey[secretLength:])
	if 0 == n || secretLength+n != len(viewingKey) {
		return 0, fault.ErrInvalidViewingKey
	}
	return value, nil
}

// NewViewingKey - a fresh viewing key for a value
func NewViewingKey(value uint64) ([]byte, error) {
	viewingKey := make([]byte, secretLength, secretLength+util.Varint64MaximumBytes)
	if _, err := io.ReadFull(rand.Reader, viewingKey); nil != err {
		return nil, err
	}
	return append(viewingKey, util.ToVarint64(value)...), nil
}

// Seal - encrypt a viewing key to an owner's public key
func Seal(publicKey *[keyLength]byte, viewingKey []byte) ([]byte, error) {
	ephemeralPublic, ephemeralPrivate, err := box.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}

	var nonce [nonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); nil != err {
		return nil, err
	}

	out := make([]byte, 0, keyLength+nonceLength+len(viewingKey)+box.Overhead)
	out = append(out, ephemeralPublic[:]...)
	out = append(out, nonce[:]...)
	return box.Seal(out, viewingKey, &nonce, publicKey, ephemeralPrivate), nil
}
