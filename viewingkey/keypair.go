// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package viewingkey

import (
	"crypto/rand"
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"golang.org/x/crypto/nacl/box"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/util"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
	keyLength     = 32
)

// KeyPair - an owner's viewing key pair
type KeyPair struct {
	PublicKey  *[keyLength]byte
	PrivateKey *[keyLength]byte
}

// MakeKeyPair - create a new public/private keypair and write them to
// separate files
func MakeKeyPair(publicKeyFileName string, privateKeyFileName string) error {
	if util.EnsureFileExists(publicKeyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if nil != err {
		return err
	}

	publicText := taggedPublic + hex.EncodeToString(publicKey[:]) + "\n"
	privateText := taggedPrivate + hex.EncodeToString(privateKey[:]) + "\n"

	if err = ioutil.WriteFile(publicKeyFileName, []byte(publicText), 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, []byte(privateText), 0600); nil != err {
		os.Remove(publicKeyFileName)
		return err
	}

	return nil
}

// ReadKeyPair - load both halves from their files
func ReadKeyPair(publicKeyFileName string, privateKeyFileName string) (*KeyPair, error) {
	publicData, err := ioutil.ReadFile(publicKeyFileName)
	if nil != err {
		return nil, err
	}
	privateData, err := ioutil.ReadFile(privateKeyFileName)
	if nil != err {
		return nil, err
	}

	publicKey, private, err := ParseKey(string(publicData))
	if nil != err {
		return nil, err
	}
	if private {
		return nil, fault.ErrInvalidPublicKeyFile
	}

	privateKey, private, err := ParseKey(string(privateData))
	if nil != err {
		return nil, err
	}
	if !private {
		return nil, fault.ErrInvalidPrivateKeyFile
	}

	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// ParseKey - decode a tagged hex key, second result is true for a private key
func ParseKey(data string) (*[keyLength]byte, bool, error) {
	s := strings.TrimSpace(data)

	tag := ""
	private := false
	switch {
	case strings.HasPrefix(s, taggedPrivate):
		tag = taggedPrivate
		private = true
	case strings.HasPrefix(s, taggedPublic):
		tag = taggedPublic
	default:
		return nil, false, fault.ErrInvalidPublicKeyFile
	}

	h, err := hex.DecodeString(s[len(tag):])
	if nil != err {
		return nil, false, err
	}
	if len(h) != keyLength {
		if private {
			return nil, false, fault.ErrInvalidPrivateKeyFile
		}
		return nil, false, fault.ErrInvalidPublicKeyFile
	}

	key := new([keyLength]byte)
	copy(key[:], h)
	return key, private, nil
}
