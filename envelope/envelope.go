// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package envelope - authenticated encryption of structured data
//
// Values are JSON encoded and then sealed with NaCl secretbox
// (XSalsa20-Poly1305) under a single session key.  Each Wrap draws a
// fresh 192 bit nonce from crypto/rand and stores it alongside the
// ciphertext.
package envelope

import (
	"crypto/rand"
	"encoding/json"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/knox/fault"
)

// sizes
const (
	KeySize   = 32
	NonceSize = 24
)

// Key - a symmetric session key, held in memory only
type Key [KeySize]byte

// Destroy - overwrite the key material
func (k *Key) Destroy() {
	if nil == k {
		return
	}
	for i := range k {
		k[i] = 0
	}
}

// KeyFromBytes - copy raw key material
func KeyFromBytes(b []byte) (*Key, error) {
	if KeySize != len(b) {
		return nil, fault.ErrInvalidKeyLength
	}
	k := new(Key)
	copy(k[:], b)
	return k, nil
}

// Blob - an encrypted value
type Blob struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// Wrap - encode and encrypt a value
func Wrap(value interface{}, key *Key) (*Blob, error) {
	if nil == key {
		return nil, fault.ErrInvalidKeyLength
	}

	plaintext, err := json.Marshal(value)
	if nil != err {
		return nil, errors.Wrap(fault.ErrEncryptionFailed, err.Error())
	}

	// must use a different nonce for each message encrypted with the
	// same key; at 192 bits a random value makes repeats negligible
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); nil != err {
		return nil, errors.Wrap(fault.ErrEncryptionFailed, err.Error())
	}

	k := [KeySize]byte(*key)
	ciphertext := secretbox.Seal(nil, plaintext, &nonce, &k)

	return &Blob{
		Nonce:      nonce[:],
		Ciphertext: ciphertext,
	}, nil
}

// Unwrap - decrypt and decode into value, which must be a pointer
//
// authentication failure, a malformed blob or undecodable plaintext
// all return fault.ErrDecryptionFailed
func Unwrap(blob *Blob, key *Key, value interface{}) error {
	if nil == blob || nil == key {
		return fault.ErrDecryptionFailed
	}
	if NonceSize != len(blob.Nonce) {
		return errors.Wrap(fault.ErrDecryptionFailed, fault.ErrInvalidNonce.Error())
	}
	if len(blob.Ciphertext) < secretbox.Overhead {
		return errors.Wrap(fault.ErrDecryptionFailed, "ciphertext too short")
	}

	var nonce [NonceSize]byte
	copy(nonce[:], blob.Nonce)

	k := [KeySize]byte(*key)
	plaintext, ok := secretbox.Open(nil, blob.Ciphertext, &nonce, &k)
	if !ok {
		return fault.ErrDecryptionFailed
	}

	if err := json.Unmarshal(plaintext, value); nil != err {
		return errors.Wrap(fault.ErrDecryptionFailed, err.Error())
	}
	return nil
}
