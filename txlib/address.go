// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txlib

import (
	"context"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
)

// public key layouts
const (
	encodedKeyLength  = 40
	rawKeyOffset      = 4
	rawKeyLength      = 32
	extendedKeyLength = 97
)

// IsValidPublicKey - true if s is a base58 wallet public key
func IsValidPublicKey(s string) bool {
	if "" == s {
		return false
	}
	decoded, err := base58.Decode(s)
	return nil == err && encodedKeyLength == len(decoded)
}

// PublicKeyToPkh - convert a wallet public key to its key hash
//
// the 32 byte raw key is copied to the start of a zeroed extended key,
// which the library then hashes
func PublicKeyToPkh(ctx context.Context, lib Library, publicKey string) (string, error) {
	decoded, err := base58.Decode(publicKey)
	if nil != err {
		return "", errors.Wrap(fault.ErrInvalidPublicKey, err.Error())
	}
	if encodedKeyLength != len(decoded) {
		return "", errors.Wrapf(fault.ErrInvalidPublicKey, "decoded length: %d  expected: %d", len(decoded), encodedKeyLength)
	}

	extended := make([]byte, extendedKeyLength)
	copy(extended, decoded[rawKeyOffset:rawKeyOffset+rawKeyLength])

	pkh, err := lib.HashPublicKey(ctx, extended)
	if nil != err {
		return "", err
	}
	return pkh, nil
}
