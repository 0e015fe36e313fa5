// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"github.com/bitmark-inc/go-argon2"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
)

// the same signature must always unlock the same store, so the salt
// is fixed per application rather than random per user
const sessionSalt = "knox-multisig-vault-v1-salt"

// DeriveSessionKey - derive the store key from a wallet signature
//
// deterministic and deliberately slow
func DeriveSessionKey(signatureText string) (*Key, error) {
	if "" == signatureText {
		return nil, fault.ErrEmptySignature
	}

	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     KeySize,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}

	hash, err := argon2.Hash(ctx, []byte(signatureText), []byte(sessionSalt))
	if nil != err {
		return nil, errors.Wrap(fault.ErrEncryptionFailed, err.Error())
	}

	key, err := KeyFromBytes(hash)
	for i := range hash {
		hash[i] = 0
	}
	return key, err
}
