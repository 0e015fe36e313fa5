// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txlib_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/txlib"
	"github.com/bitmark-inc/knox/txlib/mocks"
)

func encodedKey() (string, []byte) {
	raw := make([]byte, 40)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	extended := make([]byte, 97)
	copy(extended, raw[4:36])
	return base58.Encode(raw), extended
}

func TestIsValidPublicKey(t *testing.T) {
	key, _ := encodedKey()
	assert.True(t, txlib.IsValidPublicKey(key), "valid key rejected")
	assert.False(t, txlib.IsValidPublicKey(""), "empty key accepted")
	assert.False(t, txlib.IsValidPublicKey("0OIl"), "non base58 accepted")
	assert.False(t, txlib.IsValidPublicKey(base58.Encode([]byte{1, 2, 3})), "short key accepted")
}

func TestPublicKeyToPkh(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	key, extended := encodedKey()

	lib := mocks.NewMockLibrary(ctl)
	lib.EXPECT().HashPublicKey(gomock.Any(), extended).Return("pkh-1", nil).Times(1)

	pkh, err := txlib.PublicKeyToPkh(context.Background(), lib, key)
	assert.Nil(t, err, "conversion error")
	assert.Equal(t, "pkh-1", pkh, "wrong pkh")
}

func TestPublicKeyToPkhInvalid(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	lib := mocks.NewMockLibrary(ctl)

	_, err := txlib.PublicKeyToPkh(context.Background(), lib, "not*base58")
	assert.True(t, fault.Is(err, fault.ErrInvalidPublicKey), "wrong error: %v", err)

	_, err = txlib.PublicKeyToPkh(context.Background(), lib, base58.Encode(make([]byte, 39)))
	assert.True(t, fault.Is(err, fault.ErrInvalidPublicKey), "wrong error: %v", err)
}
