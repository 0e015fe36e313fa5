// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/fixtures"
	"github.com/bitmark-inc/knox/txlib/mocks"
	"github.com/bitmark-inc/knox/vault"
)

func TestNewConfig(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	signers := []string{fixtures.SignerA, " " + fixtures.SignerB + " ", fixtures.SignerC}
	cleaned := []string{fixtures.SignerA, fixtures.SignerB, fixtures.SignerC}

	lib := mocks.NewMockLibrary(ctl)
	gomock.InOrder(
		lib.EXPECT().NewSpendCondition(gomock.Any(), 2, cleaned).Return([]byte{9, 9}, nil).Times(1),
		lib.EXPECT().HashSpendCondition(gomock.Any(), []byte{9, 9}).Return("vault-address", nil).Times(1),
	)

	config, err := vault.NewConfig(context.Background(), lib, 2, signers)
	assert.Nil(t, err, "config error")
	assert.Equal(t, "vault-address", config.Address, "wrong address")
	assert.Equal(t, []byte{9, 9}, config.SpendCondition, "wrong spend condition")
	assert.Equal(t, cleaned, config.Signers, "signers not cleaned in order")

	v, err := vault.New("  Treasury ", config)
	assert.Nil(t, err, "new error")
	assert.Equal(t, "Treasury", v.Name, "name not trimmed")
	assert.NotEqual(t, "", v.ID, "missing id")
	assert.NotZero(t, v.CreatedAt, "missing creation time")
	assert.True(t, v.IsSigner(fixtures.SignerB), "declared signer not recognised")
	assert.False(t, v.IsSigner(fixtures.Outsider), "outsider recognised")
	assert.Nil(t, v.Validate(), "new vault does not validate")

	other, _ := vault.New("Treasury", config)
	assert.NotEqual(t, v.ID, other.ID, "ids must be unique")
}

func TestNewConfigInvalid(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// no library call is expected for any of these
	lib := mocks.NewMockLibrary(ctl)
	ctx := context.Background()

	items := []struct {
		threshold int
		signers   []string
		err       error
	}{
		{1, nil, fault.ErrMissingSigners},
		{0, []string{"a"}, fault.ErrInvalidThreshold},
		{3, []string{"a", "b"}, fault.ErrInvalidThreshold},
		{-1, []string{"a", "b"}, fault.ErrInvalidThreshold},
		{2, []string{"a", "a"}, fault.ErrDuplicateSigner},
		{2, []string{"a", " a"}, fault.ErrDuplicateSigner},
		{1, []string{"a", ""}, fault.ErrInvalidAddress},
	}

	for i, item := range items {
		_, err := vault.NewConfig(ctx, lib, item.threshold, item.signers)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}

func TestNewConfigLibraryError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	lib := mocks.NewMockLibrary(ctl)
	lib.EXPECT().NewSpendCondition(gomock.Any(), 1, gomock.Any()).Return(nil, fault.ErrLibraryFailed).Times(1)

	_, err := vault.NewConfig(context.Background(), lib, 1, []string{"a"})
	assert.Equal(t, fault.ErrLibraryFailed, err, "wrong error")
}

func TestNewRequiresName(t *testing.T) {
	_, err := vault.New("   ", &vault.Config{Threshold: 1, Signers: []string{"a"}, Address: "x"})
	assert.Equal(t, fault.ErrRequiredVaultName, err, "wrong error")
}
