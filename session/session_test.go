// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session_test

import (
	"context"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/fixtures"
	"github.com/bitmark-inc/knox/recordstore"
	"github.com/bitmark-inc/knox/session"
	"github.com/bitmark-inc/knox/storage"
	"github.com/bitmark-inc/knox/txlib/mocks"
	"github.com/bitmark-inc/knox/vault"
)

const signature = "wallet-signature-over-unlock-message"

func setup(t *testing.T) (*recordstore.Store, *storage.Database) {
	fixtures.SetupTestLogger()
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	return recordstore.New(db.Pool.EncryptedVaults, logger.New("records")), db
}

func teardown(db *storage.Database) {
	db.Close()
	fixtures.TeardownTestLogger()
}

func makeVault(id string, name string, address string) *vault.Vault {
	return &vault.Vault{
		ID:             id,
		Name:           name,
		Threshold:      2,
		Signers:        []string{fixtures.SignerA, fixtures.SignerB, fixtures.SignerC},
		Address:        address,
		SpendCondition: []byte{1, 2, 3},
		CreatedAt:      1700000000000,
	}
}

func TestUnlockAddReload(t *testing.T) {
	store, db := setup(t)
	defer teardown(db)

	s, err := session.Unlock(store, signature, fixtures.SignerA, logger.New("session"))
	assert.Nil(t, err, "first unlock error")

	vaults, err := s.Vaults()
	assert.Nil(t, err, "vaults error")
	assert.Equal(t, 0, len(vaults), "fresh store has vaults")

	v := makeVault("v-1", "Treasury", "addr-1")
	assert.Nil(t, s.AddVault(v), "add error")
	assert.Nil(t, s.AddVault(makeVault("v-2", "Ops", "addr-2")), "add error")

	// same policy again
	err = s.AddVault(makeVault("v-3", "Copy", "addr-1"))
	assert.Equal(t, fault.ErrDuplicateVault, err, "duplicate accepted")

	found, err := s.VaultByAddress("addr-1")
	assert.Nil(t, err, "by address error")
	assert.Equal(t, v, found, "wrong vault")

	_, err = s.VaultByID("v-9")
	assert.Equal(t, fault.ErrVaultNotFound, err, "missing vault found")

	wallet, err := s.Wallet()
	assert.Nil(t, err, "wallet error")
	assert.Equal(t, fixtures.SignerA, wallet, "wrong wallet")

	s.Lock()
	assert.True(t, s.IsLocked(), "not locked")

	// new session with the same signature sees the stored vaults
	s2, err := session.Unlock(store, signature, fixtures.SignerA, logger.New("session"))
	assert.Nil(t, err, "second unlock error")
	vaults, err = s2.Vaults()
	assert.Nil(t, err, "vaults error")
	assert.Equal(t, 2, len(vaults), "wrong vault count")
	assert.Equal(t, "Ops", vaults[0].Name, "not ordered by name")
	assert.Equal(t, *v, *vaults[1], "stored vault changed")
}

func TestUnlockWrongSignature(t *testing.T) {
	store, db := setup(t)
	defer teardown(db)

	s, err := session.Unlock(store, signature, fixtures.SignerA, logger.New("session"))
	assert.Nil(t, err, "unlock error")
	assert.Nil(t, s.AddVault(makeVault("v-1", "Treasury", "addr-1")), "add error")
	s.Lock()

	_, err = session.Unlock(store, "some other signature", fixtures.SignerA, logger.New("session"))
	assert.Equal(t, fault.ErrAuthenticationFailed, err, "wrong error")

	_, err = session.Unlock(store, "", fixtures.SignerA, logger.New("session"))
	assert.Equal(t, fault.ErrEmptySignature, err, "empty signature accepted")
}

func TestLocked(t *testing.T) {
	store, db := setup(t)
	defer teardown(db)

	s, err := session.Unlock(store, signature, fixtures.SignerA, logger.New("session"))
	assert.Nil(t, err, "unlock error")
	s.Lock()
	s.Lock()

	_, err = s.Vaults()
	assert.Equal(t, fault.ErrSessionLocked, err, "vaults")
	_, err = s.Key()
	assert.Equal(t, fault.ErrSessionLocked, err, "key")
	_, err = s.Wallet()
	assert.Equal(t, fault.ErrSessionLocked, err, "wallet")
	_, err = s.VaultByID("v")
	assert.Equal(t, fault.ErrSessionLocked, err, "by id")
	_, err = s.VaultByAddress("a")
	assert.Equal(t, fault.ErrSessionLocked, err, "by address")
	assert.Equal(t, fault.ErrSessionLocked, s.AddVault(makeVault("v", "n", "a")), "add")
	_, _, err = s.ImportVaults(nil)
	assert.Equal(t, fault.ErrSessionLocked, err, "import")
	_, err = s.ExportBackup()
	assert.Equal(t, fault.ErrSessionLocked, err, "export")
	_, err = s.ReadBackup(nil)
	assert.Equal(t, fault.ErrSessionLocked, err, "read backup")
	assert.True(t, fault.IsErrAuth(err), "wrong class")
}

func TestKeyIsCopy(t *testing.T) {
	store, db := setup(t)
	defer teardown(db)

	s, err := session.Unlock(store, signature, fixtures.SignerA, logger.New("session"))
	assert.Nil(t, err, "unlock error")

	k, err := s.Key()
	assert.Nil(t, err, "key error")
	k.Destroy()

	k2, err := s.Key()
	assert.Nil(t, err, "key error")
	assert.NotEqual(t, *k, *k2, "session key destroyed through copy")
}

func TestBackupAndImport(t *testing.T) {
	store, db := setup(t)
	defer teardown(db)

	s, err := session.Unlock(store, signature, fixtures.SignerA, logger.New("session"))
	assert.Nil(t, err, "unlock error")
	assert.Nil(t, s.AddVault(makeVault("v-1", "Treasury", "addr-1")), "add error")

	data, err := s.ExportBackup()
	assert.Nil(t, err, "export error")

	restored, err := s.ReadBackup(data)
	assert.Nil(t, err, "read error")

	restored = append(restored, makeVault("v-2", "Ops", "addr-2"))
	imported, skipped, err := s.ImportVaults(restored)
	assert.Nil(t, err, "import error")
	assert.Equal(t, 1, imported, "wrong imported count")
	assert.Equal(t, 1, skipped, "wrong skipped count")

	bad := makeVault("v-3", "Bad", "addr-3")
	bad.Threshold = 9
	_, _, err = s.ImportVaults([]*vault.Vault{bad})
	assert.Equal(t, fault.ErrInvalidThreshold, err, "invalid vault imported")

	n, _ := store.Count()
	assert.Equal(t, 2, n, "wrong stored count")
}

func TestUnlockWithSigner(t *testing.T) {
	store, db := setup(t)
	defer teardown(db)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	signer := mocks.NewMockSigner(ctl)
	gomock.InOrder(
		signer.EXPECT().Identity(gomock.Any()).Return(fixtures.SignerB, nil).Times(1),
		signer.EXPECT().SignMessage(gomock.Any(), session.UnlockMessage).Return(signature, nil).Times(1),
	)

	s, err := session.UnlockWithSigner(context.Background(), store, signer, logger.New("session"))
	assert.Nil(t, err, "unlock error")
	wallet, _ := s.Wallet()
	assert.Equal(t, fixtures.SignerB, wallet, "wrong wallet")
}
