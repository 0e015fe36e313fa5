// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session - the state of one unlocked wallet
//
// A session is created by a successful unlock and holds the derived
// key, the wallet identity and the decrypted vaults.  Lock destroys the
// key; every later call returns fault.ErrSessionLocked.
package session

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/knox/envelope"
	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/recordstore"
	"github.com/bitmark-inc/knox/txlib"
	"github.com/bitmark-inc/knox/vault"
)

// UnlockMessage - the text a wallet signs to produce the session secret
const UnlockMessage = "Unlock Knox Multisig Vault Storage"

// Session - an unlocked wallet
type Session struct {
	mu     sync.RWMutex
	log    *logger.L
	store  *recordstore.Store
	key    *envelope.Key
	wallet string
	vaults *vault.Set
}

// Unlock - derive the key from a signature and load the stored vaults
//
// fails with fault.ErrAuthenticationFailed if no stored vault can be
// decrypted
func Unlock(store *recordstore.Store, signatureText string, walletPkh string, log *logger.L) (*Session, error) {
	key, err := envelope.DeriveSessionKey(signatureText)
	if nil != err {
		return nil, err
	}

	stored, err := recordstore.GetAll[vault.Vault](store, key)
	if nil != err {
		key.Destroy()
		return nil, err
	}

	set := vault.NewSet()
	for i := range stored {
		v := &stored[i]
		if err := v.Validate(); nil != err {
			log.Warnf("vault: %q  invalid: %s", v.ID, err)
			continue
		}
		if err := set.Add(v); nil != err {
			log.Warnf("vault: %q  address: %s  skipped: %s", v.ID, v.Address, err)
		}
	}

	log.Infof("unlocked: wallet: %s  vaults: %d", walletPkh, set.Len())

	return &Session{
		log:    log,
		store:  store,
		key:    key,
		wallet: walletPkh,
		vaults: set,
	}, nil
}

// UnlockWithSigner - obtain identity and signature from the wallet
func UnlockWithSigner(ctx context.Context, store *recordstore.Store, signer txlib.Signer, log *logger.L) (*Session, error) {
	pkh, err := signer.Identity(ctx)
	if nil != err {
		return nil, err
	}
	signature, err := signer.SignMessage(ctx, UnlockMessage)
	if nil != err {
		return nil, err
	}
	return Unlock(store, signature, pkh, log)
}

// Lock - destroy the key and forget the vaults
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nil == s.key {
		return
	}
	s.key.Destroy()
	s.key = nil
	s.vaults = nil
	s.log.Info("locked")
}

// IsLocked - true after Lock
func (s *Session) IsLocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nil == s.key
}

// Wallet - key hash of the unlocked wallet
func (s *Session) Wallet() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nil == s.key {
		return "", fault.ErrSessionLocked
	}
	return s.wallet, nil
}

// Key - a copy of the session key
func (s *Session) Key() (*envelope.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nil == s.key {
		return nil, fault.ErrSessionLocked
	}
	k := *s.key
	return &k, nil
}

// Vaults - all vaults ordered by name
func (s *Session) Vaults() ([]*vault.Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nil == s.key {
		return nil, fault.ErrSessionLocked
	}
	return s.vaults.List(), nil
}

// VaultByID - find a vault
func (s *Session) VaultByID(id string) (*vault.Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nil == s.key {
		return nil, fault.ErrSessionLocked
	}
	v, ok := s.vaults.ByID(id)
	if !ok {
		return nil, fault.ErrVaultNotFound
	}
	return v, nil
}

// VaultByAddress - find the vault locking an address
func (s *Session) VaultByAddress(address string) (*vault.Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nil == s.key {
		return nil, fault.ErrSessionLocked
	}
	v, ok := s.vaults.ByAddress(address)
	if !ok {
		return nil, fault.ErrVaultNotFound
	}
	return v, nil
}

// AddVault - persist a new vault
//
// a vault with the same threshold and signers already exists if the
// address is known, in which case fault.ErrDuplicateVault is returned
func (s *Session) AddVault(v *vault.Vault) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nil == s.key {
		return fault.ErrSessionLocked
	}
	return s.add(v)
}

func (s *Session) add(v *vault.Vault) error {
	if err := v.Validate(); nil != err {
		return err
	}
	if s.vaults.Has(v.Address) {
		return fault.ErrDuplicateVault
	}
	if _, ok := s.vaults.ByID(v.ID); ok {
		return fault.ErrDuplicateVault
	}
	if err := s.store.Put(v.ID, v, s.key); nil != err {
		s.log.Errorf("vault: %s  save error: %s", v.ID, err)
		return err
	}
	if err := s.vaults.Add(v); nil != err {
		return err
	}
	s.log.Infof("vault: %s  name: %q  added: %d of %d", v.ID, v.Name, v.Threshold, len(v.Signers))
	return nil
}

// ImportVaults - add restored vaults, skipping ones already present
func (s *Session) ImportVaults(vaults []*vault.Vault) (imported int, skipped int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nil == s.key {
		return 0, 0, fault.ErrSessionLocked
	}

	for _, v := range vaults {
		err := s.add(v)
		if fault.Is(err, fault.ErrDuplicateVault) {
			s.log.Infof("import: vault: %s  already present", v.ID)
			skipped += 1
			continue
		}
		if nil != err {
			return imported, skipped, err
		}
		imported += 1
	}
	return imported, skipped, nil
}

// ExportBackup - all vaults encrypted under the session key
func (s *Session) ExportBackup() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nil == s.key {
		return nil, fault.ErrSessionLocked
	}
	return vault.ExportBackup(s.vaults.List(), s.key)
}

// ReadBackup - decrypt a backup made by ExportBackup
func (s *Session) ReadBackup(data []byte) ([]*vault.Vault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if nil == s.key {
		return nil, fault.ErrSessionLocked
	}
	return vault.ReadEncryptedBackup(data, s.key)
}
