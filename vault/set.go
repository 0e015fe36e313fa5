// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"sync"

	"github.com/google/btree"

	"github.com/bitmark-inc/knox/fault"
)

const treeDegree = 8

// Set - the vaults of one session, listed by name
type Set struct {
	sync.RWMutex
	tree      *btree.BTreeG[*Vault]
	byID      map[string]*Vault
	byAddress map[string]*Vault
}

func less(a, b *Vault) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// NewSet - an empty set
func NewSet() *Set {
	return &Set{
		tree:      btree.NewG[*Vault](treeDegree, less),
		byID:      make(map[string]*Vault),
		byAddress: make(map[string]*Vault),
	}
}

// Add - insert a vault
//
// a vault whose address is already present is a duplicate policy
func (s *Set) Add(v *Vault) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.byAddress[v.Address]; ok {
		return fault.ErrDuplicateVault
	}
	if _, ok := s.byID[v.ID]; ok {
		return fault.ErrDuplicateVault
	}
	s.tree.ReplaceOrInsert(v)
	s.byID[v.ID] = v
	s.byAddress[v.Address] = v
	return nil
}

// Has - true if a vault with this address exists
func (s *Set) Has(address string) bool {
	s.RLock()
	defer s.RUnlock()
	_, ok := s.byAddress[address]
	return ok
}

// ByID - find a vault by id
func (s *Set) ByID(id string) (*Vault, bool) {
	s.RLock()
	defer s.RUnlock()
	v, ok := s.byID[id]
	return v, ok
}

// ByAddress - find a vault by address
func (s *Set) ByAddress(address string) (*Vault, bool) {
	s.RLock()
	defer s.RUnlock()
	v, ok := s.byAddress[address]
	return v, ok
}

// List - all vaults ordered by name
func (s *Set) List() []*Vault {
	s.RLock()
	defer s.RUnlock()
	vaults := make([]*Vault, 0, s.tree.Len())
	s.tree.Ascend(func(v *Vault) bool {
		vaults = append(vaults, v)
		return true
	})
	return vaults
}

// Len - number of vaults
func (s *Set) Len() int {
	s.RLock()
	defer s.RUnlock()
	return s.tree.Len()
}
