// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pending - proposals awaiting signatures or broadcast
//
// records are keyed by transaction id with a secondary index by vault:
//
//   P ++ id                    - JSON record
//   Q ++ vaultId ++ 0x00 ++ id - empty
package pending

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/proposal"
	"github.com/bitmark-inc/knox/storage"
)

// Record - one pending proposal
type Record struct {
	ID        string             `json:"id"`
	VaultID   string             `json:"vaultId"`
	Proposal  *proposal.Proposal `json:"proposal"`
	CreatedAt int64              `json:"createdAt"`
	UpdatedAt int64              `json:"updatedAt"`
}

// Store - pending proposal persistence
type Store struct {
	sync.Mutex
	log *logger.L
	db  *storage.Database
}

// New - create a store on an open database
func New(db *storage.Database, log *logger.L) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

func indexKey(vaultID string, id string) []byte {
	key := make([]byte, 0, len(vaultID)+1+len(id))
	key = append(key, vaultID...)
	key = append(key, 0x00)
	return append(key, id...)
}

// Put - create or replace a record
//
// a replaced record keeps its original creation time
func (s *Store) Put(r *Record) error {
	if nil == r || "" == r.ID || "" == r.VaultID {
		return fault.ErrRequiredID
	}
	if nil == r.Proposal {
		return fault.ErrInvalidProposal
	}

	s.Lock()
	defer s.Unlock()

	old, err := s.get(r.ID)
	if nil != err && !fault.Is(err, fault.ErrProposalNotFound) {
		return err
	}

	now := time.Now().UnixMilli()
	if nil != old {
		r.CreatedAt = old.CreatedAt
	} else if 0 == r.CreatedAt {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	data, err := json.Marshal(r)
	if nil != err {
		return errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}

	trx := s.db.NewTransaction()
	if nil != old && old.VaultID != r.VaultID {
		trx.Delete(s.db.Pool.ProposalVaultIndex, indexKey(old.VaultID, old.ID))
	}
	trx.Put(s.db.Pool.PendingProposals, []byte(r.ID), data)
	trx.Put(s.db.Pool.ProposalVaultIndex, indexKey(r.VaultID, r.ID), []byte{})
	if err := trx.Commit(); nil != err {
		s.log.Errorf("put: %s  error: %s", r.ID, err)
		return err
	}

	s.log.Infof("put: %s  vault: %s  signatures: %d", r.ID, r.VaultID, len(r.Proposal.Signatures))
	return nil
}

// Get - read one record
func (s *Store) Get(id string) (*Record, error) {
	s.Lock()
	defer s.Unlock()
	return s.get(id)
}

func (s *Store) get(id string) (*Record, error) {
	data, err := s.db.Pool.PendingProposals.Get([]byte(id))
	if nil != err {
		return nil, err
	}
	if nil == data {
		return nil, fault.ErrProposalNotFound
	}
	r := &Record{}
	if err := json.Unmarshal(data, r); nil != err {
		s.log.Warnf("record: %s  unreadable: %s", id, err)
		return nil, errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}
	return r, nil
}

// ListByVault - records of one vault, oldest first
func (s *Store) ListByVault(vaultID string) ([]*Record, error) {
	s.Lock()
	defer s.Unlock()

	ids := []string{}
	prefix := indexKey(vaultID, "")
	err := s.db.Pool.ProposalVaultIndex.NewPrefixCursor(prefix).Map(func(key []byte, value []byte) error {
		ids = append(ids, string(key[len(prefix):]))
		return nil
	})
	if nil != err {
		return nil, err
	}

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.get(id)
		if fault.Is(err, fault.ErrProposalNotFound) {
			s.log.Warnf("vault: %s  index refers to missing record: %s", vaultID, id)
			continue
		}
		if nil != err {
			return nil, err
		}
		records = append(records, r)
	}
	sortRecords(records)
	return records, nil
}

// List - every record, oldest first
func (s *Store) List() ([]*Record, error) {
	s.Lock()
	defer s.Unlock()

	records := []*Record{}
	err := s.db.Pool.PendingProposals.NewFetchCursor().Map(func(key []byte, value []byte) error {
		r := &Record{}
		if err := json.Unmarshal(value, r); nil != err {
			s.log.Warnf("record: %s  unreadable: %s", key, err)
			return nil
		}
		records = append(records, r)
		return nil
	})
	if nil != err {
		return nil, err
	}
	sortRecords(records)
	return records, nil
}

func sortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
}

// Delete - remove a record and its index entry
func (s *Store) Delete(id string) error {
	s.Lock()
	defer s.Unlock()

	r, err := s.get(id)
	if nil != err {
		return err
	}

	trx := s.db.NewTransaction()
	trx.Delete(s.db.Pool.PendingProposals, []byte(id))
	trx.Delete(s.db.Pool.ProposalVaultIndex, indexKey(r.VaultID, id))
	if err := trx.Commit(); nil != err {
		s.log.Errorf("delete: %s  error: %s", id, err)
		return err
	}

	s.log.Infof("delete: %s", id)
	return nil
}

// Count - number of pending records
func (s *Store) Count() (int, error) {
	return s.db.Pool.PendingProposals.Count()
}
