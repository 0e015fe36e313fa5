// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - append-only log of broadcast transactions
package history

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

// Record - one transmitted transaction
type Record struct {
	TxID      string           `json:"txId"`
	VaultID   string           `json:"vaultId"`
	Timestamp int64            `json:"timestamp"`
	Context   proposal.Context `json:"context"`
}

// Store - transaction history persistence
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

func indexKey(vaultID string, txID string) []byte {
	key := make([]byte, 0, len(vaultID)+1+len(txID))
	key = append(key, vaultID...)
	key = append(key, 0x00)
	return append(key, txID...)
}

// Add - record a transaction; an existing id is never overwritten
func (s *Store) Add(r *Record) error {
	if nil == r || "" == r.TxID || "" == r.VaultID {
		return fault.ErrRequiredID
	}

	s.Lock()
	defer s.Unlock()

	found, err := s.db.Pool.TransactionHistory.Has([]byte(r.TxID))
	if nil != err {
		return err
	}
	if found {
		return fault.ErrTransactionExists
	}

	if 0 == r.Timestamp {
		r.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(r)
	if nil != err {
		return errors.Wrap(fault.ErrInvalidStructPointer, err.Error())
	}

	trx := s.db.NewTransaction()
	trx.Put(s.db.Pool.TransactionHistory, []byte(r.TxID), data)
	trx.Put(s.db.Pool.HistoryVaultIndex, indexKey(r.VaultID, r.TxID), []byte{})
	if err := trx.Commit(); nil != err {
		s.log.Errorf("add: %s  error: %s", r.TxID, err)
		return err
	}
	s.log.Infof("add: %s  vault: %s", r.TxID, r.VaultID)
	return nil
}

// Get - read one transaction record
func (s *Store) Get(txID string) (*Record, error) {
	data, err := s.db.Pool.TransactionHistory.Get([]byte(txID))
	if nil != err {
		return nil, err
	}
	if nil == data {
		return nil, fault.ErrTransactionNotFound
	}
	r := &Record{}
	if err := json.Unmarshal(data, r); nil != err {
		return nil, errors.Wrap(fault.ErrInvalidStructPointer, err.Error())
	}
	return r, nil
}

// ListByVault - transactions of one vault, newest first
func (s *Store) ListByVault(vaultID string) ([]*Record, error) {
	prefix := indexKey(vaultID, "")
	ids := []string{}
	err := s.db.Pool.HistoryVaultIndex.NewPrefixCursor(prefix).Map(func(key []byte, value []byte) error {
		ids = append(ids, string(key[len(prefix):]))
		return nil
	})
	if nil != err {
		return nil, err
	}

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.Get(id)
		if fault.Is(err, fault.ErrTransactionNotFound) {
			s.log.Warnf("vault: %s  index refers to missing transaction: %s", vaultID, id)
			continue
		}
		if nil != err {
			return nil, err
		}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}
