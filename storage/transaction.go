// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/knox/fault"
)

// Transaction - a set of writes across pools applied atomically
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Commit() error
}

type transactionData struct {
	database *Database
	batch    *leveldb.Batch
}

// NewTransaction - begin collecting writes
func (d *Database) NewTransaction() Transaction {
	return &transactionData{
		database: d,
		batch:    new(leveldb.Batch),
	}
}

func (t *transactionData) Put(handle *PoolHandle, key []byte, value []byte) {
	t.batch.Put(handle.prefixKey(key), value)
}

func (t *transactionData) Delete(handle *PoolHandle, key []byte) {
	t.batch.Delete(handle.prefixKey(key))
}

// Commit - write all collected changes, last write wins per key
func (t *transactionData) Commit() error {
	t.database.RLock()
	defer t.database.RUnlock()
	if nil == t.database.db {
		return fault.ErrNotInitialised
	}
	err := t.database.db.Write(t.batch, nil)
	t.batch.Reset()
	return err
}
