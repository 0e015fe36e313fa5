// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/knox/fault"
)

// PoolHandle - access to one prefixed table
type PoolHandle struct {
	prefix   byte
	limit    []byte
	database *Database
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) error {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return fault.ErrNotInitialised
	}
	return p.database.db.Put(p.prefixKey(key), value, nil)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) error {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return fault.ErrNotInitialised
	}
	return p.database.db.Delete(p.prefixKey(key), nil)
}

// Get - read a value for a given key
//
// returns nil, nil if the key does not exist
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return nil, fault.ErrNotInitialised
	}
	value, err := p.database.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return false, fault.ErrNotInitialised
	}
	return p.database.db.Has(p.prefixKey(key), nil)
}

// Count - number of records in the pool
func (p *PoolHandle) Count() (int, error) {
	p.database.RLock()
	defer p.database.RUnlock()
	if nil == p.database.db {
		return 0, fault.ErrNotInitialised
	}

	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}
	iter := p.database.db.NewIterator(&maxRange, nil)
	n := 0
	for iter.Next() {
		n += 1
	}
	iter.Release()
	return n, iter.Error()
}
