// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recordstore - persistence of opaque encrypted records
//
// The store owns one storage pool.  It never inspects plaintext: values
// are sealed by the envelope package before they are written and only
// opened again by GetAll.
package recordstore

import (
	"encoding/json"
	"runtime"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/knox/envelope"
	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/storage"
)

// EncryptedRecord - the stored form of one value
type EncryptedRecord struct {
	ID        string         `json:"id"`
	Blob      *envelope.Blob `json:"blob"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Store - encrypted records keyed by id
type Store struct {
	log  *logger.L
	pool *storage.PoolHandle
}

// New - create a store over a pool
func New(pool *storage.PoolHandle, log *logger.L) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Count - number of records currently stored
func (s *Store) Count() (int, error) {
	return s.pool.Count()
}

// Put - encrypt a value and store it under id, replacing any previous record
func (s *Store) Put(id string, value interface{}, key *envelope.Key) error {
	if "" == id {
		return fault.ErrRequiredID
	}

	blob, err := envelope.Wrap(value, key)
	if nil != err {
		return err
	}

	record := EncryptedRecord{
		ID:        id,
		Blob:      blob,
		UpdatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(record)
	if nil != err {
		return errors.Wrap(fault.ErrEncryptionFailed, err.Error())
	}

	return s.pool.Put([]byte(id), data)
}

// Delete - remove a record, absent ids are ignored
func (s *Store) Delete(id string) error {
	return s.pool.Delete([]byte(id))
}

// snapshot of all stored records in id order
func (s *Store) records() ([]EncryptedRecord, error) {
	records := make([]EncryptedRecord, 0)
	err := s.pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		var record EncryptedRecord
		if err := json.Unmarshal(value, &record); nil != err {
			// placeholder, reported with the decrypt failures
			records = append(records, EncryptedRecord{ID: string(key)})
			return nil
		}
		if record.ID != string(key) {
			s.log.Warnf("record: %q  has mismatched id: %q", key, record.ID)
			record.ID = string(key)
		}
		records = append(records, record)
		return nil
	})
	return records, err
}

// GetAll - decrypt every record in the store
//
// a record that cannot be opened is left out of the result and its id
// is listed in a single summary warning,
// but if no record can be opened the key is assumed to be wrong and
// fault.ErrAuthenticationFailed is returned
func GetAll[T any](s *Store, key *envelope.Key) ([]T, error) {
	records, err := s.records()
	if nil != err {
		return nil, err
	}
	if 0 == len(records) {
		return []T{}, nil
	}

	values := make([]T, len(records))
	ok := make([]bool, len(records))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for i := range records {
		i := i
		g.Go(func() error {
			if nil == records[i].Blob {
				return nil
			}
			if nil == envelope.Unwrap(records[i].Blob, key, &values[i]) {
				ok[i] = true
			}
			return nil
		})
	}
	g.Wait()

	result := make([]T, 0, len(records))
	excluded := make([]string, 0)
	for i, v := range values {
		if ok[i] {
			result = append(result, v)
		} else {
			excluded = append(excluded, records[i].ID)
		}
	}

	if 0 == len(result) {
		s.log.Errorf("all %d records failed to decrypt", len(excluded))
		return nil, fault.ErrAuthenticationFailed
	}
	if 0 != len(excluded) {
		s.log.Warnf("decrypted: %d of %d records, excluded: %s", len(result), len(records), strings.Join(excluded, ", "))
	}

	return result, nil
}
