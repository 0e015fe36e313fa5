// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/knox/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// common test setup routines

// configure for testing
func setup(t *testing.T) (*storage.Database, string) {
	path := filepath.Join(t.TempDir(), databaseFileName)
	db, err := storage.Open(path, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return db, path
}

// post test cleanup
func teardown(db *storage.Database) {
	db.Close()
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// this is the expected order
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one(NEW)"},
	{"key-seven", "data-seven"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
	// {"key-one", "data-one"}, // this was removed
})

// a key that must not exist
var nonExistantKey = []byte("/nonexistant")
