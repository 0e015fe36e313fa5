// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/fixtures"
	"github.com/bitmark-inc/knox/vault"
)

const validBackup = `[
  {
    "id": "v-1",
    "name": "Treasury",
    "threshold": 2,
    "signers": ["a", "b", "c"],
    "address": "addr-1",
    "spendConditionProtobuf": {"0": 10, "1": 20, "2": 30},
    "createdAt": 1700000000000
  },
  {
    "id": "v-2",
    "name": "Ops",
    "threshold": 1,
    "signers": ["a"],
    "address": "addr-2",
    "spendConditionProtobuf": [1, 2, 255]
  },
  {
    "id": "v-3",
    "name": "Payroll",
    "threshold": 1,
    "signers": ["b"],
    "address": "addr-3",
    "spendConditionProtobuf": "AQI="
  }
]`

func TestParseBackup(t *testing.T) {
	vaults, err := vault.ParseBackup([]byte(validBackup))
	assert.Nil(t, err, "parse error")
	assert.Equal(t, 3, len(vaults), "wrong vault count")

	assert.Equal(t, "v-1", vaults[0].ID, "wrong id")
	assert.Equal(t, 2, vaults[0].Threshold, "wrong threshold")
	assert.Equal(t, []string{"a", "b", "c"}, vaults[0].Signers, "wrong signers")
	assert.Equal(t, []byte{10, 20, 30}, vaults[0].SpendCondition, "indexed object bytes")
	assert.Equal(t, int64(1700000000000), vaults[0].CreatedAt, "wrong creation time")

	assert.Equal(t, []byte{1, 2, 255}, vaults[1].SpendCondition, "integer array bytes")
	assert.NotZero(t, vaults[1].CreatedAt, "default creation time")

	assert.Equal(t, []byte{1, 2}, vaults[2].SpendCondition, "base64 bytes")
}

func TestParseBackupNotArray(t *testing.T) {
	for _, s := range []string{`{}`, `[]`, `"text"`, `not json`} {
		_, err := vault.ParseBackup([]byte(s))
		assert.True(t, fault.Is(err, fault.ErrInvalidBackup), "%s: wrong error: %v", s, err)
	}
}

func TestParseBackupValidation(t *testing.T) {
	data := `[
	  {"id": "v-1", "name": "ok", "threshold": 1, "signers": ["a"], "address": "x"},
	  {"name": "", "threshold": 3, "signers": ["a", "b"], "address": "y"},
	  {"id": "v-3", "name": "dup", "threshold": "two", "signers": ["a", "a"]},
	  {"id": "v-4", "name": "n", "threshold": 1, "signers": [], "address": "z", "spendConditionProtobuf": [256]},
	  7
	]`

	vaults, err := vault.ParseBackup([]byte(data))
	assert.Nil(t, vaults, "vaults returned despite errors")
	assert.True(t, fault.Is(err, fault.ErrInvalidBackup), "wrong class: %v", err)

	verr, ok := err.(*vault.ValidationError)
	if !ok {
		t.Fatalf("not a validation error: %T", err)
	}

	found := map[string]bool{}
	for _, p := range verr.Problems {
		found[p.Field+"@"+string(rune('0'+p.Index))] = true
	}
	expected := []string{
		"id@1", "name@1", "threshold@1",
		"address@2", "threshold@2",
		"signers@3", "spendConditionProtobuf@3",
		"*@4",
	}
	for _, e := range expected {
		assert.True(t, found[e], "problem not reported: %s  in: %s", e, err)
	}
	assert.Contains(t, err.Error(), "1.id: missing", "message does not enumerate fields")
}

func TestExportImportBackup(t *testing.T) {
	vaults, err := vault.ParseBackup([]byte(validBackup))
	assert.Nil(t, err, "parse error")

	key := fixtures.Key(5)
	data, err := vault.ExportBackup(vaults, key)
	assert.Nil(t, err, "export error")
	assert.NotContains(t, string(data), "Treasury", "backup is not encrypted")

	path := filepath.Join(t.TempDir(), vault.BackupFileName(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "knox-backup-2024-03-09.json", filepath.Base(path), "wrong file name")
	assert.Nil(t, vault.WriteFile(path, data), "write error")

	read, err := os.ReadFile(path)
	assert.Nil(t, err, "read error")

	restored, err := vault.ReadEncryptedBackup(read, key)
	assert.Nil(t, err, "restore error")
	assert.Equal(t, vaults, restored, "restored vaults differ")

	_, err = vault.ReadEncryptedBackup(read, fixtures.Key(6))
	assert.True(t, fault.Is(err, fault.ErrDecryptionFailed), "wrong key accepted: %v", err)

	_, err = vault.ExportBackup(nil, key)
	assert.Equal(t, fault.ErrNoVaults, err, "empty export accepted")
}
