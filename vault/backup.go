// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/envelope"
	"github.com/bitmark-inc/knox/fault"
)

// FieldError - one problem with one vault in a backup
type FieldError struct {
	Index  int
	Field  string
	Reason string
}

// ValidationError - every problem found in a backup
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	s := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		s = append(s, fmt.Sprintf("%d.%s: %s", p.Index, p.Field, p.Reason))
	}
	return fault.ErrInvalidBackup.Error() + ": " + strings.Join(s, "; ")
}

// Cause - the fault class of a validation error
func (e *ValidationError) Cause() error {
	return fault.ErrInvalidBackup
}

// ParseBackup - read an unencrypted JSON array of vaults
//
// every element is checked before any vault is built; all problems are
// reported together in a *ValidationError
func ParseBackup(data []byte) ([]*Vault, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); nil != err {
		return nil, errors.Wrap(fault.ErrInvalidBackup, err.Error())
	}
	if 0 == len(items) {
		return nil, fault.ErrInvalidBackup
	}

	problems := []FieldError{}
	vaults := make([]*Vault, 0, len(items))

	for i, item := range items {
		v, p := parseItem(i, item)
		problems = append(problems, p...)
		if nil != v {
			vaults = append(vaults, v)
		}
	}

	if 0 != len(problems) {
		return nil, &ValidationError{Problems: problems}
	}
	return vaults, nil
}

func parseItem(index int, item json.RawMessage) (*Vault, []FieldError) {
	problems := []FieldError{}
	add := func(field string, reason string) {
		problems = append(problems, FieldError{Index: index, Field: field, Reason: reason})
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); nil != err || nil == fields {
		add("*", "not an object")
		return nil, problems
	}

	v := &Vault{}

	readString := func(name string, target *string) {
		raw, ok := fields[name]
		if !ok {
			add(name, "missing")
			return
		}
		if err := json.Unmarshal(raw, target); nil != err {
			add(name, "not a string")
			return
		}
		if "" == strings.TrimSpace(*target) {
			add(name, "empty")
		}
	}
	readString("id", &v.ID)
	readString("name", &v.Name)
	readString("address", &v.Address)

	signersOK := false
	if raw, ok := fields["signers"]; !ok {
		add("signers", "missing")
	} else if err := json.Unmarshal(raw, &v.Signers); nil != err {
		add("signers", "not an array of strings")
	} else if 0 == len(v.Signers) {
		add("signers", "empty")
	} else {
		signersOK = true
	}

	if raw, ok := fields["threshold"]; !ok {
		add("threshold", "missing")
	} else if err := json.Unmarshal(raw, &v.Threshold); nil != err {
		add("threshold", "not an integer")
	} else if signersOK {
		if _, err := checkPolicy(v.Threshold, v.Signers); nil != err {
			field := "threshold"
			if fault.ErrDuplicateSigner == err || fault.ErrInvalidAddress == err {
				field = "signers"
			}
			add(field, err.Error())
		}
	}

	if raw, ok := fields["spendConditionProtobuf"]; ok {
		b, err := flexibleBytes(raw)
		if nil != err {
			add("spendConditionProtobuf", err.Error())
		}
		v.SpendCondition = b
	}

	if raw, ok := fields["createdAt"]; ok {
		if err := json.Unmarshal(raw, &v.CreatedAt); nil != err {
			add("createdAt", "not an integer")
		}
	} else {
		v.CreatedAt = time.Now().UnixMilli()
	}

	if 0 != len(problems) {
		return nil, problems
	}
	return v, nil
}

// byte fields may arrive as a base64 string, an array of integers or
// an object keyed by index
func flexibleBytes(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if 0 == len(raw) || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); nil != err {
			return nil, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if nil != err {
			return nil, fmt.Errorf("invalid base64")
		}
		return b, nil

	case '[':
		var ints []int
		if err := json.Unmarshal(raw, &ints); nil != err {
			return nil, fmt.Errorf("not an array of integers")
		}
		return intsToBytes(ints)

	case '{':
		var m map[string]int
		if err := json.Unmarshal(raw, &m); nil != err {
			return nil, fmt.Errorf("not an indexed object of integers")
		}
		keys := make([]int, 0, len(m))
		for k := range m {
			n, err := strconv.Atoi(k)
			if nil != err || n < 0 {
				return nil, fmt.Errorf("bad index: %q", k)
			}
			keys = append(keys, n)
		}
		sort.Ints(keys)
		ints := make([]int, len(keys))
		for i, k := range keys {
			if i != k {
				return nil, fmt.Errorf("missing index: %d", i)
			}
			ints[i] = m[strconv.Itoa(k)]
		}
		return intsToBytes(ints)
	}
	return nil, fmt.Errorf("unsupported byte encoding")
}

func intsToBytes(ints []int) ([]byte, error) {
	b := make([]byte, len(ints))
	for i, n := range ints {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("byte out of range at: %d", i)
		}
		b[i] = byte(n)
	}
	return b, nil
}

// ExportBackup - encrypt a list of vaults for export
func ExportBackup(vaults []*Vault, key *envelope.Key) ([]byte, error) {
	if 0 == len(vaults) {
		return nil, fault.ErrNoVaults
	}
	blob, err := envelope.Wrap(vaults, key)
	if nil != err {
		return nil, err
	}
	return json.MarshalIndent(blob, "", "  ")
}

// ReadEncryptedBackup - decrypt and check an exported backup
func ReadEncryptedBackup(data []byte, key *envelope.Key) ([]*Vault, error) {
	var blob envelope.Blob
	if err := json.Unmarshal(data, &blob); nil != err {
		return nil, errors.Wrap(fault.ErrInvalidBackup, err.Error())
	}

	var vaults []*Vault
	if err := envelope.Unwrap(&blob, key, &vaults); nil != err {
		return nil, err
	}

	problems := []FieldError{}
	for i, v := range vaults {
		if err := v.Validate(); nil != err {
			problems = append(problems, FieldError{Index: i, Field: "*", Reason: err.Error()})
		}
	}
	if 0 != len(problems) {
		return nil, &ValidationError{Problems: problems}
	}
	return vaults, nil
}

// BackupFileName - the default name for a backup written at t
func BackupFileName(t time.Time) string {
	return "knox-backup-" + t.UTC().Format("2006-01-02") + ".json"
}

// WriteFile - replace a backup file atomically
func WriteFile(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0600)
}
