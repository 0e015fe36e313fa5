// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault - m-of-n multisignature vaults
package vault

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/txlib"
)

// Vault - a spending policy and the address it locks
//
// Address is a pure function of Threshold and Signers, so two vaults
// with the same policy always share an address
type Vault struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Threshold      int      `json:"threshold"`
	Signers        []string `json:"signers"`
	Address        string   `json:"address"`
	SpendCondition []byte   `json:"spendConditionProtobuf"`
	CreatedAt      int64    `json:"createdAt"` // milliseconds since the epoch
}

// Config - the derived parts of a vault
type Config struct {
	Threshold      int
	Signers        []string
	Address        string
	SpendCondition []byte
}

// NewConfig - check a policy and derive its spend condition and address
func NewConfig(ctx context.Context, lib txlib.Library, threshold int, signers []string) (*Config, error) {
	cleaned, err := checkPolicy(threshold, signers)
	if nil != err {
		return nil, err
	}

	spendCondition, err := lib.NewSpendCondition(ctx, threshold, cleaned)
	if nil != err {
		return nil, err
	}

	address, err := lib.HashSpendCondition(ctx, spendCondition)
	if nil != err {
		return nil, err
	}
	if "" == address {
		return nil, fault.ErrInvalidAddress
	}

	return &Config{
		Threshold:      threshold,
		Signers:        cleaned,
		Address:        address,
		SpendCondition: spendCondition,
	}, nil
}

// New - name a configuration and give it an identity
func New(name string, config *Config) (*Vault, error) {
	name = strings.TrimSpace(name)
	if "" == name {
		return nil, fault.ErrRequiredVaultName
	}
	if nil == config {
		return nil, fault.ErrMissingSigners
	}

	signers := make([]string, len(config.Signers))
	copy(signers, config.Signers)

	return &Vault{
		ID:             uuid.NewString(),
		Name:           name,
		Threshold:      config.Threshold,
		Signers:        signers,
		Address:        config.Address,
		SpendCondition: config.SpendCondition,
		CreatedAt:      time.Now().UnixMilli(),
	}, nil
}

// IsSigner - true if pkh is one of the declared signers
func (v *Vault) IsSigner(pkh string) bool {
	for _, s := range v.Signers {
		if s == pkh {
			return true
		}
	}
	return false
}

// Validate - check the invariants of a vault read from outside
func (v *Vault) Validate() error {
	if "" == v.ID {
		return fault.ErrRequiredID
	}
	if "" == strings.TrimSpace(v.Name) {
		return fault.ErrRequiredVaultName
	}
	if "" == v.Address {
		return fault.ErrInvalidAddress
	}
	_, err := checkPolicy(v.Threshold, v.Signers)
	return err
}

// signers are trimmed, must be present and unique; order is kept
func checkPolicy(threshold int, signers []string) ([]string, error) {
	if 0 == len(signers) {
		return nil, fault.ErrMissingSigners
	}
	if threshold < 1 || threshold > len(signers) {
		return nil, fault.ErrInvalidThreshold
	}

	seen := make(map[string]struct{}, len(signers))
	cleaned := make([]string, 0, len(signers))
	for _, s := range signers {
		s = strings.TrimSpace(s)
		if "" == s {
			return nil, fault.ErrInvalidAddress
		}
		if _, ok := seen[s]; ok {
			return nil, fault.ErrDuplicateSigner
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}
	return cleaned, nil
}
