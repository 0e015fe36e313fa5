// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/pending"
	"github.com/bitmark-inc/knox/proposal"
	"github.com/bitmark-inc/knox/vault"
)

// SignerStatus - whether one declared signer has signed
type SignerStatus struct {
	Pkh    string `json:"pkh"`
	Signed bool   `json:"signed"`
}

// Status - progress of one proposal
type Status struct {
	ID         string            `json:"id"`
	VaultID    string            `json:"vaultId"`
	VaultName  string            `json:"vaultName"`
	State      proposal.State    `json:"state"`
	Threshold  int               `json:"threshold"`
	Collected  int               `json:"collected"`
	Counted    int               `json:"counted"`
	Signers    []SignerStatus    `json:"signers,omitempty"`
	Context    *proposal.Context `json:"context,omitempty"`
	CreatedAt  int64             `json:"createdAt,omitempty"`
	Unexpected []string          `json:"unexpectedSigners,omitempty"`
}

// Status - the current state of a proposal
//
// proposals no longer pending are looked up in the history
func (e *Engine) Status(id string) (*Status, error) {
	record, err := e.pending.Get(id)
	if fault.Is(err, fault.ErrProposalNotFound) {
		h, herr := e.history.Get(id)
		if nil != herr {
			return nil, err
		}
		ctx := h.Context
		return &Status{
			ID:      h.TxID,
			VaultID: h.VaultID,
			State:   proposal.Transmitted,
			Context: &ctx,
		}, nil
	}
	if nil != err {
		return nil, err
	}

	v, err := e.session.VaultByID(record.VaultID)
	if nil != err {
		return nil, err
	}
	return makeStatus(record, v), nil
}

// Pending - status of every pending proposal, or of one vault's
func (e *Engine) Pending(vaultID string) ([]*Status, error) {
	var records []*pending.Record
	var err error
	if "" == vaultID {
		records, err = e.pending.List()
	} else {
		records, err = e.pending.ListByVault(vaultID)
	}
	if nil != err {
		return nil, err
	}

	result := make([]*Status, 0, len(records))
	for _, r := range records {
		v, err := e.session.VaultByID(r.VaultID)
		if nil != err {
			e.log.Warnf("pending: %s  vault: %s  not available: %s", r.ID, r.VaultID, err)
			continue
		}
		result = append(result, makeStatus(r, v))
	}
	return result, nil
}

func makeStatus(record *pending.Record, v *vault.Vault) *Status {
	p := record.Proposal
	s := &Status{
		ID:        record.ID,
		VaultID:   v.ID,
		VaultName: v.Name,
		State:     proposal.Evaluate(p, v.Threshold, v.Signers),
		Threshold: v.Threshold,
		Collected: len(p.Signatures),
		Counted:   proposal.CountValid(p, v.Signers),
		Signers:   make([]SignerStatus, 0, len(v.Signers)),
		Context:   p.Context,
		CreatedAt: record.CreatedAt,
	}
	for _, pkh := range v.Signers {
		s.Signers = append(s.Signers, SignerStatus{Pkh: pkh, Signed: p.HasSigned(pkh)})
	}
	for _, sig := range p.Signatures {
		if !v.IsSigner(sig.Pkh) {
			s.Unexpected = append(s.Unexpected, sig.Pkh)
		}
	}
	return s
}
