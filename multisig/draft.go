// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"context"
	"strconv"
	"strings"

	"github.com/bitmark-inc/knox/coinselect"
	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/note"
	"github.com/bitmark-inc/knox/pending"
	"github.com/bitmark-inc/knox/proposal"
	"github.com/bitmark-inc/knox/txlib"
)

// DraftRequest - a spend from one vault
type DraftRequest struct {
	VaultID   string
	Recipient string
	Amount    uint64 // nicks
	Fee       uint64 // nicks
}

// Draft - select notes, build the transaction and save a new proposal
func (e *Engine) Draft(ctx context.Context, request *DraftRequest) (*pending.Record, error) {
	v, err := e.session.VaultByID(request.VaultID)
	if nil != err {
		return nil, err
	}
	recipient := strings.TrimSpace(request.Recipient)
	if "" == recipient {
		return nil, fault.ErrRequiredRecipient
	}

	notes, err := e.ledger.Balance(ctx, v.Address)
	if nil != err {
		e.log.Errorf("draft: vault: %s  balance error: %s", v.ID, err)
		return nil, err
	}

	selection, err := coinselect.Select(notes, request.Amount, request.Fee)
	if nil != err {
		e.log.Warnf("draft: vault: %s  selection error: %s", v.ID, err)
		return nil, err
	}

	built, err := e.lib.BuildTransaction(ctx, &txlib.BuildRequest{
		Notes:           note.RawNotes(selection.Selected),
		SpendConditions: [][]byte{v.SpendCondition},
		Recipient:       recipient,
		Amount:          request.Amount,
		Fee:             request.Fee,
		RefundAddress:   v.Address,
	})
	if nil != err {
		e.log.Errorf("draft: vault: %s  build error: %s", v.ID, err)
		return nil, err
	}

	p := &proposal.Proposal{
		RawTx:           built.RawTx,
		Notes:           proposal.FromRaw(built.Notes),
		SpendConditions: proposal.FromRaw(built.SpendConditions),
		Context: &proposal.Context{
			VaultAddress:      v.Address,
			RecipientAddress:  recipient,
			AmountToSendNicks: strconv.FormatUint(request.Amount, 10),
			FeeNicks:          strconv.FormatUint(request.Fee, 10),
			ChangeAmountNicks: strconv.FormatUint(selection.Change, 10),
			SourceVaultName:   v.Name,
		},
		Signatures: []proposal.Signature{},
	}

	id, err := e.lib.TransactionID(ctx, built.RawTx)
	if nil != err {
		return nil, err
	}

	record := &pending.Record{
		ID:       id,
		VaultID:  v.ID,
		Proposal: p,
	}
	if err := e.pending.Put(record); nil != err {
		return nil, err
	}

	e.log.Infof("draft: %s  vault: %s  notes: %d  amount: %d  fee: %d  change: %d", id, v.ID, len(selection.Selected), request.Amount, request.Fee, selection.Change)
	return record, nil
}
