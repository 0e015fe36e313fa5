// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/pending"
	"github.com/bitmark-inc/knox/proposal"
	"github.com/bitmark-inc/knox/txlib"
)

// Sign - add the local wallet's signature to a pending proposal
//
// signing twice is a no-op.  A wallet that is not a declared signer of
// the vault, or a signer that declines, gives fault.ErrSigningRejected
func (e *Engine) Sign(ctx context.Context, id string) (*pending.Record, error) {
	record, err := e.pending.Get(id)
	if nil != err {
		return nil, err
	}
	v, err := e.session.VaultByID(record.VaultID)
	if nil != err {
		return nil, err
	}

	pkh, err := e.signer.Identity(ctx)
	if nil != err {
		return nil, rejected(err)
	}
	if !v.IsSigner(pkh) {
		e.log.Warnf("sign: %s  wallet: %s  is not a signer of vault: %s", id, pkh, v.ID)
		return nil, errors.Wrap(fault.ErrSigningRejected, fault.ErrUnauthorisedSigner.Error())
	}

	p := record.Proposal
	if p.HasSigned(pkh) {
		e.log.Infof("sign: %s  wallet: %s  already signed", id, pkh)
		return record, nil
	}

	result, err := e.signer.SignTransaction(ctx, &txlib.SignRequest{
		RawTx:           p.RawTx,
		Notes:           p.RawNotes(),
		SpendConditions: p.RawSpendConditions(),
	})
	if nil != err {
		e.log.Warnf("sign: %s  signer error: %s", id, err)
		return nil, rejected(err)
	}
	if nil == result || 0 == len(result.RawTx) {
		return nil, errors.Wrap(fault.ErrSigningRejected, "signer returned no transaction")
	}

	updated := p.Clone()
	updated.RawTx = result.RawTx
	updated.AddSignature(proposal.Signature{
		Pkh:       pkh,
		Signature: result.Signature,
	})

	record.Proposal = updated
	if err := e.pending.Put(record); nil != err {
		return nil, err
	}

	e.log.Infof("sign: %s  wallet: %s  signatures: %d of %d", id, pkh, proposal.CountValid(updated, v.Signers), v.Threshold)
	return record, nil
}

func rejected(err error) error {
	if fault.Is(err, fault.ErrSigningRejected) {
		return err
	}
	return errors.Wrap(fault.ErrSigningRejected, err.Error())
}
