// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/history"
	"github.com/bitmark-inc/knox/proposal"
)

// Transmit - broadcast a proposal whose threshold is met
//
// on success the transaction is added to the history and the pending
// record removed; on failure the record is left untouched
func (e *Engine) Transmit(ctx context.Context, id string) (string, error) {
	record, err := e.pending.Get(id)
	if nil != err {
		return "", err
	}
	v, err := e.session.VaultByID(record.VaultID)
	if nil != err {
		return "", err
	}

	p := record.Proposal
	if proposal.ThresholdMet != proposal.Evaluate(p, v.Threshold, v.Signers) {
		return "", fault.ErrThresholdNotMet
	}

	txID, err := e.ledger.Broadcast(ctx, p.RawTx)
	if nil != err {
		e.log.Errorf("transmit: %s  broadcast error: %s", id, err)
		if fault.Is(err, fault.ErrBroadcastFailed) {
			return "", err
		}
		return "", errors.Wrap(fault.ErrBroadcastFailed, err.Error())
	}
	if "" == txID {
		txID = id
	} else if txID != id {
		e.log.Warnf("transmit: %s  ledger reported id: %s", id, txID)
	}

	err = e.history.Add(&history.Record{
		TxID:      id,
		VaultID:   v.ID,
		Timestamp: time.Now().UnixMilli(),
		Context:   *p.Context,
	})
	if nil != err && !fault.Is(err, fault.ErrTransactionExists) {
		e.log.Errorf("transmit: %s  history error: %s", id, err)
	}

	if err := e.pending.Delete(id); nil != err {
		e.log.Errorf("transmit: %s  pending delete error: %s", id, err)
	}

	e.log.Infof("transmit: %s  vault: %s  accepted", id, v.ID)
	return txID, nil
}

// Discard - drop a pending proposal
func (e *Engine) Discard(id string) error {
	if err := e.pending.Delete(id); nil != err {
		return err
	}
	e.log.Infof("discard: %s", id)
	return nil
}
