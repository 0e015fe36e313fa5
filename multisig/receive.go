// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"bytes"
	"context"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/pending"
	"github.com/bitmark-inc/knox/proposal"
)

// Receive - accept a shared proposal in any surface form
//
// the proposal must belong to a local vault.  A copy already held
// locally is replaced only if the received signatures extend the local
// ones unchanged, so held signatures are never lost, rewritten or
// reordered
func (e *Engine) Receive(ctx context.Context, input string) (*pending.Record, error) {
	p, err := proposal.Parse(input)
	if nil != err {
		return nil, err
	}

	if _, _, _, err := p.Context.Amounts(); nil != err {
		return nil, fault.ErrInvalidProposal
	}

	v, err := e.session.VaultByAddress(p.Context.VaultAddress)
	if nil != err {
		return nil, err
	}

	id, err := e.lib.TransactionID(ctx, p.RawTx)
	if nil != err {
		return nil, err
	}

	existing, err := e.pending.Get(id)
	if nil != err && !fault.Is(err, fault.ErrProposalNotFound) {
		return nil, err
	}

	if nil != existing {
		switch {
		case extends(p, existing.Proposal):
			// received copy is the same or newer
		case extends(existing.Proposal, p):
			e.log.Infof("receive: %s  local copy is newer", id)
			return existing, nil
		default:
			e.log.Warnf("receive: %s  signatures diverge from local copy", id)
			return nil, fault.ErrProposalDiverged
		}
	}

	record := &pending.Record{
		ID:       id,
		VaultID:  v.ID,
		Proposal: p,
	}
	if err := e.pending.Put(record); nil != err {
		return nil, err
	}

	e.log.Infof("receive: %s  vault: %s  signatures: %d", id, v.ID, len(p.Signatures))
	return record, nil
}

// true if the signatures of b are a prefix of those of a, in the same
// order and with identical signature bytes
func extends(a *proposal.Proposal, b *proposal.Proposal) bool {
	if len(b.Signatures) > len(a.Signatures) {
		return false
	}
	for i, s := range b.Signatures {
		if s.Pkh != a.Signatures[i].Pkh || !bytes.Equal(s.Signature, a.Signatures[i].Signature) {
			return false
		}
	}
	return true
}
