// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package multisig - the proposal engine
//
// The engine moves proposals through their states:
//
//   Drafted -> PartiallySigned -> ThresholdMet -> Transmitted
//
// with Discarded reachable from any non-terminal state.  Only
// signatures from a vault's declared signers count toward its
// threshold.  A failed broadcast leaves the proposal pending so it can
// be retried.
package multisig

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/knox/history"
	"github.com/bitmark-inc/knox/ledger"
	"github.com/bitmark-inc/knox/pending"
	"github.com/bitmark-inc/knox/session"
	"github.com/bitmark-inc/knox/txlib"
)

// Engine - proposal operations for one unlocked session
type Engine struct {
	log     *logger.L
	session *session.Session
	pending *pending.Store
	history *history.Store
	lib     txlib.Library
	signer  txlib.Signer
	ledger  ledger.Ledger
}

// New - create an engine
func New(
	log *logger.L,
	s *session.Session,
	pendingStore *pending.Store,
	historyStore *history.Store,
	lib txlib.Library,
	signer txlib.Signer,
	l ledger.Ledger,
) *Engine {
	return &Engine{
		log:     log,
		session: s,
		pending: pendingStore,
		history: historyStore,
		lib:     lib,
		signer:  signer,
		ledger:  l,
	}
}
