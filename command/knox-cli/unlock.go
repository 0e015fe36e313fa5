// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/multisig"
	"github.com/bitmark-inc/knox/session"
)

// unlock the local vault storage
//
// the signature over the unlock message comes from, in order:
// --signature, --use-agent, --prompt or the signer helper
func unlock(c *cli.Context, m *metadata) (*session.Session, error) {
	if nil != m.session {
		return m.session, nil
	}

	signature := strings.TrimSpace(c.GlobalString("signature"))
	agent := c.GlobalString("use-agent")
	prompt := c.GlobalBool("prompt")

	var s *session.Session
	var err error
	if "" == signature && "" == agent && !prompt {
		s, err = session.UnlockWithSigner(m.ctx, m.records, m.signer, logger.New("session"))
	} else {
		s, err = unlockWithSignature(m, signature, agent)
	}
	if nil != err {
		return nil, err
	}

	if m.verbose {
		if wallet, err := s.Wallet(); nil == err {
			fmt.Fprintf(m.e, "wallet: %s\n", wallet)
		}
	}
	m.session = s
	return s, nil
}

// unlock with a signature supplied outside the signer helper
func unlockWithSignature(m *metadata, signature string, agent string) (*session.Session, error) {
	wallet, err := m.signer.Identity(m.ctx)
	if nil != err {
		return nil, err
	}

	switch {
	case "" != signature:
	case "" != agent:
		signature, err = signatureFromAgent(m.ctx, wallet, agent)
	default:
		signature, err = promptSignatureReader(wallet)
	}
	if nil != err {
		return nil, err
	}
	if "" == signature {
		return nil, fault.ErrEmptySignature
	}

	return session.Unlock(m.records, signature, wallet, logger.New("session"))
}

// an engine over an unlocked session
func engine(c *cli.Context, m *metadata) (*multisig.Engine, error) {
	s, err := unlock(c, m)
	if nil != err {
		return nil, err
	}
	return multisig.New(logger.New("multisig"), s, m.pending, m.history, m.lib, m.signer, m.ledger), nil
}
