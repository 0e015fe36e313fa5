// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/knox/multisig"
	"github.com/bitmark-inc/knox/note"
)

const defaultFee = "0.1"

func runSend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	amount, err := note.ParseNock(c.String("amount"))
	if nil != err {
		return err
	}
	fee, err := note.ParseNock(c.String("fee"))
	if nil != err {
		return err
	}

	request := &multisig.DraftRequest{
		VaultID:   c.String("vault"),
		Recipient: c.String("to"),
		Amount:    amount,
		Fee:       fee,
	}

	if m.verbose {
		fmt.Fprintf(m.e, "vault: %s\n", request.VaultID)
		fmt.Fprintf(m.e, "recipient: %s\n", request.Recipient)
		fmt.Fprintf(m.e, "amount: %d nicks\n", amount)
		fmt.Fprintf(m.e, "fee: %d nicks\n", fee)
	}

	e, err := engine(c, m)
	if nil != err {
		return err
	}
	record, err := e.Draft(m.ctx, request)
	if nil != err {
		return err
	}

	status, err := e.Status(record.ID)
	if nil != err {
		return err
	}

	printJson(m.w, status)
	return nil
}
