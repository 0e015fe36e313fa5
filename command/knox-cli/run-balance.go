// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/knox/note"
)

const displayPlaces = 5

type noteReply struct {
	Name   note.Name `json:"name"`
	Nicks  uint64    `json:"nicks"`
	Amount string    `json:"nock"`
}

type balanceReply struct {
	Vault  string      `json:"vault"`
	Notes  []noteReply `json:"notes"`
	Nicks  uint64      `json:"totalNicks"`
	Amount string      `json:"totalNock"`
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := unlock(c, m)
	if nil != err {
		return err
	}
	v, err := s.VaultByID(c.String("vault"))
	if nil != err {
		return err
	}

	notes, err := m.ledger.Balance(m.ctx, v.Address)
	if nil != err {
		return err
	}
	total, err := note.Total(notes)
	if nil != err {
		return err
	}

	reply := balanceReply{
		Vault:  v.ID,
		Notes:  make([]noteReply, 0, len(notes)),
		Nicks:  total,
		Amount: note.FormatNock(total, displayPlaces),
	}
	for _, n := range notes {
		reply.Notes = append(reply.Notes, noteReply{
			Name:   n.Name,
			Nicks:  n.Amount,
			Amount: note.FormatNock(n.Amount, displayPlaces),
		})
	}

	printJson(m.w, reply)
	return nil
}
