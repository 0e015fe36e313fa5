// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"
)

var idFlag = cli.StringFlag{
	Name:  "id, i",
	Value: "",
	Usage: "*proposal `ID`",
}

func proposalID(c *cli.Context) (string, error) {
	id := strings.TrimSpace(c.String("id"))
	if "" == id {
		return "", fmt.Errorf("proposal id is required")
	}
	return id, nil
}

func runReceive(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	input := c.String("proposal")
	if file := c.String("file"); "" != file {
		if "" != input {
			return fmt.Errorf("only one of proposal and file is allowed")
		}
		data, err := os.ReadFile(file)
		if nil != err {
			return err
		}
		input = string(data)
	}
	if "" == strings.TrimSpace(input) {
		return fmt.Errorf("proposal is required")
	}

	e, err := engine(c, m)
	if nil != err {
		return err
	}
	record, err := e.Receive(m.ctx, input)
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

func runReview(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := proposalID(c)
	if nil != err {
		return err
	}
	e, err := engine(c, m)
	if nil != err {
		return err
	}
	status, err := e.Status(id)
	if nil != err {
		return err
	}

	printJson(m.w, status)
	return nil
}

func runSign(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := proposalID(c)
	if nil != err {
		return err
	}
	e, err := engine(c, m)
	if nil != err {
		return err
	}
	if _, err := e.Sign(m.ctx, id); nil != err {
		return err
	}
	status, err := e.Status(id)
	if nil != err {
		return err
	}

	printJson(m.w, status)
	return nil
}

func runShare(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := proposalID(c)
	if nil != err {
		return err
	}
	base := c.String("base")
	if "" == base {
		base = m.config.LinkBase
	}

	e, err := engine(c, m)
	if nil != err {
		return err
	}
	shared, err := e.Share(id, base)
	if nil != err {
		return err
	}
	if shared.LinkTooLong {
		fmt.Fprintf(m.e, "warning: link is too long to share reliably, share the text blob instead\n")
	}

	printJson(m.w, shared)
	return nil
}

type transmitReply struct {
	ID string `json:"id"`
}

func runTransmit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := proposalID(c)
	if nil != err {
		return err
	}
	e, err := engine(c, m)
	if nil != err {
		return err
	}
	txID, err := e.Transmit(m.ctx, id)
	if nil != err {
		return err
	}

	printJson(m.w, transmitReply{ID: txID})
	return nil
}

func runDiscard(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := proposalID(c)
	if nil != err {
		return err
	}
	e, err := engine(c, m)
	if nil != err {
		return err
	}
	return e.Discard(id)
}

func runPending(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	e, err := engine(c, m)
	if nil != err {
		return err
	}
	list, err := e.Pending(c.String("vault"))
	if nil != err {
		return err
	}

	printJson(m.w, list)
	return nil
}

func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := unlock(c, m)
	if nil != err {
		return err
	}
	v, err := s.VaultByID(c.String("vault"))
	if nil != err {
		return err
	}
	records, err := m.history.ListByVault(v.ID)
	if nil != err {
		return err
	}

	printJson(m.w, records)
	return nil
}
