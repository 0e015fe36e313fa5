// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/txlib"
	"github.com/bitmark-inc/knox/vault"
)

func runVaultCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := strings.TrimSpace(c.String("name"))
	if "" == name {
		return fault.ErrRequiredVaultName
	}

	threshold := c.Int("threshold")

	signers := []string{}
	for _, s := range c.StringSlice("signer") {
		s = strings.TrimSpace(s)
		if txlib.IsValidPublicKey(s) {
			pkh, err := txlib.PublicKeyToPkh(m.ctx, m.lib, s)
			if nil != err {
				return err
			}
			if m.verbose {
				fmt.Fprintf(m.e, "public key: %s  pkh: %s\n", s, pkh)
			}
			s = pkh
		}
		signers = append(signers, s)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "name: %s\n", name)
		fmt.Fprintf(m.e, "threshold: %d of %d\n", threshold, len(signers))
	}

	s, err := unlock(c, m)
	if nil != err {
		return err
	}

	config, err := vault.NewConfig(m.ctx, m.lib, threshold, signers)
	if nil != err {
		return err
	}
	v, err := vault.New(name, config)
	if nil != err {
		return err
	}
	if err := s.AddVault(v); nil != err {
		return err
	}

	printJson(m.w, v)
	return nil
}

func runVaultList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s, err := unlock(c, m)
	if nil != err {
		return err
	}
	vaults, err := s.Vaults()
	if nil != err {
		return err
	}

	printJson(m.w, vaults)
	return nil
}

func runVaultExport(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	file := c.String("file")
	if "" == file {
		file = vault.BackupFileName(time.Now())
	}

	s, err := unlock(c, m)
	if nil != err {
		return err
	}
	data, err := s.ExportBackup()
	if nil != err {
		return err
	}
	if err := vault.WriteFile(file, data); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "wrote: %d bytes\n", len(data))
	}
	printJson(m.w, map[string]string{"file": file})
	return nil
}

type importReply struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func runVaultImport(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	file := c.String("file")
	if "" == file {
		return fmt.Errorf("backup file is required")
	}
	data, err := os.ReadFile(file)
	if nil != err {
		return err
	}

	s, err := unlock(c, m)
	if nil != err {
		return err
	}

	// encrypted backups first, then the plain list form
	vaults, err := s.ReadBackup(data)
	if nil != err {
		if m.verbose {
			fmt.Fprintf(m.e, "not an encrypted backup: %s\n", err)
		}
		vaults, err = vault.ParseBackup(data)
		if nil != err {
			return err
		}
	}

	imported, skipped, err := s.ImportVaults(vaults)
	if nil != err {
		return err
	}

	printJson(m.w, importReply{Imported: imported, Skipped: skipped})
	return nil
}
