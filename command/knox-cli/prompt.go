// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/knox/fault"
)

// read the unlock signature from the controlling terminal without echo
func promptSignatureReader(wallet string) (string, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if nil != err {
		return "", err
	}
	defer tty.Close()

	fd := int(tty.Fd())
	oldState, err := terminal.MakeRaw(fd)
	if nil != err {
		return "", err
	}
	defer terminal.Restore(fd, oldState)

	console := terminal.NewTerminal(tty, "knox-cli: ")
	signature, err := console.ReadPassword("unlock signature for " + wallet + ": ")
	if nil != err {
		return "", err
	}

	signature = strings.TrimSpace(signature)
	if "" == signature {
		return "", fault.ErrEmptySignature
	}
	return signature, nil
}
