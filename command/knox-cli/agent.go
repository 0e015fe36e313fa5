// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os/exec"
	"strings"

	"github.com/bitmark-inc/knox/session"
)

const (
	signatureTag = "knox-cli:unlock:"
)

// expect to execute agent with parameters
//   --confirm=1         - for additional confirm
//   cache-id            - allows the signature to be cached for a time
//   error-message       - blank
//   prompt              - names the wallet
//   description         - the message that was signed
func signatureFromAgent(ctx context.Context, wallet string, agent string) (string, error) {

	cacheId := signatureTag + wallet
	errorMessage := ""
	prompt := "Unlock signature for: " + wallet
	description := "Signature over: " + session.UnlockMessage

	arguments := []string{
		"--confirm=1",
		cacheId,
		errorMessage,
		prompt,
		description,
	}

	out, err := exec.CommandContext(ctx, agent, arguments...).Output()
	return strings.TrimSpace(string(out)), err
}
