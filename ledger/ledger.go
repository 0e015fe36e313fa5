// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - balance queries and broadcast against a remote ledger
package ledger

//go:generate mockgen -source=ledger.go -destination=mocks/ledger.go -package=mocks

import (
	"context"

	"github.com/bitmark-inc/knox/note"
)

// Ledger - the network capability used by the engine
type Ledger interface {
	Balance(ctx context.Context, address string) ([]note.Note, error)
	Broadcast(ctx context.Context, rawTx []byte) (string, error)
}
