// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coinselect - choose the notes that fund a spend
//
// Selection is greedy, largest first: it minimises the number of
// notes consumed, not the change.  Changing the strategy changes the
// externally visible shape of the transaction.
package coinselect

import (
	"math/bits"
	"sort"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/note"
)

// Result - the outcome of a selection
//
//   TotalSelected == sum(Selected.Amount)
//   TotalSelected >= amount + fee
//   Change        == TotalSelected - amount - fee
type Result struct {
	Selected      []note.Note
	Change        uint64
	TotalSelected uint64
}

// Select - pick notes from available to cover amount plus fee
//
// the available slice is not modified.  TotalSelected is a uint64, so
// when the next note in largest first order would carry the running
// total past 64 bits the selection fails with fault.ErrAmountOverflow,
// even though the notes together would cover the target
func Select(available []note.Note, amount uint64, fee uint64) (*Result, error) {
	if 0 == amount {
		return nil, fault.ErrInvalidAmount
	}

	target, carry := bits.Add64(amount, fee, 0)
	if 0 != carry {
		return nil, errors.Wrap(fault.ErrInvalidAmount, "amount plus fee")
	}

	// an overflowing total certainly covers any 64 bit target
	totalAvailable, err := note.Total(available)
	if nil == err && totalAvailable < target {
		return nil, fault.ErrInsufficientFunds
	}

	sorted := make([]note.Note, len(available))
	copy(sorted, available)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	selected := make([]note.Note, 0, len(sorted))
	total := uint64(0)

loop:
	for _, n := range sorted {
		if total >= target {
			break loop
		}
		sum, carry := bits.Add64(total, n.Amount, 0)
		if 0 != carry {
			return nil, errors.Wrap(fault.ErrAmountOverflow, "selected notes exceed 64 bits")
		}
		selected = append(selected, n)
		total = sum
	}

	// unreachable when the pre-check holds, kept so the change can
	// never be negative
	if total < target {
		return nil, errors.Wrap(fault.ErrInsufficientFunds, "no valid combination of notes")
	}

	return &Result{
		Selected:      selected,
		Change:        total - target,
		TotalSelected: total,
	}, nil
}
