// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package note - unspent value records observed on the ledger
//
// A note is either fully consumed by a transaction or left untouched;
// nothing in this module ever changes one.
package note

import (
	"math/big"
	"math/bits"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/knox/fault"
)

// NicksPerNock - smallest units in one display unit
const NicksPerNock = 65536

// Name - the two part note name assigned by the ledger
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Note - an unspent value record
//
// Raw is the opaque protobuf form consumed by the transaction library
type Note struct {
	Name   Name   `json:"name"`
	Amount uint64 `json:"amount"`
	Raw    []byte `json:"raw"`
}

// Total - sum of all note amounts
//
// returns fault.ErrAmountOverflow if the sum does not fit in 64 bits
func Total(notes []Note) (uint64, error) {
	total := uint64(0)
	for _, n := range notes {
		sum, carry := bits.Add64(total, n.Amount, 0)
		if 0 != carry {
			return 0, fault.ErrAmountOverflow
		}
		total = sum
	}
	return total, nil
}

// RawNotes - extract the opaque encodings in order
func RawNotes(notes []Note) [][]byte {
	raw := make([][]byte, 0, len(notes))
	for _, n := range notes {
		raw = append(raw, n.Raw)
	}
	return raw
}

// FormatNock - convert nicks to a display string in NOCK
func FormatNock(nicks uint64, places int32) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(nicks), 0)
	return d.Div(decimal.NewFromInt(NicksPerNock)).StringFixed(places)
}

// ParseNock - convert a display amount in NOCK to nicks, rounding to
// the nearest nick
func ParseNock(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if nil != err {
		return 0, fault.ErrInvalidAmount
	}
	if d.IsNegative() {
		return 0, fault.ErrInvalidAmount
	}
	nicks := d.Mul(decimal.NewFromInt(NicksPerNock)).Round(0)
	b := nicks.BigInt()
	if !b.IsUint64() {
		return 0, fault.ErrAmountOverflow
	}
	return b.Uint64(), nil
}
