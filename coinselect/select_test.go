// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinselect_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/knox/coinselect"
	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/note"
)

func makeNotes(amounts ...uint64) []note.Note {
	notes := make([]note.Note, 0, len(amounts))
	for i, a := range amounts {
		notes = append(notes, note.Note{
			Name:   note.Name{First: "first", Last: string(rune('a' + i))},
			Amount: a,
			Raw:    []byte{byte(i)},
		})
	}
	return notes
}

func TestSelectLargestFirst(t *testing.T) {
	notes := makeNotes(100000, 500000, 300000)

	r, err := coinselect.Select(notes, 600000, 10000)
	assert.Nil(t, err, "wrong select error")
	assert.Equal(t, 2, len(r.Selected), "wrong note count")
	assert.Equal(t, uint64(500000), r.Selected[0].Amount, "wrong first note")
	assert.Equal(t, uint64(300000), r.Selected[1].Amount, "wrong second note")
	assert.Equal(t, uint64(800000), r.TotalSelected, "wrong total")
	assert.Equal(t, uint64(190000), r.Change, "wrong change")

	// input must not be reordered
	assert.Equal(t, uint64(100000), notes[0].Amount, "input modified")
}

func TestSelectExactMatch(t *testing.T) {
	notes := makeNotes(400, 600)

	r, err := coinselect.Select(notes, 990, 10)
	assert.Nil(t, err, "wrong select error")
	assert.Equal(t, 2, len(r.Selected), "wrong note count")
	assert.Equal(t, uint64(0), r.Change, "wrong change")
}

func TestSelectStableTies(t *testing.T) {
	notes := makeNotes(200, 200, 200)

	r, err := coinselect.Select(notes, 300, 0)
	assert.Nil(t, err, "wrong select error")
	assert.Equal(t, 2, len(r.Selected), "wrong note count")
	assert.Equal(t, []byte{0}, r.Selected[0].Raw, "tie order not preserved")
	assert.Equal(t, []byte{1}, r.Selected[1].Raw, "tie order not preserved")
}

func TestSelectInsufficientFunds(t *testing.T) {
	notes := makeNotes(500000, 300000, 100000)

	_, err := coinselect.Select(notes, 900000, 1)
	assert.True(t, fault.Is(err, fault.ErrInsufficientFunds), "wrong error: %v", err)

	_, err = coinselect.Select(nil, 1, 0)
	assert.True(t, fault.Is(err, fault.ErrInsufficientFunds), "wrong empty error: %v", err)
}

func TestSelectInvalidAmount(t *testing.T) {
	notes := makeNotes(500)

	_, err := coinselect.Select(notes, 0, 10)
	assert.Equal(t, fault.ErrInvalidAmount, err, "wrong zero amount error")

	_, err = coinselect.Select(notes, math.MaxUint64, 1)
	assert.True(t, fault.Is(err, fault.ErrInvalidAmount), "wrong overflow error: %v", err)
}

func TestSelectOverflowingAvailable(t *testing.T) {
	notes := makeNotes(math.MaxUint64-5, 10, 3)

	r, err := coinselect.Select(notes, 7, 0)
	assert.Nil(t, err, "wrong select error")
	assert.Equal(t, 1, len(r.Selected), "wrong note count")
	assert.Equal(t, uint64(math.MaxUint64-12), r.Change, "wrong change")
}

func TestSelectOverflowingSelection(t *testing.T) {
	notes := makeNotes(math.MaxUint64-5, 10)

	// enough funds, but the second note carries the total past 64 bits
	r, err := coinselect.Select(notes, math.MaxUint64-3, 0)
	assert.Nil(t, r, "result returned on overflow")
	assert.True(t, fault.Is(err, fault.ErrAmountOverflow), "wrong error: %v", err)
	assert.False(t, fault.Is(err, fault.ErrInsufficientFunds), "overflow reported as insufficient funds")
}

// conservation of value over random inputs
func TestSelectConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i += 1 {
		count := rng.Intn(20)
		amounts := make([]uint64, count)
		sum := uint64(0)
		for j := range amounts {
			amounts[j] = uint64(rng.Intn(1000000))
			sum += amounts[j]
		}
		notes := makeNotes(amounts...)

		amount := uint64(rng.Intn(2000000)) + 1
		fee := uint64(rng.Intn(10000))

		r, err := coinselect.Select(notes, amount, fee)
		if sum < amount+fee {
			assert.True(t, fault.Is(err, fault.ErrInsufficientFunds), "%d: expected insufficient funds: %v", i, err)
			continue
		}
		if !assert.Nil(t, err, "%d: unexpected error", i) {
			continue
		}

		selectedTotal, err := note.Total(r.Selected)
		assert.Nil(t, err, "%d: total error", i)
		assert.Equal(t, selectedTotal, r.TotalSelected, "%d: wrong total", i)
		assert.Equal(t, amount+fee, r.TotalSelected-r.Change, "%d: value not conserved", i)
		assert.True(t, r.TotalSelected >= amount+fee, "%d: target not met", i)
	}
}
