// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
)

// Signature - one signer's contribution
type Signature struct {
	Pkh       string `json:"pkh"`
	Signature Bytes  `json:"signature"`
}

// Context - the human readable description of a transaction
//
// it travels beside the transaction and is never derived from it, a
// receiver must cross-check the two before signing
type Context struct {
	VaultAddress      string `json:"vaultAddress"`
	RecipientAddress  string `json:"recipientAddress"`
	AmountToSendNicks string `json:"amountToSendNicks"`
	FeeNicks          string `json:"feeNicks"`
	ChangeAmountNicks string `json:"changeAmountNicks"`
	SourceVaultName   string `json:"sourceVaultName"`
}

// Proposal - an in-flight transaction shared between signers
type Proposal struct {
	RawTx           Bytes       `json:"rawTxProto"`
	Notes           []Bytes     `json:"notesProto"`
	SpendConditions []Bytes     `json:"spendConditionsProto"`
	Context         *Context    `json:"context"`
	Signatures      []Signature `json:"signatures"`
}

// Amounts - the context amounts as 256 bit integers
func (c *Context) Amounts() (amount *uint256.Int, fee *uint256.Int, change *uint256.Int, err error) {
	amount, err = parseAmount("amountToSendNicks", c.AmountToSendNicks)
	if nil != err {
		return
	}
	fee, err = parseAmount("feeNicks", c.FeeNicks)
	if nil != err {
		return
	}
	change, err = parseAmount("changeAmountNicks", c.ChangeAmountNicks)
	return
}

// plain decimal digits only, no sign or exponent
func parseAmount(name string, s string) (*uint256.Int, error) {
	if "" == s {
		return nil, errors.Wrapf(fault.ErrInvalidAmount, "%s: empty", name)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return nil, errors.Wrapf(fault.ErrInvalidAmount, "%s: %q", name, s)
		}
	}
	n, err := uint256.FromDecimal(s)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrInvalidAmount, "%s: %q", name, s)
	}
	return n, nil
}

// HasSigned - true if pkh already has a signature on the proposal
func (p *Proposal) HasSigned(pkh string) bool {
	for _, s := range p.Signatures {
		if s.Pkh == pkh {
			return true
		}
	}
	return false
}

// AddSignature - append a signature unless the signer already signed
//
// existing entries are never replaced or reordered; returns false if
// nothing was added
func (p *Proposal) AddSignature(sig Signature) bool {
	if p.HasSigned(sig.Pkh) {
		return false
	}
	p.Signatures = append(p.Signatures, sig)
	return true
}

// Clone - a deep copy
func (p *Proposal) Clone() *Proposal {
	if nil == p {
		return nil
	}
	c := &Proposal{
		RawTx:           p.RawTx.clone(),
		Notes:           cloneList(p.Notes),
		SpendConditions: cloneList(p.SpendConditions),
	}
	if nil != p.Context {
		ctx := *p.Context
		c.Context = &ctx
	}
	if nil != p.Signatures {
		c.Signatures = make([]Signature, len(p.Signatures))
		for i, s := range p.Signatures {
			c.Signatures[i] = Signature{
				Pkh:       s.Pkh,
				Signature: s.Signature.clone(),
			}
		}
	}
	return c
}

func cloneList(list []Bytes) []Bytes {
	if nil == list {
		return nil
	}
	c := make([]Bytes, len(list))
	for i, b := range list {
		c[i] = b.clone()
	}
	return c
}

// RawNotes - the input notes as plain byte slices
func (p *Proposal) RawNotes() [][]byte {
	return toRaw(p.Notes)
}

// RawSpendConditions - the spend conditions as plain byte slices
func (p *Proposal) RawSpendConditions() [][]byte {
	return toRaw(p.SpendConditions)
}

func toRaw(list []Bytes) [][]byte {
	raw := make([][]byte, len(list))
	for i, b := range list {
		raw[i] = []byte(b)
	}
	return raw
}

// FromRaw - convert plain byte slices for storing in a proposal
func FromRaw(raw [][]byte) []Bytes {
	list := make([]Bytes, len(raw))
	for i, b := range raw {
		list[i] = Bytes(b)
	}
	return list
}
