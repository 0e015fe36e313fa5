// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal_test

import (
	"bytes"
	"compress/zlib"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/fixtures"
	"github.com/bitmark-inc/knox/proposal"
)

func sampleProposal() *proposal.Proposal {
	return &proposal.Proposal{
		RawTx:           proposal.Bytes{1, 2, 3, 0, 255},
		Notes:           []proposal.Bytes{{10, 11}, {12}},
		SpendConditions: []proposal.Bytes{{20, 21, 22}},
		Context: &proposal.Context{
			VaultAddress:      "vault-address",
			RecipientAddress:  "recipient-address",
			AmountToSendNicks: "600000",
			FeeNicks:          "10000",
			ChangeAmountNicks: "190000",
			SourceVaultName:   "Treasury",
		},
		Signatures: []proposal.Signature{},
	}
}

func TestRoundTrip(t *testing.T) {
	p := sampleProposal()
	token, err := proposal.Encode(p)
	assert.Nil(t, err, "encode error")
	assert.False(t, strings.ContainsAny(token, "+/="), "token is not url safe: %s", token)

	q, err := proposal.Decode(token)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, p, q, "round trip mismatch")

	// with signatures
	p.AddSignature(proposal.Signature{Pkh: fixtures.SignerA, Signature: proposal.Bytes{7, 7}})
	token, err = proposal.Encode(p)
	assert.Nil(t, err, "encode error")
	q, err = proposal.Decode(token)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, p, q, "round trip mismatch with signatures")
}

func TestRoundTripZeroLength(t *testing.T) {
	p := &proposal.Proposal{
		RawTx:           proposal.Bytes{},
		Notes:           []proposal.Bytes{{}},
		SpendConditions: []proposal.Bytes{},
		Context:         &proposal.Context{},
		Signatures:      []proposal.Signature{{Pkh: "", Signature: proposal.Bytes{}}},
	}
	token, err := proposal.Encode(p)
	assert.Nil(t, err, "encode error")
	q, err := proposal.Decode(token)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, p, q, "round trip mismatch")
}

func TestRoundTripLargePayload(t *testing.T) {
	payload := make([]byte, 200*1024)
	_, err := rand.Read(payload)
	assert.Nil(t, err, "random error")

	p := sampleProposal()
	p.RawTx = payload

	token, err := proposal.Encode(p)
	assert.Nil(t, err, "encode error")
	q, err := proposal.Decode(token)
	assert.Nil(t, err, "decode error")
	assert.True(t, bytes.Equal(payload, q.RawTx), "large payload changed")
}

func TestJSONForm(t *testing.T) {
	token, err := proposal.Encode(sampleProposal())
	assert.Nil(t, err, "encode error")

	compressed, err := base64.RawURLEncoding.DecodeString(token)
	assert.Nil(t, err, "base64 error")
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	assert.Nil(t, err, "zlib error")
	var buffer bytes.Buffer
	_, err = buffer.ReadFrom(r)
	assert.Nil(t, err, "inflate error")

	s := buffer.String()
	assert.Contains(t, s, `"rawTxProto":[1,2,3,0,255]`, "byte field not an integer array")
	assert.Contains(t, s, `"notesProto":[[10,11],[12]]`, "wrong notes form")
	assert.Contains(t, s, `"amountToSendNicks":"600000"`, "amount not a decimal string")
}

// tokens written by other clients with the standard library encoder
func makeToken(t *testing.T, json string) string {
	var buffer bytes.Buffer
	w := zlib.NewWriter(&buffer)
	w.Write([]byte(json))
	w.Close()
	return base64.RawURLEncoding.EncodeToString(buffer.Bytes())
}

func TestDecodeMissingFields(t *testing.T) {
	items := []string{
		`{"notesProto":[],"spendConditionsProto":[],"context":{},"signatures":[]}`,
		`{"rawTxProto":[1],"notesProto":[],"spendConditionsProto":[],"signatures":[]}`,
		`{"rawTxProto":null,"context":{}}`,
		`{"rawTxProto":[1],"context":null}`,
		`{"rawTxProto":[256],"context":{}}`,
		`{"rawTxProto":"AQID","context":{}}`,
		`[]`,
		`not json`,
	}
	for _, item := range items {
		_, err := proposal.Decode(makeToken(t, item))
		assert.True(t, fault.Is(err, fault.ErrInvalidProposal), "%s: wrong error: %v", item, err)
	}

	// a minimal but complete proposal from another client
	p, err := proposal.Decode(makeToken(t, `{"rawTxProto":[1],"context":{"vaultAddress":"v"}}`))
	assert.Nil(t, err, "decode error")
	assert.Equal(t, "v", p.Context.VaultAddress, "wrong context")
}

func TestDecodeCorrupt(t *testing.T) {
	token, _ := proposal.Encode(sampleProposal())

	items := []string{
		"",
		"   ",
		proposal.Prefix,
		"!!!!",
		token[:len(token)/2],
		base64.RawURLEncoding.EncodeToString([]byte("not compressed")),
	}
	for _, item := range items {
		_, err := proposal.Decode(item)
		assert.True(t, fault.Is(err, fault.ErrInvalidProposal), "%q: wrong error: %v", item, err)
	}
}

func TestDecodeRepeatedSigner(t *testing.T) {
	p := sampleProposal()
	p.Signatures = []proposal.Signature{
		{Pkh: fixtures.SignerA, Signature: proposal.Bytes("a1")},
		{Pkh: fixtures.SignerB, Signature: proposal.Bytes("b")},
		{Pkh: fixtures.SignerA, Signature: proposal.Bytes("a2")},
	}
	token, err := proposal.Encode(p)
	assert.Nil(t, err, "encode error")

	_, err = proposal.Parse(proposal.Prefix + token)
	assert.True(t, fault.Is(err, fault.ErrInvalidProposal), "repeated signer accepted: %v", err)

	// distinct signers in any order are fine
	p.Signatures = p.Signatures[:2]
	token, err = proposal.Encode(p)
	assert.Nil(t, err, "encode error")
	q, err := proposal.Parse(token)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, p.Signatures, q.Signatures, "signatures changed")
}

func TestDecodeLenientBase64(t *testing.T) {
	p := sampleProposal()
	token, _ := proposal.Encode(p)

	raw, _ := base64.RawURLEncoding.DecodeString(token)
	standard := base64.StdEncoding.EncodeToString(raw)

	q, err := proposal.Decode(standard)
	assert.Nil(t, err, "standard base64 rejected")
	assert.Equal(t, p, q, "wrong proposal")

	q, err = proposal.Decode("  " + proposal.Prefix + token + "\n")
	assert.Nil(t, err, "prefixed token rejected")
	assert.Equal(t, p, q, "wrong proposal")
}

func TestDecodeSizeLimit(t *testing.T) {
	// highly compressible data inflating past the limit
	big := `{"rawTxProto":[1],"context":{},"pad":"` + strings.Repeat("a", proposal.MaxInflatedSize) + `"}`
	_, err := proposal.Decode(makeToken(t, big))
	assert.True(t, fault.Is(err, fault.ErrInvalidProposal), "oversized proposal accepted: %v", err)
}

func TestAddSignature(t *testing.T) {
	p := sampleProposal()

	added := p.AddSignature(proposal.Signature{Pkh: fixtures.SignerA, Signature: proposal.Bytes{1}})
	assert.True(t, added, "first signature not added")
	added = p.AddSignature(proposal.Signature{Pkh: fixtures.SignerB, Signature: proposal.Bytes{2}})
	assert.True(t, added, "second signature not added")

	// duplicate is a no-op that keeps the original entry
	added = p.AddSignature(proposal.Signature{Pkh: fixtures.SignerA, Signature: proposal.Bytes{9}})
	assert.False(t, added, "duplicate signature added")
	assert.Equal(t, 2, len(p.Signatures), "signature count changed")
	assert.Equal(t, proposal.Bytes{1}, p.Signatures[0].Signature, "existing entry modified")
	assert.Equal(t, fixtures.SignerB, p.Signatures[1].Pkh, "collection order changed")

	assert.True(t, p.HasSigned(fixtures.SignerB), "has signed")
	assert.False(t, p.HasSigned(fixtures.SignerC), "has not signed")
}

func TestClone(t *testing.T) {
	p := sampleProposal()
	p.AddSignature(proposal.Signature{Pkh: fixtures.SignerA, Signature: proposal.Bytes{1}})

	c := p.Clone()
	assert.Equal(t, p, c, "clone differs")

	c.RawTx[0] = 99
	c.Notes[0][0] = 99
	c.Context.FeeNicks = "1"
	c.Signatures[0].Signature[0] = 99
	c.AddSignature(proposal.Signature{Pkh: fixtures.SignerB})

	assert.Equal(t, sampleProposal().RawTx, p.RawTx, "raw tx shared")
	assert.Equal(t, proposal.Bytes{10, 11}, p.Notes[0], "notes shared")
	assert.Equal(t, "10000", p.Context.FeeNicks, "context shared")
	assert.Equal(t, proposal.Bytes{1}, p.Signatures[0].Signature, "signature shared")
	assert.Equal(t, 1, len(p.Signatures), "signature list shared")
}

func TestContextAmounts(t *testing.T) {
	c := sampleProposal().Context
	amount, fee, change, err := c.Amounts()
	assert.Nil(t, err, "amounts error")
	assert.Equal(t, uint64(600000), amount.Uint64(), "wrong amount")
	assert.Equal(t, uint64(10000), fee.Uint64(), "wrong fee")
	assert.Equal(t, uint64(190000), change.Uint64(), "wrong change")

	// beyond 64 bits is still representable
	c.AmountToSendNicks = "36893488147419103232"
	amount, _, _, err = c.Amounts()
	assert.Nil(t, err, "large amount rejected")
	assert.Equal(t, "36893488147419103232", amount.ToBig().String(), "wrong large amount")

	for _, bad := range []string{"", "-1", "1.5", "abc", "0x10"} {
		c.FeeNicks = bad
		_, _, _, err = c.Amounts()
		assert.True(t, fault.Is(err, fault.ErrInvalidAmount), "%q: wrong error: %v", bad, err)
	}
}
