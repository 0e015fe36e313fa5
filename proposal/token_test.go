// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/proposal"
)

func TestTextBlob(t *testing.T) {
	p := sampleProposal()
	blob, err := proposal.TextBlob(p)
	assert.Nil(t, err, "text blob error")
	assert.True(t, strings.HasPrefix(blob, proposal.Prefix), "missing prefix")

	q, err := proposal.Parse(blob)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, p, q, "wrong proposal")
}

func TestLink(t *testing.T) {
	p := sampleProposal()
	link, err := proposal.Link("https://knox.example.com/", p)
	assert.Nil(t, err, "link error")
	assert.True(t, strings.HasPrefix(link, "https://knox.example.com/dashboard?proposal="), "wrong link: %s", link)
	assert.False(t, strings.Contains(link, proposal.Prefix), "link carries the prefix")
	assert.False(t, proposal.LinkTooLong(link), "small link too long")

	q, err := proposal.Parse(link)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, p, q, "wrong proposal")

	// bare token
	token, _ := proposal.Encode(p)
	q, err = proposal.Parse(token)
	assert.Nil(t, err, "parse bare error")
	assert.Equal(t, p, q, "wrong proposal")
}

func TestLinkTooLong(t *testing.T) {
	assert.False(t, proposal.LinkTooLong(strings.Repeat("x", proposal.MaxLinkLength)), "limit is inclusive")
	assert.True(t, proposal.LinkTooLong(strings.Repeat("x", proposal.MaxLinkLength+1)), "long link accepted")
}

func TestParseBadLink(t *testing.T) {
	for _, s := range []string{
		"https://knox.example.com/dashboard",
		"https://knox.example.com/dashboard?proposal=",
		"https://knox.example.com/dashboard?proposal=%zz",
	} {
		_, err := proposal.Parse(s)
		assert.True(t, fault.Is(err, fault.ErrInvalidProposal), "%s: wrong error: %v", s, err)
	}
}
