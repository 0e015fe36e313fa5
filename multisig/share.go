// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"github.com/bitmark-inc/knox/proposal"
)

// Shared - the surface forms of a proposal
type Shared struct {
	Token       string `json:"token"`
	TextBlob    string `json:"textBlob"`
	Link        string `json:"link,omitempty"`
	LinkTooLong bool   `json:"linkTooLong"`
}

// Share - render a pending proposal for the next signer
//
// a link is only produced when base is given
func (e *Engine) Share(id string, base string) (*Shared, error) {
	record, err := e.pending.Get(id)
	if nil != err {
		return nil, err
	}

	token, err := proposal.Encode(record.Proposal)
	if nil != err {
		return nil, err
	}

	s := &Shared{
		Token:    token,
		TextBlob: proposal.Prefix + token,
	}
	if "" != base {
		link, err := proposal.Link(base, record.Proposal)
		if nil != err {
			return nil, err
		}
		s.Link = link
		s.LinkTooLong = proposal.LinkTooLong(link)
	}
	return s, nil
}
