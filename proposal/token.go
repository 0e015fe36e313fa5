// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
)

// surface forms
const (
	Prefix        = "knox:proposal:v1:"
	QueryKey      = "proposal"
	LinkPath      = "/dashboard"
	MaxLinkLength = 2000
)

// TextBlob - the prefixed token for pasting or QR codes
func TextBlob(p *Proposal) (string, error) {
	token, err := Encode(p)
	if nil != err {
		return "", err
	}
	return Prefix + token, nil
}

// Link - a URL carrying the bare token as a query parameter
func Link(base string, p *Proposal) (string, error) {
	token, err := Encode(p)
	if nil != err {
		return "", err
	}
	return strings.TrimRight(base, "/") + LinkPath + "?" + QueryKey + "=" + token, nil
}

// LinkTooLong - true if a link is too long to share reliably, in
// which case the text blob should be shared instead
func LinkTooLong(link string) bool {
	return len(link) > MaxLinkLength
}

// Parse - decode any surface form: link, text blob or bare token
func Parse(input string) (*Proposal, error) {
	input = strings.TrimSpace(input)

	if strings.Contains(input, "://") || strings.Contains(input, QueryKey+"=") {
		u, err := url.Parse(input)
		if nil != err {
			return nil, errors.Wrap(fault.ErrInvalidProposal, err.Error())
		}
		token := u.Query().Get(QueryKey)
		if "" == token {
			return nil, errors.Wrap(fault.ErrInvalidProposal, "link has no proposal")
		}
		return Decode(token)
	}
	return Decode(input)
}
