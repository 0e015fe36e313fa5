// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
)

// MaxInflatedSize - largest decompressed proposal accepted
const MaxInflatedSize = 16 << 20

// Encode - convert a proposal to a token
func Encode(p *Proposal) (string, error) {
	if nil == p {
		return "", fault.ErrInvalidProposal
	}

	data, err := json.Marshal(p)
	if nil != err {
		return "", errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}

	var buffer bytes.Buffer
	w := zlib.NewWriter(&buffer)
	if _, err := w.Write(data); nil != err {
		return "", errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}
	if err := w.Close(); nil != err {
		return "", errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}

	return base64.RawURLEncoding.EncodeToString(buffer.Bytes()), nil
}

// Decode - convert a token back to a proposal
//
// an optional prefix is stripped; standard or padded base64 is also
// accepted
func Decode(token string) (*Proposal, error) {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, Prefix)
	if "" == token {
		return nil, fault.ErrInvalidProposal
	}

	compressed, err := decodeBase64(token)
	if nil != err {
		return nil, errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if nil != err {
		return nil, errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxInflatedSize+1))
	if nil != err {
		return nil, errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}
	if len(data) > MaxInflatedSize {
		return nil, errors.Wrap(fault.ErrInvalidProposal, "inflated size exceeds limit")
	}

	p := &Proposal{}
	if err := json.Unmarshal(data, p); nil != err {
		if fault.IsErrInvalid(err) {
			return nil, err
		}
		return nil, errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}

	if nil == p.RawTx {
		return nil, errors.Wrap(fault.ErrInvalidProposal, "missing transaction")
	}
	if nil == p.Context {
		return nil, errors.Wrap(fault.ErrInvalidProposal, "missing context")
	}
	if pkh, ok := repeatedSigner(p.Signatures); ok {
		return nil, errors.Wrapf(fault.ErrInvalidProposal, "repeated signer: %s", pkh)
	}
	return p, nil
}

// a signer may appear at most once
func repeatedSigner(signatures []Signature) (string, bool) {
	seen := make(map[string]struct{}, len(signatures))
	for _, s := range signatures {
		if _, ok := seen[s.Pkh]; ok {
			return s.Pkh, true
		}
		seen[s.Pkh] = struct{}{}
	}
	return "", false
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '+':
			return '-'
		case '/':
			return '_'
		case '=', ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	return base64.RawURLEncoding.DecodeString(s)
}
