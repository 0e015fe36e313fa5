// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
)

// Bytes - binary data serialised as a JSON array of integers
type Bytes []byte

// MarshalJSON - convert to an integer array, nil becomes []
func (b Bytes) MarshalJSON() ([]byte, error) {
	buffer := make([]byte, 0, 2+4*len(b))
	buffer = append(buffer, '[')
	for i, c := range b {
		if 0 != i {
			buffer = append(buffer, ',')
		}
		buffer = strconv.AppendUint(buffer, uint64(c), 10)
	}
	return append(buffer, ']'), nil
}

// UnmarshalJSON - convert from an integer array
//
// null leaves the value nil so that absent fields can be detected
func (b *Bytes) UnmarshalJSON(s []byte) error {
	if "null" == string(s) {
		*b = nil
		return nil
	}
	var values []uint
	if err := json.Unmarshal(s, &values); nil != err {
		return errors.Wrap(fault.ErrInvalidProposal, err.Error())
	}
	result := make(Bytes, len(values))
	for i, v := range values {
		if v > 255 {
			return errors.Wrapf(fault.ErrInvalidProposal, "byte value: %d out of range", v)
		}
		result[i] = byte(v)
	}
	*b = result
	return nil
}

func (b Bytes) clone() Bytes {
	if nil == b {
		return nil
	}
	c := make(Bytes, len(b))
	copy(c, b)
	return c
}
