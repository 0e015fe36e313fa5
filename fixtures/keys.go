// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"github.com/bitmark-inc/knox/envelope"
)

// signer identities used across tests
const (
	SignerA  = "3Hm7WvBsU2Y1uJ4vXWz9pq8yYc6GBLrX8YkR2nLZZVf7"
	SignerB  = "7pdzY2sCqDFvcE5yGk7wQzGJYbS9bWqJrKnbbxnz5Mwn"
	SignerC  = "9aKd8fLw6yNpQm2Xr3TzVbHc5sE4jUoP1iGtWqRnMkYe"
	Outsider = "5ZxP1eQ7wA2sD3fG4hJ5kL6zX7cV8bN9mQ1wE2rT3yUi"
)

// Key - a deterministic session key filled with b
func Key(b byte) *envelope.Key {
	k := new(envelope.Key)
	for i := range k {
		k[i] = b
	}
	return k
}
