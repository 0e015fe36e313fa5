// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proposal - portable multisignature spend proposals
//
// A proposal is carried between signers as a text token:
//
//   ["knox:proposal:v1:"] base64url-no-pad( zlib( JSON(proposal) ) )
//
// Byte fields are JSON arrays of integers so that tokens stay
// interchangeable with other clients.  The token may be shared bare,
// with the prefix as a text blob, or inside a link as the value of the
// "proposal" query parameter.
package proposal
