// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txlib - boundary to the native transaction library and the
// wallet signer
//
// Everything crossing this boundary is plain bytes or strings.  Native
// objects live only inside a single call and are released through a
// Scope before the call returns, whatever the outcome.
//
// The Helper type implements both interfaces by running an external
// program once per call:
//
//   <program> [arguments...] <method>
//
// with a JSON request on standard input and a JSON response on standard
// output:
//
//   {"result": {...}}                       - success
//   {"error": "message", "rejected": true}  - failure, rejected is only
//                                             set when a user declined
package txlib
