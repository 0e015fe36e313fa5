// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors returned from the engine are the sentinels below, possibly
// wrapped with github.com/pkg/errors to carry the collaborator's raw
// failure as context.  Compare with fault.Is or one of the class
// predicates; both look through the wrapping.
package fault
