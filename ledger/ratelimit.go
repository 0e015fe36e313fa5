// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/knox/fault"
)

// limiting for a single request
//
// waits for a token unless the context ends first
func limit(ctx context.Context, limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimited
	}

	delay := r.Delay()
	if 0 == delay {
		return nil
	}

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return fault.ErrRateLimited
	}
}
