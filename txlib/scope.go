// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txlib

import (
	"sync"
)

// Releaser - a handle that must be given back after use
type Releaser interface {
	Release() error
}

// ReleaseFunc - adapt a plain function to Releaser
type ReleaseFunc func() error

// Release - call the function
func (f ReleaseFunc) Release() error {
	return f()
}

// Scope - collects handles acquired during one call
//
// usage:
//   scope := txlib.NewScope()
//   defer scope.Close()
//   h := scope.Hold(acquire())
type Scope struct {
	sync.Mutex
	handles []Releaser
	closed  bool
}

// NewScope - start an empty scope
func NewScope() *Scope {
	return &Scope{
		handles: make([]Releaser, 0, 4),
	}
}

// Hold - register a handle for release when the scope closes
//
// a handle offered to a closed scope is released at once
func (s *Scope) Hold(r Releaser) Releaser {
	if nil == r {
		return nil
	}
	s.Lock()
	closed := s.closed
	if !closed {
		s.handles = append(s.handles, r)
	}
	s.Unlock()

	if closed {
		r.Release()
	}
	return r
}

// Close - release every held handle, newest first
//
// all handles are released even if some fail; the first error is returned
func (s *Scope) Close() error {
	s.Lock()
	handles := s.handles
	s.handles = nil
	s.closed = true
	s.Unlock()

	var first error
	for i := len(handles) - 1; i >= 0; i -= 1 {
		if err := handles[i].Release(); nil != err && nil == first {
			first = err
		}
	}
	return first
}
