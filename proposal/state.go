// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proposal

// State - progress of a proposal towards broadcast
type State int

// states in order
const (
	Drafted State = iota
	PartiallySigned
	ThresholdMet
	Transmitted
	Discarded
)

func (s State) String() string {
	switch s {
	case Drafted:
		return "Drafted"
	case PartiallySigned:
		return "PartiallySigned"
	case ThresholdMet:
		return "ThresholdMet"
	case Transmitted:
		return "Transmitted"
	case Discarded:
		return "Discarded"
	default:
		return "Unknown"
	}
}

// IsTerminal - no further transitions
func (s State) IsTerminal() bool {
	return Transmitted == s || Discarded == s
}

// MarshalText - states appear by name in JSON output
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CountValid - signatures from declared signers
//
// entries from unknown signers remain in the proposal but do not count
// and each signer counts once however many entries it has
func CountValid(p *Proposal, signers []string) int {
	declared := make(map[string]struct{}, len(signers))
	for _, s := range signers {
		declared[s] = struct{}{}
	}
	seen := make(map[string]struct{}, len(p.Signatures))
	for _, sig := range p.Signatures {
		if _, ok := declared[sig.Pkh]; ok {
			seen[sig.Pkh] = struct{}{}
		}
	}
	return len(seen)
}

// Evaluate - the state of a pending proposal for a vault policy
func Evaluate(p *Proposal, threshold int, signers []string) State {
	n := CountValid(p, signers)
	switch {
	case 0 == n:
		return Drafted
	case n < threshold:
		return PartiallySigned
	default:
		return ThresholdMet
	}
}
