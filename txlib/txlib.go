// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txlib

//go:generate mockgen -source=txlib.go -destination=mocks/txlib.go -package=mocks

import (
	"context"
)

// BuildRequest - inputs for a simple spend from a vault
type BuildRequest struct {
	Notes           [][]byte `json:"notes"`
	SpendConditions [][]byte `json:"spendConditions"`
	Recipient       string   `json:"recipient"`
	Amount          uint64   `json:"amount"`
	Fee             uint64   `json:"fee"`
	RefundAddress   string   `json:"refundAddress"`
}

// BuildResult - the serialised transaction and the inputs it consumes
type BuildResult struct {
	RawTx           []byte   `json:"rawTx"`
	Notes           [][]byte `json:"notes"`
	SpendConditions [][]byte `json:"spendConditions"`
}

// SignRequest - a transaction and its inputs presented to a signer
type SignRequest struct {
	RawTx           []byte   `json:"rawTx"`
	Notes           [][]byte `json:"notes"`
	SpendConditions [][]byte `json:"spendConditions"`
}

// SignResult - the re-serialised transaction carrying the new signature
type SignResult struct {
	RawTx     []byte `json:"rawTx"`
	Signature []byte `json:"signature"`
}

// Library - the native transaction library
type Library interface {
	HashPublicKey(ctx context.Context, extendedKey []byte) (string, error)
	NewSpendCondition(ctx context.Context, threshold int, signers []string) ([]byte, error)
	HashSpendCondition(ctx context.Context, spendCondition []byte) (string, error)
	BuildTransaction(ctx context.Context, request *BuildRequest) (*BuildResult, error)
	TransactionID(ctx context.Context, rawTx []byte) (string, error)
}

// Signer - the wallet holding one signer's key
type Signer interface {
	Identity(ctx context.Context) (string, error)
	SignTransaction(ctx context.Context, request *SignRequest) (*SignResult, error)
	SignMessage(ctx context.Context, message string) (string, error)
}
