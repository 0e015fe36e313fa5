// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthError GenericError
type CryptoError GenericError
type ExistsError GenericError
type FundsError GenericError
type InvalidError GenericError
type NetworkError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrAmountOverflow         = InvalidError("amount overflows 64 bits")
	ErrAuthenticationFailed   = AuthError("decryption failed: incorrect wallet signature")
	ErrBroadcastFailed        = NetworkError("network rejected the transaction")
	ErrDatabaseVersion        = InvalidError("incompatible database version")
	ErrDecryptionFailed       = CryptoError("failed to decrypt data: invalid key or corrupted data")
	ErrDuplicateSigner        = InvalidError("duplicate signer addresses are not allowed")
	ErrDuplicateVault         = ExistsError("a vault with this exact signer configuration already exists")
	ErrEmptySignature         = InvalidError("unlock signature is empty")
	ErrEncryptionFailed       = CryptoError("failed to encrypt data")
	ErrInsufficientFunds      = FundsError("insufficient funds to cover the amount and fee")
	ErrInvalidAddress         = InvalidError("invalid address")
	ErrInvalidAmount          = InvalidError("amount to send must be greater than zero")
	ErrInvalidBackup          = InvalidError("file does not contain a valid array of vaults")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidKeyLength       = InvalidError("key length is invalid")
	ErrInvalidLedgerResponse  = NetworkError("invalid ledger response")
	ErrInvalidNonce           = CryptoError("nonce length is invalid")
	ErrInvalidProposal        = InvalidError("invalid or corrupt proposal data provided")
	ErrInvalidPublicKey       = InvalidError("invalid public key")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidThreshold       = InvalidError("invalid threshold for the given number of signers")
	ErrLedgerRequestFailed    = NetworkError("ledger request failed")
	ErrLibraryFailed          = ProcessError("transaction library call failed")
	ErrMissingSigners         = InvalidError("at least one signer is required")
	ErrNoVaults               = NotFoundError("no vaults to export")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrProposalDiverged       = InvalidError("received proposal and local copy hold different signatures")
	ErrProposalNotFound       = NotFoundError("pending proposal not found")
	ErrRateLimited            = NetworkError("rate limit exceeded")
	ErrRequiredDataDirectory  = InvalidError("data directory is required")
	ErrRequiredID             = InvalidError("record id is required")
	ErrRequiredInboxDirectory = InvalidError("inbox directory is required")
	ErrRequiredLedgerURL      = InvalidError("ledger url is required")
	ErrRequiredLibraryHelper  = InvalidError("transaction library helper is required")
	ErrRequiredRecipient      = InvalidError("recipient address is required")
	ErrRequiredSignerHelper   = InvalidError("signer helper is required")
	ErrRequiredVaultName      = InvalidError("vault name is required")
	ErrSessionLocked          = AuthError("session is locked")
	ErrSigningRejected        = AuthError("signing was rejected")
	ErrThresholdNotMet        = InvalidError("signature threshold has not been met")
	ErrTransactionExists      = ExistsError("transaction already recorded")
	ErrTransactionNotFound    = NotFoundError("transaction not found in history")
	ErrUnauthorisedSigner     = AuthError("wallet is not a signer of this vault")
	ErrVaultNotFound          = NotFoundError("could not find a matching local vault for this proposal")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthError) Error() string     { return string(e) }
func (e CryptoError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e FundsError) Error() string    { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NetworkError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrAuth(e error) bool     { _, ok := errors.Cause(e).(AuthError); return ok }
func IsErrCrypto(e error) bool   { _, ok := errors.Cause(e).(CryptoError); return ok }
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrFunds(e error) bool    { _, ok := errors.Cause(e).(FundsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrNetwork(e error) bool  { _, ok := errors.Cause(e).(NetworkError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }

// Is - true if the root cause of err is the given sentinel
func Is(err error, target error) bool {
	if nil == err {
		return false
	}
	return errors.Cause(err) == target
}
