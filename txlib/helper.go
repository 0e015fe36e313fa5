// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txlib

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os/exec"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
)

// helper methods
const (
	methodHashPublicKey      = "hash-public-key"
	methodSpendCondition     = "spend-condition"
	methodHashSpendCondition = "hash-spend-condition"
	methodBuild              = "build-transaction"
	methodTransactionID      = "transaction-id"
	methodIdentity           = "identity"
	methodSignTransaction    = "sign-transaction"
	methodSignMessage        = "sign-message"
)

// limit on the size of a helper response
const maxResponseSize = 64 << 20

// Helper - Library and Signer backed by an external program
type Helper struct {
	program   string
	arguments []string
	log       *logger.L
}

// NewHelper - locate the program and prepare to call it
func NewHelper(program string, arguments []string, log *logger.L) (*Helper, error) {
	if "" == program {
		return nil, fault.ErrRequiredLibraryHelper
	}
	path, err := exec.LookPath(program)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrRequiredLibraryHelper, "program: %q: %s", program, err)
	}
	return &Helper{
		program:   path,
		arguments: arguments,
		log:       log,
	}, nil
}

type response struct {
	Result   json.RawMessage `json:"result"`
	Error    string          `json:"error"`
	Rejected bool            `json:"rejected"`
}

// a running helper process
type process struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  bytes.Buffer
	waited  bool
	waitErr error
}

func (p *process) wait() error {
	if !p.waited {
		// drain anything after the response so the program can exit
		io.Copy(io.Discard, p.stdout)
		p.waitErr = p.cmd.Wait()
		p.waited = true
	}
	return p.waitErr
}

// Release - make sure the process is gone
func (p *process) Release() error {
	if p.waited {
		return nil
	}
	if nil != p.cmd.Process {
		p.cmd.Process.Kill()
	}
	p.wait()
	return nil
}

func (h *Helper) start(ctx context.Context, scope *Scope, method string, request interface{}) (*process, error) {
	input, err := json.Marshal(request)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrLibraryFailed, "%s: encode request: %s", method, err)
	}

	arguments := make([]string, 0, len(h.arguments)+1)
	arguments = append(arguments, h.arguments...)
	arguments = append(arguments, method)

	p := &process{
		cmd: exec.CommandContext(ctx, h.program, arguments...),
	}
	p.cmd.Stdin = bytes.NewReader(input)
	p.cmd.Stderr = &p.stderr
	p.stdout, err = p.cmd.StdoutPipe()
	if nil != err {
		return nil, errors.Wrapf(fault.ErrLibraryFailed, "%s: %s", method, err)
	}

	if err := p.cmd.Start(); nil != err {
		return nil, errors.Wrapf(fault.ErrLibraryFailed, "%s: start: %s", method, err)
	}
	scope.Hold(p)
	return p, nil
}

// run one method to completion and decode its result
func (h *Helper) call(ctx context.Context, method string, request interface{}, result interface{}) error {
	scope := NewScope()
	defer scope.Close()

	h.log.Debugf("call: %s", method)

	p, err := h.start(ctx, scope, method, request)
	if nil != err {
		h.log.Errorf("%s", err)
		return err
	}

	var r response
	decodeErr := json.NewDecoder(io.LimitReader(p.stdout, maxResponseSize)).Decode(&r)
	waitErr := p.wait()

	if "" != r.Error {
		h.log.Warnf("%s: helper error: %s", method, r.Error)
		if r.Rejected {
			return errors.Wrap(fault.ErrSigningRejected, r.Error)
		}
		return errors.Wrapf(fault.ErrLibraryFailed, "%s: %s", method, r.Error)
	}
	if nil != ctx.Err() {
		return errors.Wrapf(fault.ErrLibraryFailed, "%s: %s", method, ctx.Err())
	}
	if nil != decodeErr {
		detail := strings.TrimSpace(p.stderr.String())
		h.log.Errorf("%s: bad response: %s  stderr: %q", method, decodeErr, detail)
		return errors.Wrapf(fault.ErrLibraryFailed, "%s: bad response: %s", method, decodeErr)
	}
	if nil != waitErr {
		h.log.Errorf("%s: exit: %s", method, waitErr)
		return errors.Wrapf(fault.ErrLibraryFailed, "%s: %s", method, waitErr)
	}
	if 0 == len(r.Result) {
		return errors.Wrapf(fault.ErrLibraryFailed, "%s: empty result", method)
	}
	if err := json.Unmarshal(r.Result, result); nil != err {
		return errors.Wrapf(fault.ErrLibraryFailed, "%s: decode result: %s", method, err)
	}
	return nil
}

// HashPublicKey - hash an extended public key to its key hash
func (h *Helper) HashPublicKey(ctx context.Context, extendedKey []byte) (string, error) {
	var reply struct {
		Pkh string `json:"pkh"`
	}
	request := struct {
		PublicKey []byte `json:"publicKey"`
	}{extendedKey}
	if err := h.call(ctx, methodHashPublicKey, request, &reply); nil != err {
		return "", err
	}
	return reply.Pkh, nil
}

// NewSpendCondition - encode an m-of-n key hash lock
func (h *Helper) NewSpendCondition(ctx context.Context, threshold int, signers []string) ([]byte, error) {
	var reply struct {
		SpendCondition []byte `json:"spendCondition"`
	}
	request := struct {
		Threshold int      `json:"threshold"`
		Signers   []string `json:"signers"`
	}{threshold, signers}
	if err := h.call(ctx, methodSpendCondition, request, &reply); nil != err {
		return nil, err
	}
	return reply.SpendCondition, nil
}

// HashSpendCondition - the address locked by a spend condition
func (h *Helper) HashSpendCondition(ctx context.Context, spendCondition []byte) (string, error) {
	var reply struct {
		Address string `json:"address"`
	}
	request := struct {
		SpendCondition []byte `json:"spendCondition"`
	}{spendCondition}
	if err := h.call(ctx, methodHashSpendCondition, request, &reply); nil != err {
		return "", err
	}
	return reply.Address, nil
}

// BuildTransaction - construct an unsigned simple spend
func (h *Helper) BuildTransaction(ctx context.Context, request *BuildRequest) (*BuildResult, error) {
	reply := &BuildResult{}
	if err := h.call(ctx, methodBuild, request, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// TransactionID - the id of a serialised transaction
func (h *Helper) TransactionID(ctx context.Context, rawTx []byte) (string, error) {
	var reply struct {
		TxID string `json:"txId"`
	}
	request := struct {
		RawTx []byte `json:"rawTx"`
	}{rawTx}
	if err := h.call(ctx, methodTransactionID, request, &reply); nil != err {
		return "", err
	}
	return reply.TxID, nil
}

// Identity - key hash of the wallet's signing key
func (h *Helper) Identity(ctx context.Context) (string, error) {
	var reply struct {
		Pkh string `json:"pkh"`
	}
	if err := h.call(ctx, methodIdentity, struct{}{}, &reply); nil != err {
		return "", err
	}
	return reply.Pkh, nil
}

// SignTransaction - ask the wallet to add its signature
func (h *Helper) SignTransaction(ctx context.Context, request *SignRequest) (*SignResult, error) {
	reply := &SignResult{}
	if err := h.call(ctx, methodSignTransaction, request, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// SignMessage - ask the wallet to sign a text message
func (h *Helper) SignMessage(ctx context.Context, message string) (string, error) {
	var reply struct {
		Signature string `json:"signature"`
	}
	request := struct {
		Message string `json:"message"`
	}{message}
	if err := h.call(ctx, methodSignMessage, request, &reply); nil != err {
		return "", err
	}
	return reply.Signature, nil
}
