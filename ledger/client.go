// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/note"
)

// defaults
const (
	DefaultRateLimit = 5
	DefaultRateBurst = 10
	DefaultCacheTime = 30 * time.Second
	DefaultTimeout   = 20 * time.Second

	maxResponseSize = 8 << 20
)

// Configuration - client settings
type Configuration struct {
	URL       string
	RateLimit float64
	RateBurst int
	CacheTime time.Duration
	Timeout   time.Duration
}

// Client - a Ledger over HTTP with JSON bodies
type Client struct {
	log     *logger.L
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
}

// wire forms
type balanceReply struct {
	Notes []json.RawMessage `json:"notes"`
}

type noteEntry struct {
	Name   note.Name `json:"name"`
	Assets string    `json:"assets"`
	Note   []byte    `json:"note"`
}

type broadcastRequest struct {
	RawTx []byte `json:"rawTx"`
}

type broadcastReply struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// NewClient - create a client, zero fields take defaults
func NewClient(configuration *Configuration, log *logger.L) (*Client, error) {
	if nil == configuration || "" == configuration.URL {
		return nil, fault.ErrRequiredLedgerURL
	}
	base, err := url.Parse(strings.TrimRight(configuration.URL, "/"))
	if nil != err || "" == base.Scheme || "" == base.Host {
		return nil, errors.Wrapf(fault.ErrRequiredLedgerURL, "invalid url: %q", configuration.URL)
	}

	limit := configuration.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	burst := configuration.RateBurst
	if burst <= 0 {
		burst = DefaultRateBurst
	}
	cacheTime := configuration.CacheTime
	if cacheTime <= 0 {
		cacheTime = DefaultCacheTime
	}
	timeout := configuration.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		log:     log,
		base:    base,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
		cache:   cache.New(cacheTime, 2*cacheTime),
	}, nil
}

// Balance - unspent notes at an address
//
// notes the client cannot read are skipped with a warning
func (c *Client) Balance(ctx context.Context, address string) ([]note.Note, error) {
	if cached, found := c.cache.Get(address); found {
		return cloneNotes(cached.([]note.Note)), nil
	}

	if err := limit(ctx, c.limiter); nil != err {
		return nil, err
	}

	u := *c.base
	u.Path += "/balance/" + url.PathEscape(address)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if nil != err {
		return nil, errors.Wrap(fault.ErrLedgerRequestFailed, err.Error())
	}

	body, status, err := c.do(request)
	if nil != err {
		return nil, err
	}
	if http.StatusOK != status {
		c.log.Warnf("balance: %s  status: %d", address, status)
		return nil, errors.Wrapf(fault.ErrLedgerRequestFailed, "status: %d", status)
	}

	var reply balanceReply
	if err := json.Unmarshal(body, &reply); nil != err {
		return nil, errors.Wrap(fault.ErrInvalidLedgerResponse, err.Error())
	}

	notes := make([]note.Note, 0, len(reply.Notes))
	for i, raw := range reply.Notes {
		n, err := parseNote(raw)
		if nil != err {
			c.log.Warnf("balance: %s  skipping note: %d  error: %s", address, i, err)
			continue
		}
		notes = append(notes, n)
	}

	c.cache.SetDefault(address, notes)
	c.log.Debugf("balance: %s  notes: %d", address, len(notes))
	return cloneNotes(notes), nil
}

func parseNote(raw json.RawMessage) (note.Note, error) {
	var entry noteEntry
	if err := json.Unmarshal(raw, &entry); nil != err {
		return note.Note{}, err
	}
	amount, err := strconv.ParseUint(entry.Assets, 10, 64)
	if nil != err {
		return note.Note{}, fmt.Errorf("assets: %q: %s", entry.Assets, err)
	}
	if 0 == len(entry.Note) {
		return note.Note{}, fmt.Errorf("missing note data")
	}
	name := entry.Name
	if "" == name.First {
		name.First = "Unknown"
	}
	if "" == name.Last {
		name.Last = "Unknown"
	}
	return note.Note{
		Name:   name,
		Amount: amount,
		Raw:    entry.Note,
	}, nil
}

func cloneNotes(notes []note.Note) []note.Note {
	c := make([]note.Note, len(notes))
	copy(c, notes)
	return c
}

// Broadcast - submit a signed transaction, returning its id
func (c *Client) Broadcast(ctx context.Context, rawTx []byte) (string, error) {
	if err := limit(ctx, c.limiter); nil != err {
		return "", errors.Wrap(fault.ErrBroadcastFailed, err.Error())
	}

	data, err := json.Marshal(broadcastRequest{RawTx: rawTx})
	if nil != err {
		return "", errors.Wrap(fault.ErrBroadcastFailed, err.Error())
	}

	u := *c.base
	u.Path += "/transaction"

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(data))
	if nil != err {
		return "", errors.Wrap(fault.ErrBroadcastFailed, err.Error())
	}
	request.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(request)
	if nil != err {
		return "", errors.Wrap(fault.ErrBroadcastFailed, err.Error())
	}

	var reply broadcastReply
	decodeErr := json.Unmarshal(body, &reply)

	if status < 200 || status > 299 {
		message := reply.Error
		if "" == message {
			message = http.StatusText(status)
		}
		c.log.Errorf("broadcast: status: %d  error: %s", status, message)
		return "", errors.Wrap(fault.ErrBroadcastFailed, message)
	}
	if nil != decodeErr {
		return "", errors.Wrap(fault.ErrBroadcastFailed, decodeErr.Error())
	}
	if "" == reply.ID {
		return "", errors.Wrap(fault.ErrBroadcastFailed, "no transaction id returned")
	}

	// spent notes must not be offered again
	c.cache.Flush()

	c.log.Infof("broadcast: accepted: %s", reply.ID)
	return reply.ID, nil
}

func (c *Client) do(request *http.Request) ([]byte, int, error) {
	request.Header.Set("Accept", "application/json")
	response, err := c.http.Do(request)
	if nil != err {
		c.log.Errorf("%s %s  error: %s", request.Method, request.URL.Path, err)
		return nil, 0, errors.Wrap(fault.ErrLedgerRequestFailed, err.Error())
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if nil != err {
		return nil, 0, errors.Wrap(fault.ErrLedgerRequestFailed, err.Error())
	}
	return body, response.StatusCode, nil
}
