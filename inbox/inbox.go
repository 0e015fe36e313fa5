// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package inbox - import proposals dropped into a directory
//
// Any file ending in .knox or .txt is read as a proposal in one of its
// surface forms.  After processing the file is renamed with an
// .imported or .rejected suffix so it is never read twice.
package inbox

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/pending"
)

// file suffixes
const (
	ImportedSuffix = ".imported"
	RejectedSuffix = ".rejected"
)

const (
	maxFileSize    = 32 << 20
	settleTime     = 250 * time.Millisecond
	tickerInterval = 100 * time.Millisecond
	receiveTimeout = 30 * time.Second
)

var extensions = []string{".knox", ".txt"}

// Receiver - accepts a proposal in any surface form
type Receiver interface {
	Receive(ctx context.Context, input string) (*pending.Record, error)
}

// Watcher - background process for one inbox directory
type Watcher struct {
	sync.Mutex
	log       *logger.L
	directory string
	receiver  Receiver
	watcher   *fsnotify.Watcher
	queued    map[string]time.Time
}

// New - create a watcher for directory
func New(directory string, receiver Receiver, log *logger.L) (*Watcher, error) {
	if "" == directory {
		return nil, fault.ErrRequiredInboxDirectory
	}
	directory, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}
	info, err := os.Stat(directory)
	if nil != err {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.Wrap(fault.ErrRequiredInboxDirectory, directory)
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}
	if err := watcher.Add(directory); nil != err {
		log.Errorf("watch: %s  error: %s", directory, err)
		watcher.Close()
		return nil, err
	}

	return &Watcher{
		log:       log,
		directory: directory,
		receiver:  receiver,
		watcher:   watcher,
		queued:    make(map[string]time.Time),
	}, nil
}

// Scan - process every candidate file already present
//
// returns the number of files imported
func (w *Watcher) Scan() (int, error) {
	entries, err := os.ReadDir(w.directory)
	if nil != err {
		return 0, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && isCandidate(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	imported := 0
	for _, name := range names {
		if nil == w.process(filepath.Join(w.directory, name)) {
			imported += 1
		}
	}
	return imported, nil
}

// Run - background process loop; files are processed once no event
// has been seen for them for a short settle time
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("starting… directory: %s", w.directory)

	if n, err := w.Scan(); nil != err {
		log.Errorf("initial scan error: %s", err)
	} else if n > 0 {
		log.Infof("initial scan imported: %d", n)
	}

	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			log.Debugf("event: %v", event)
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && isCandidate(event.Name) {
				w.Lock()
				w.queued[event.Name] = time.Now()
				w.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)

		case now := <-ticker.C:
			for _, path := range w.settled(now) {
				w.process(path)
			}
		}
	}

	w.watcher.Close()
	log.Info("stopped")
}

// paths whose last event is older than the settle time
func (w *Watcher) settled(now time.Time) []string {
	w.Lock()
	defer w.Unlock()

	paths := []string{}
	for path, seen := range w.queued {
		if now.Sub(seen) >= settleTime {
			paths = append(paths, path)
			delete(w.queued, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// import one file and rename it according to the outcome
func (w *Watcher) process(path string) error {
	log := w.log

	data, err := readLimited(path)
	if os.IsNotExist(errors.Cause(err)) {
		return err
	}

	if nil == err {
		ctx, cancel := context.WithTimeout(context.Background(), receiveTimeout)
		var record *pending.Record
		record, err = w.receiver.Receive(ctx, string(data))
		cancel()
		if nil == err {
			log.Infof("imported: %s  proposal: %s  vault: %s", filepath.Base(path), record.ID, record.VaultID)
		}
	}

	suffix := ImportedSuffix
	if nil != err {
		log.Warnf("rejected: %s  error: %s", filepath.Base(path), err)
		suffix = RejectedSuffix
	}
	if rerr := os.Rename(path, path+suffix); nil != rerr {
		log.Errorf("rename: %s  error: %s", path, rerr)
	}
	return err
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if nil != err {
		return nil, err
	}
	if len(data) > maxFileSize {
		return nil, errors.Wrap(fault.ErrInvalidProposal, "file too large")
	}
	return data, nil
}

func isCandidate(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
