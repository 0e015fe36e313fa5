// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/knox/background"
	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/inbox"
)

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	directory := m.config.Inbox.Directory
	if "" == directory {
		return fault.ErrRequiredInboxDirectory
	}

	e, err := engine(c, m)
	if nil != err {
		return err
	}

	watcher, err := inbox.New(directory, e, logger.New("inbox"))
	if nil != err {
		return err
	}

	// list of background processes to start
	processes := background.Processes{
		watcher,
	}

	fmt.Fprintf(m.e, "watching: %s  (interrupt to stop)\n", directory)
	p := background.Start(processes, nil)

	<-m.ctx.Done()

	m.log.Info("shutting down…")
	p.Stop()
	return nil
}
