// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/knox/configuration"
	"github.com/bitmark-inc/knox/history"
	"github.com/bitmark-inc/knox/ledger"
	"github.com/bitmark-inc/knox/pending"
	"github.com/bitmark-inc/knox/recordstore"
	"github.com/bitmark-inc/knox/session"
	"github.com/bitmark-inc/knox/storage"
	"github.com/bitmark-inc/knox/txlib"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	verbose bool
	e       io.Writer
	w       io.Writer

	ctx     context.Context
	cancel  context.CancelFunc
	log     *logger.L
	db      *storage.Database
	records *recordstore.Store
	pending *pending.Store
	history *history.Store
	lib     *txlib.Helper
	signer  *txlib.Helper
	ledger  *ledger.Client
	session *session.Session
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "knox-cli"
	app.Usage = "multisignature vault proposals"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Value:  "knox.conf",
			Usage:  " configuration `FILE`",
			EnvVar: "KNOX_CONFIG",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "signature, s",
			Value: "",
			Usage: " wallet signature over the unlock message `TEXT`",
		},
		cli.StringFlag{
			Name:  "use-agent, u",
			Value: "",
			Usage: " executable program that returns the unlock signature `EXE`",
		},
		cli.BoolFlag{
			Name:  "prompt, p",
			Usage: " read the unlock signature from the terminal",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "vault-create",
			Usage:     "create a new m-of-n vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*vault name `STRING`",
				},
				cli.IntFlag{
					Name:  "threshold, m",
					Value: 0,
					Usage: "*signatures required `COUNT`",
				},
				cli.StringSliceFlag{
					Name:  "signer, k",
					Usage: "*signer public key hash or public key `PKH` (repeat for each signer)",
				},
			},
			Action: runVaultCreate,
		},
		{
			Name:   "vault-list",
			Usage:  "list the vaults in local storage",
			Action: runVaultList,
		},
		{
			Name:      "vault-export",
			Usage:     "write an encrypted backup of all vaults",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " backup `FILE` [knox-backup-YYYY-MM-DD.json]",
				},
			},
			Action: runVaultExport,
		},
		{
			Name:      "vault-import",
			Usage:     "restore vaults from a backup file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*backup `FILE`",
				},
			},
			Action: runVaultImport,
		},
		{
			Name:      "balance",
			Usage:     "show the unspent notes of a vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault `ID`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "send",
			Usage:     "draft a spend proposal from a vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault `ID`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*recipient `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "amount, a",
					Value: "",
					Usage: "*amount in NOCK `DECIMAL`",
				},
				cli.StringFlag{
					Name:  "fee, f",
					Value: defaultFee,
					Usage: " fee in NOCK `DECIMAL`",
				},
			},
			Action: runSend,
		},
		{
			Name:      "receive",
			Usage:     "accept a shared proposal link, text blob or token",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "proposal, P",
					Value: "",
					Usage: "+proposal `TEXT`",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+file containing the proposal `FILE`",
				},
			},
			Action: runReceive,
		},
		{
			Name:      "review",
			Usage:     "show the state of a proposal",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runReview,
		},
		{
			Name:      "sign",
			Usage:     "add this wallet's signature to a proposal",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runSign,
		},
		{
			Name:      "share",
			Usage:     "produce the link and text blob for a proposal",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag,
				cli.StringFlag{
					Name:  "base, b",
					Value: "",
					Usage: " link origin `URL` [link_base from configuration]",
				},
			},
			Action: runShare,
		},
		{
			Name:      "transmit",
			Usage:     "broadcast a proposal whose threshold is met",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runTransmit,
		},
		{
			Name:      "discard",
			Usage:     "drop a pending proposal",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runDiscard,
		},
		{
			Name:  "pending",
			Usage: "list pending proposals",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: " only proposals for vault `ID`",
				},
			},
			Action: runPending,
		},
		{
			Name:      "history",
			Usage:     "list transmitted transactions of a vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault `ID`",
				},
			},
			Action: runHistory,
		},
		{
			Name:   "watch",
			Usage:  "import proposals dropped into the inbox directory until interrupted",
			Action: runWatch,
		},
		{
			Name:  "version",
			Usage: "display knox-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and open the local stores
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "" == command || "version" == command || "help" == command || "h" == command {
			return nil
		}

		file := c.GlobalString("config")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		m, err := setup(file, verbose, e, w)
		if nil != err {
			return err
		}
		c.App.Metadata["config"] = m
		return nil
	}

	// release everything opened by Before
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		m.close()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}

func setup(file string, verbose bool, e io.Writer, w io.Writer) (*metadata, error) {
	config, err := configuration.Get(file)
	if nil != err {
		return nil, err
	}

	if err := logger.Initialise(config.Logging); nil != err {
		return nil, err
	}
	log := logger.New("knox-cli")

	m := &metadata{
		file:    file,
		config:  config,
		verbose: verbose,
		e:       e,
		w:       w,
		log:     log,
	}
	m.ctx, m.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m.lib, err = txlib.NewHelper(config.Helper.Library[0], config.Helper.Library[1:], logger.New("txlib"))
	if nil != err {
		m.close()
		return nil, err
	}
	m.signer, err = txlib.NewHelper(config.Helper.Signer[0], config.Helper.Signer[1:], logger.New("signer"))
	if nil != err {
		m.close()
		return nil, err
	}
	m.ledger, err = ledger.NewClient(config.LedgerConfiguration(), logger.New("ledger"))
	if nil != err {
		m.close()
		return nil, err
	}

	if verbose {
		fmt.Fprintf(e, "database: %s\n", config.DatabasePath())
	}
	m.db, err = storage.Open(config.DatabasePath(), false)
	if nil != err {
		m.close()
		return nil, err
	}
	m.records = recordstore.New(m.db.Pool.EncryptedVaults, logger.New("records"))
	m.pending = pending.New(m.db, logger.New("pending"))
	m.history = history.New(m.db, logger.New("history"))

	log.Infof("configuration: %s", file)
	return m, nil
}

func (m *metadata) close() {
	if nil != m.session {
		m.session.Lock()
		m.session = nil
	}
	if nil != m.db {
		m.db.Close()
		m.db = nil
	}
	if nil != m.cancel {
		m.cancel()
	}
	if nil != m.log {
		m.log.Info("finished")
		logger.Finalise()
		m.log = nil
	}
}
