// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/knox/fault"
	"github.com/bitmark-inc/knox/ledger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabaseName     = "knox.leveldb"

	defaultRateLimit      = ledger.DefaultRateLimit
	defaultRateBurst      = ledger.DefaultRateBurst
	defaultCacheSeconds   = int(ledger.DefaultCacheTime / time.Second)
	defaultTimeoutSeconds = int(ledger.DefaultTimeout / time.Second)

	defaultLogDirectory = "log"
	defaultLogFile      = "knox.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the LevelDB database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LedgerType - the ledger API
type LedgerType struct {
	URL            string  `gluamapper:"url" json:"url"`
	RateLimit      float64 `gluamapper:"rate_limit" json:"rate_limit"`
	RateBurst      int     `gluamapper:"rate_burst" json:"rate_burst"`
	CacheSeconds   int     `gluamapper:"cache_seconds" json:"cache_seconds"`
	TimeoutSeconds int     `gluamapper:"timeout_seconds" json:"timeout_seconds"`
}

// HelperType - external programs for the transaction library and the
// wallet signer, each a command line split into words
type HelperType struct {
	Library []string `gluamapper:"library" json:"library"`
	Signer  []string `gluamapper:"signer" json:"signer"`
}

// InboxType - directory watched for dropped proposals
type InboxType struct {
	Directory string `gluamapper:"directory" json:"directory"`
}

// Configuration - the knox configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Ledger        LedgerType           `gluamapper:"ledger" json:"ledger"`
	Helper        HelperType           `gluamapper:"helper" json:"helper"`
	Inbox         InboxType            `gluamapper:"inbox" json:"inbox"`
	LinkBase      string               `gluamapper:"link_base" json:"link_base"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Get - read decode and verify the configuration
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabaseName,
		},

		Ledger: LedgerType{
			RateLimit:      defaultRateLimit,
			RateBurst:      defaultRateBurst,
			CacheSeconds:   defaultCacheSeconds,
			TimeoutSeconds: defaultTimeoutSeconds,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.Wrapf(fault.ErrRequiredDataDirectory, "path: %q", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = ensureAbsolute(dataDirectory, options.DataDirectory)
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.Wrapf(fault.ErrRequiredDataDirectory, "path: %q is not a directory", options.DataDirectory)
	}

	if "" == options.Ledger.URL {
		return nil, fault.ErrRequiredLedgerURL
	}
	if 0 == len(options.Helper.Library) || "" == options.Helper.Library[0] {
		return nil, fault.ErrRequiredLibraryHelper
	}
	if 0 == len(options.Helper.Signer) || "" == options.Helper.Signer[0] {
		return nil, fault.ErrRequiredSignerHelper
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.Inbox.Directory {
		options.Inbox.Directory = ensureAbsolute(options.DataDirectory, options.Inbox.Directory)
	}

	// fail if any of these are not simple file names
	for _, f := range []string{options.Logging.File, options.Database.Name} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, errors.Errorf("files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// DatabasePath - full path of the LevelDB database
func (c *Configuration) DatabasePath() string {
	return filepath.Join(c.Database.Directory, c.Database.Name)
}

// LedgerConfiguration - settings for the ledger client
func (c *Configuration) LedgerConfiguration() *ledger.Configuration {
	return &ledger.Configuration{
		URL:       c.Ledger.URL,
		RateLimit: c.Ledger.RateLimit,
		RateBurst: c.Ledger.RateBurst,
		CacheTime: time.Duration(c.Ledger.CacheSeconds) * time.Second,
		Timeout:   time.Duration(c.Ledger.TimeoutSeconds) * time.Second,
	}
}

// prepend the directory to a relative path
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
