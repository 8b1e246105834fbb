// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/history"
	"github.com/bitmark-inc/metachain/ledger"
	"github.com/bitmark-inc/metachain/objectstore"
	"github.com/bitmark-inc/metachain/rpc"
)

// backend names
const (
	StoreLocal     = "local"
	StoreFilebase  = "filebase"
	LedgerLocal    = "local"
	LedgerEthereum = "ethereum"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "metachain.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "metachain.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultHistoryTimeout = 30 // seconds
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type StoreType struct {
	Backend  string                    `gluamapper:"backend" json:"backend"`
	Gateway  string                    `gluamapper:"gateway" json:"gateway"`
	Filebase objectstore.Configuration `gluamapper:"filebase" json:"filebase"`
}

type LedgerType struct {
	Backend  string               `gluamapper:"backend" json:"backend"`
	Ethereum ledger.Configuration `gluamapper:"ethereum" json:"ethereum"`
}

type HistoryType struct {
	MaxDepth int `gluamapper:"max_depth" json:"max_depth"`
	Timeout  int `gluamapper:"timeout" json:"timeout"` // seconds
}

type GeneratorType struct {
	Description string `gluamapper:"description" json:"description"`
	Image       string `gluamapper:"image" json:"image"`
	Seed        int64  `gluamapper:"seed" json:"seed"`
}

type LoggerType struct {
	Directory string            `gluamapper:"directory" json:"directory"`
	File      string            `gluamapper:"file" json:"file"`
	Size      int               `gluamapper:"size" json:"size"`
	Count     int               `gluamapper:"count" json:"count"`
	Console   bool              `gluamapper:"console" json:"console"`
	Levels    map[string]string `gluamapper:"levels" json:"levels"`
}

// Logger - the logging section in the form logger.Initialise takes
func (l LoggerType) Logger() logger.Configuration {
	return logger.Configuration{
		Directory: l.Directory,
		File:      l.File,
		Size:      l.Size,
		Count:     l.Count,
		Console:   l.Console,
		Levels:    l.Levels,
	}
}

type Configuration struct {
	DataDirectory string            `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string            `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType      `gluamapper:"database" json:"database"`
	Store         StoreType         `gluamapper:"store" json:"store"`
	Ledger        LedgerType        `gluamapper:"ledger" json:"ledger"`
	History       HistoryType       `gluamapper:"history" json:"history"`
	Generator     GeneratorType     `gluamapper:"generator" json:"generator"`
	RPC           rpc.Configuration `gluamapper:"rpc" json:"rpc"`
	Logging       LoggerType        `gluamapper:"logging" json:"logging"`
}

// HistoryOptions - resolver limits from the history section
func (c *Configuration) HistoryOptions() history.Options {
	return history.Options{
		MaxDepth: c.History.MaxDepth,
		Timeout:  time.Duration(c.History.Timeout) * time.Second,
	}
}

// GetConfiguration - will read decode and verify the configuration
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Store: StoreType{
			Backend: StoreLocal,
		},

		Ledger: LedgerType{
			Backend: LedgerLocal,
		},

		History: HistoryType{
			MaxDepth: history.DefaultMaxDepth,
			Timeout:  defaultHistoryTimeout,
		},

		RPC: rpc.Defaults(),

		Logging: LoggerType{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if err := options.validate(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", f)
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
	options.Database.Name = ensureAbsolute(options.Database.Directory, options.Database.Name)

	// done
	return options, nil
}

func (c *Configuration) validate() error {
	c.Store.Backend = strings.ToLower(c.Store.Backend)
	c.Ledger.Backend = strings.ToLower(c.Ledger.Backend)

	switch c.Store.Backend {
	case StoreLocal:
	case StoreFilebase:
		if "" != c.Store.Gateway {
			c.Store.Filebase.Gateway = c.Store.Gateway
		}
		c.Store.Filebase.Defaults()
		if err := c.Store.Filebase.Validate(); nil != err {
			return err
		}
	default:
		return fmt.Errorf("%w: store: %q", fault.ErrInvalidBackend, c.Store.Backend)
	}

	switch c.Ledger.Backend {
	case LedgerLocal:
	case LedgerEthereum:
		c.Ledger.Ethereum.Defaults()
		if err := c.Ledger.Ethereum.Validate(); nil != err {
			return err
		}
	default:
		return fmt.Errorf("%w: ledger: %q", fault.ErrInvalidBackend, c.Ledger.Backend)
	}

	if c.History.MaxDepth <= 0 {
		c.History.MaxDepth = history.DefaultMaxDepth
	}
	if c.History.Timeout < 0 {
		c.History.Timeout = 0
	}
	return c.RPC.Validate()
}

// prepend directory to a relative path
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
