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

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/metachain/backend"
	"github.com/bitmark-inc/metachain/configuration"
)

type metadata struct {
	directory string
	config    *configuration.Configuration
	backend   *backend.T
	verbose   bool
	e         io.Writer
	w         io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "metachain-cli"
	app.Usage = "build and publish chained metadata records"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` (required for store and ledger access)",
		},
		cli.StringFlag{
			Name:  "directory, d",
			Value: "metadata",
			Usage: " metadata `DIRECTORY`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "create a new batch of root records",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: "*number of records `COUNT`",
				},
				cli.Int64Flag{
					Name:  "seed, s",
					Value: 0,
					Usage: " random `SEED` (0 = time based)",
				},
				cli.BoolFlag{
					Name:  "force, f",
					Usage: " replace existing records",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "edit",
			Usage:     "edit random records, chaining them to a prior bundle",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "edits, e",
					Value: 1,
					Usage: " number of edits `COUNT`",
				},
				cli.StringFlag{
					Name:  "prior, p",
					Value: "",
					Usage: " prior bundle `CID` (default is the current anchor)",
				},
				cli.Int64Flag{
					Name:  "seed, s",
					Value: 0,
					Usage: " random `SEED` (0 = time based)",
				},
			},
			Action: runEdit,
		},
		{
			Name:   "pack",
			Usage:  "pack the directory into a bundle and store it",
			Action: runPack,
		},
		{
			Name:   "publish",
			Usage:  "pack, store and anchor the directory",
			Action: runPublish,
		},
		{
			Name:      "extend",
			Usage:     "edit records chained to the current anchor then publish",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "edits, e",
					Value: 1,
					Usage: " number of edits `COUNT`",
				},
				cli.Int64Flag{
					Name:  "seed, s",
					Value: 0,
					Usage: " random `SEED` (0 = time based)",
				},
			},
			Action: runExtend,
		},
		{
			Name:      "anchor",
			Usage:     "display or set the anchor of a record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Value: 0,
					Usage: "*record `ID`",
				},
				cli.StringFlag{
					Name:  "set, s",
					Value: "",
					Usage: " publish bundle `CID` as the anchor",
				},
				cli.BoolFlag{
					Name:  "list, l",
					Usage: " list all local anchors",
				},
			},
			Action: runAnchor,
		},
		{
			Name:      "history",
			Usage:     "list every version of a record, newest first",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Value: 0,
					Usage: "*record `ID`",
				},
				cli.BoolFlag{
					Name:  "records, r",
					Usage: " include the record of each version",
				},
			},
			Action: runHistory,
		},
		{
			Name:  "version",
			Usage: "display metachain-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		m := &metadata{
			directory: c.GlobalString("directory"),
			verbose:   verbose,
			e:         e,
			w:         w,
		}
		c.App.Metadata["config"] = m

		file := c.GlobalString("config")
		if "" == file || "version" == c.Args().Get(0) {
			return nil
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		conf, err := configuration.GetConfiguration(file, nil)
		if nil != err {
			return err
		}
		if err := logger.Initialise(conf.Logging.Logger()); nil != err {
			return err
		}
		m.config = conf

		return nil
	}

	// release connections
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || nil == m.config {
			return nil
		}
		if nil != m.backend {
			m.backend.Close()
		}
		logger.Finalise()
		return nil
	}

	return app
}

// open the configured store and anchor once per run
func (m *metadata) connect(readOnly bool) (*backend.T, error) {
	if nil == m.config {
		return nil, ErrRequiredConfigFile
	}
	if nil != m.backend {
		return m.backend, nil
	}
	b, err := backend.Open(context.Background(), m.config, readOnly)
	if nil != err {
		return nil, err
	}
	m.backend = b
	return b, nil
}
