// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/metachain/backend"
	"github.com/bitmark-inc/metachain/configuration"
	"github.com/bitmark-inc/metachain/history"
)

const (
	hidden = "********"
)

// setup command handler
//
// commands that do not need the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)

	case "start", "run":
		return false // continue processing

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			return false // let the later handlers decide
		}
		usage(program)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func usage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

	fmt.Printf("supported commands:\n\n")
	fmt.Printf("  help                       (h)      - display this message\n\n")
	fmt.Printf("  version                    (v)      - display version string\n\n")

	fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
	fmt.Printf("                                        for convienience when passing script arguments\n")
	fmt.Printf("\n")

	fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
	fmt.Printf("\n")

	fmt.Printf("  anchor ID                  (a)      - display the published identifier of a record\n")
	fmt.Printf("\n")

	fmt.Printf("  history ID                 (hist)   - display every version of a record, newest first\n")
	fmt.Printf("\n")
}

// configuration command handler
//
// commands that only inspect the configuration
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		c := *options
		if "" != c.Store.Filebase.SecretKey {
			c.Store.Filebase.SecretKey = hidden
		}
		if "" != c.Ledger.Ethereum.PrivateKey {
			c.Ledger.Ethereum.PrivateKey = hidden
		}
		printJson(c)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
//
// the backends are open so these commands can read anchors and bundles
func processDataCommand(log *logger.L, arguments []string, b *backend.T, resolver *history.Resolver) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "anchor", "a":
		id := recordID(arguments)
		c, err := b.Anchor.GetAnchor(context.Background(), id)
		if nil != err {
			exitwithstatus.Message("error: anchor: %d  error: %s", id, err)
		}
		printJson(struct {
			ID  uint64 `json:"id"`
			URI string `json:"uri"`
			URL string `json:"url"`
		}{
			ID:  id,
			URI: c.URI(),
			URL: b.Store.ResolveURI(c),
		})

	case "history", "hist":
		id := recordID(arguments)
		entries, err := resolver.Walk(context.Background(), id)
		uris := make([]string, len(entries))
		for i, e := range entries {
			uris[i] = e.URI
		}
		printJson(struct {
			ID         uint64   `json:"id"`
			URIHistory []string `json:"uriHistory"`
		}{
			ID:         id,
			URIHistory: uris,
		})
		if nil != err {
			log.Errorf("history: %d  error: %s", id, err)
			exitwithstatus.Message("error: history: %d  error: %s", id, err)
		}

	case "start", "run":
		return false // continue processing

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func recordID(arguments []string) uint64 {
	if len(arguments) < 1 {
		exitwithstatus.Message("error: missing record id")
	}
	id, err := strconv.ParseUint(arguments[0], 10, 64)
	if nil != err {
		exitwithstatus.Message("error: invalid record id: %q", arguments[0])
	}
	return id
}

func printJson(data interface{}) {
	b, err := json.Marshal(data)
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	json.Indent(&out, b, "", "  ")
	out.WriteTo(os.Stdout)
	os.Stdout.WriteString("\n")
}
