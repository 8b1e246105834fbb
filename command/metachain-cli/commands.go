// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/metachain/bundle"
	"github.com/bitmark-inc/metachain/chain"
	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/configuration"
	"github.com/bitmark-inc/metachain/history"
	"github.com/bitmark-inc/metachain/publish"
	"github.com/bitmark-inc/metachain/record"
)

type createReply struct {
	Directory string   `json:"directory"`
	IDs       []uint64 `json:"ids"`
}

type editReply struct {
	Directory string         `json:"directory"`
	Prior     record.Pointer `json:"prior"`
	Edited    []uint64       `json:"edited"`
}

type bundleReply struct {
	CID      cid.CID  `json:"cid"`
	URI      string   `json:"uri"`
	IDs      []uint64 `json:"ids"`
	Files    int      `json:"files"`
	Edited   []uint64 `json:"edited,omitempty"`
	Anchored bool     `json:"anchored"`
}

type anchorReply struct {
	ID  uint64  `json:"id"`
	CID cid.CID `json:"cid"`
	URI string  `json:"uri"`
}

type historyReply struct {
	ID         uint64          `json:"id"`
	URIHistory []string        `json:"uriHistory"`
	Entries    []history.Entry `json:"entries,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// template with any generator overrides from the configuration
func (m *metadata) template() chain.Template {
	t := chain.DefaultTemplate()
	if nil == m.config {
		return t
	}
	if "" != m.config.Generator.Description {
		t.Description = m.config.Generator.Description
	}
	if "" != m.config.Generator.Image {
		t.Image = m.config.Generator.Image
	}
	return t
}

func (m *metadata) seed(c *cli.Context) int64 {
	if s := c.Int64("seed"); 0 != s {
		return s
	}
	if nil != m.config {
		return m.config.Generator.Seed
	}
	return 0
}

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return ErrRequiredCount
	}
	if !c.Bool("force") && hasRecords(m.directory) {
		return ErrDirectoryExists
	}

	builder, err := chain.NewBuilder(m.template(), chain.NewRand(m.seed(c)))
	if nil != err {
		return err
	}
	records, err := builder.Build(count)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "writing: %d records to: %s\n", len(records), m.directory)
	}
	if err := writeRecords(m.directory, records); nil != err {
		return err
	}

	ids := make([]uint64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return printJson(m.w, createReply{Directory: m.directory, IDs: ids})
}

func runEdit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	records, _, err := readDirectory(m.directory)
	if nil != err {
		return err
	}

	prior := record.Root
	if s := c.String("prior"); "" != s {
		prior, err = record.ParsePointer(s)
		if nil != err {
			return err
		}
	} else {
		b, err := m.connect(true)
		if nil != err {
			return err
		}
		prior, err = publish.New(logger.New("publish"), b.Store, b.Anchor, nil).Prior(context.Background(), records[0].ID)
		if nil != err {
			return err
		}
		if prior.IsRoot() {
			return ErrNotPublished
		}
	}

	mutator, err := chain.NewMutator(m.template(), chain.NewRand(m.seed(c)))
	if nil != err {
		return err
	}
	mutated, edited, err := mutator.Mutate(records, c.Int("edits"), prior)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "prior: %s  edited: %v\n", prior, edited)
	}
	if err := writeRecords(m.directory, mutated); nil != err {
		return err
	}
	return printJson(m.w, editReply{Directory: m.directory, Prior: prior, Edited: edited})
}

func runPack(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	records, files, err := readDirectory(m.directory)
	if nil != err {
		return err
	}

	b, err := m.connect(false)
	if nil != err {
		return err
	}

	packed, err := bundle.New(logger.New("bundle"), b.Store).Pack(context.Background(), records, files)
	if nil != err {
		return err
	}
	return printJson(m.w, newBundleReply(b.Store.ResolveURI(packed.CID), packed, nil, false))
}

func runPublish(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	records, files, err := readDirectory(m.directory)
	if nil != err {
		return err
	}

	b, err := m.connect(false)
	if nil != err {
		return err
	}

	p := publish.New(logger.New("publish"), b.Store, b.Anchor, nil)
	published, err := p.Publish(context.Background(), records, files)
	if nil != err {
		return err
	}
	return printJson(m.w, newBundleReply(b.Store.ResolveURI(published.CID), published, nil, true))
}

func runExtend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	records, files, err := readDirectory(m.directory)
	if nil != err {
		return err
	}

	b, err := m.connect(false)
	if nil != err {
		return err
	}

	mutator, err := chain.NewMutator(m.template(), chain.NewRand(m.seed(c)))
	if nil != err {
		return err
	}

	p := publish.New(logger.New("publish"), b.Store, b.Anchor, mutator)
	published, edited, err := p.Extend(context.Background(), records, c.Int("edits"), files)
	if nil != err {
		return err
	}

	// the directory follows the published state
	if err := writeRecords(m.directory, published.Records); nil != err {
		return err
	}
	return printJson(m.w, newBundleReply(b.Store.ResolveURI(published.CID), published, edited, true))
}

func runAnchor(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	b, err := m.connect("" == c.String("set"))
	if nil != err {
		return err
	}

	ctx := context.Background()

	if c.Bool("list") {
		if nil == b.Database || configuration.LedgerLocal != m.config.Ledger.Backend {
			return ErrLocalAnchorsOnly
		}
		anchors, err := b.Database.Anchors().List()
		if nil != err {
			return err
		}
		return printJson(m.w, anchors)
	}

	id := c.Uint64("id")
	if s := c.String("set"); "" != s {
		target, err := cid.ParseURI(s)
		if nil != err {
			return err
		}
		if err := b.Anchor.SetAnchor(ctx, id, target); nil != err {
			return err
		}
	}

	current, err := b.Anchor.GetAnchor(ctx, id)
	if nil != err {
		return err
	}
	return printJson(m.w, anchorReply{ID: id, CID: current, URI: b.Store.ResolveURI(current)})
}

func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	b, err := m.connect(true)
	if nil != err {
		return err
	}

	id := c.Uint64("id")
	r := history.New(logger.New("history"), b.Store, b.Anchor, m.config.HistoryOptions())
	entries, err := r.Walk(context.Background(), id)

	reply := historyReply{
		ID:         id,
		URIHistory: make([]string, len(entries)),
	}
	for i, e := range entries {
		reply.URIHistory[i] = e.URI
	}
	if c.Bool("records") {
		reply.Entries = entries
	}
	if nil != err {
		// partial history is still shown
		reply.Error = err.Error()
		if e := printJson(m.w, reply); nil != e {
			return e
		}
		return err
	}
	return printJson(m.w, reply)
}

func newBundleReply(uri string, b *bundle.Bundle, edited []uint64, anchored bool) bundleReply {
	return bundleReply{
		CID:      b.CID,
		URI:      uri,
		IDs:      b.IDs(),
		Files:    len(b.Files),
		Edited:   edited,
		Anchored: anchored,
	}
}
