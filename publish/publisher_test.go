// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/metachain/bundle"
	"github.com/bitmark-inc/metachain/chain"
	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/fixtures"
	"github.com/bitmark-inc/metachain/gateway/mocks"
	"github.com/bitmark-inc/metachain/history"
	"github.com/bitmark-inc/metachain/publish"
	"github.com/bitmark-inc/metachain/record"
	"github.com/bitmark-inc/metachain/storage"
)

func newMutator(t *testing.T) *chain.Mutator {
	m, err := chain.NewMutator(chain.DefaultTemplate(), chain.NewRand(42))
	assert.Nil(t, err, "mutator error")
	return m
}

func TestPublishAnchorsEveryID(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockStore(ctl)
	anchor := mocks.NewMockAnchor(ctl)

	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(fixtures.CID1, nil).Times(1)
	anchor.EXPECT().SetAnchor(gomock.Any(), uint64(0), fixtures.CID1).Return(nil).Times(1)
	anchor.EXPECT().SetAnchor(gomock.Any(), uint64(1), fixtures.CID1).Return(nil).Times(1)
	anchor.EXPECT().SetAnchor(gomock.Any(), uint64(2), fixtures.CID1).Return(nil).Times(1)

	p := publish.New(logger.New(fixtures.LogCategory), store, anchor, nil)
	b, err := p.Publish(context.Background(), fixtures.Records(3, record.Root), nil)
	assert.Nil(t, err, "publish error")
	assert.Equal(t, fixtures.CID1, b.CID, "wrong identifier")
}

func TestPublishAnchorError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := errors.New("transaction rejected")

	store := mocks.NewMockStore(ctl)
	anchor := mocks.NewMockAnchor(ctl)

	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(fixtures.CID1, nil).Times(1)
	anchor.EXPECT().SetAnchor(gomock.Any(), uint64(0), fixtures.CID1).Return(failure).Times(1)

	p := publish.New(logger.New(fixtures.LogCategory), store, anchor, nil)
	b, err := p.Publish(context.Background(), fixtures.Records(2, record.Root), nil)
	assert.Equal(t, failure, err, "wrong error")
	assert.Equal(t, fixtures.CID1, b.CID, "stored bundle not returned")
}

func TestExtendFirstPublication(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockStore(ctl)
	anchor := mocks.NewMockAnchor(ctl)

	anchor.EXPECT().GetAnchor(gomock.Any(), uint64(0)).Return(cid.CID(""), fault.ErrAnchorNotFound).Times(1)
	gomock.InOrder(
		store.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, data []byte) (cid.CID, error) {
				b, err := bundle.Decode(data)
				assert.Nil(t, err, "decode error")
				assert.True(t, b.Records[0].Prior.IsRoot(), "first publication is not root")
				return fixtures.CID1, nil
			}).Times(1),
		anchor.EXPECT().SetAnchor(gomock.Any(), uint64(0), fixtures.CID1).Return(nil).Times(1),
		store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(fixtures.CID2, nil).Times(1),
		anchor.EXPECT().SetAnchor(gomock.Any(), uint64(0), fixtures.CID2).Return(nil).Times(1),
	)

	p := publish.New(logger.New(fixtures.LogCategory), store, anchor, newMutator(t))
	b, edited, err := p.Extend(context.Background(), fixtures.Records(1, record.Root), 2, nil)
	assert.Nil(t, err, "extend error")
	assert.Equal(t, []uint64{0, 0}, edited, "wrong edited ids")
	assert.Equal(t, fixtures.CID2, b.CID, "wrong bundle")
	assert.Equal(t, record.PointTo(fixtures.CID1), b.Records[0].Prior, "edit not chained to first publication")
}

func TestExtendFirstPublicationFails(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockStore(ctl)
	anchor := mocks.NewMockAnchor(ctl)

	failure := errors.New("store offline")
	anchor.EXPECT().GetAnchor(gomock.Any(), uint64(0)).Return(cid.CID(""), fault.ErrAnchorNotFound).Times(1)
	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(cid.CID(""), failure).Times(1)

	p := publish.New(logger.New(fixtures.LogCategory), store, anchor, newMutator(t))
	_, edited, err := p.Extend(context.Background(), fixtures.Records(1, record.Root), 1, nil)
	assert.Equal(t, failure, err, "wrong error")
	assert.Nil(t, edited, "edits applied without a first publication")
}

func TestExtendErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockStore(ctl)
	anchor := mocks.NewMockAnchor(ctl)

	_, _, err := publish.New(logger.New(fixtures.LogCategory), store, anchor, nil).Extend(context.Background(), fixtures.Records(1, record.Root), 1, nil)
	assert.Equal(t, fault.ErrNotInitialised, err, "missing mutator accepted")

	p := publish.New(logger.New(fixtures.LogCategory), store, anchor, newMutator(t))
	_, _, err = p.Extend(context.Background(), nil, 1, nil)
	assert.Equal(t, fault.ErrEmptyBatch, err, "empty batch accepted")

	failure := errors.New("ledger offline")
	anchor.EXPECT().GetAnchor(gomock.Any(), uint64(0)).Return(cid.CID(""), failure).Times(1)
	_, _, err = p.Extend(context.Background(), fixtures.Records(1, record.Root), 1, nil)
	assert.Equal(t, failure, err, "wrong error")
}

// build, publish and extend against the local database then walk
// the history back to the first publication
func TestPublishAndResolve(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "metachain-publish")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	log := logger.New(fixtures.LogCategory)
	db, err := storage.Open(log, filepath.Join(dir, "test.leveldb"), storage.ReadWrite, "")
	assert.Nil(t, err, "open error")
	defer db.Close()

	builder, err := chain.NewBuilder(chain.DefaultTemplate(), chain.NewRand(7))
	assert.Nil(t, err, "builder error")
	batch, err := builder.Build(1)
	assert.Nil(t, err, "build error")

	ctx := context.Background()
	p := publish.New(log, db.Bundles(), db.Anchors(), newMutator(t))

	first, err := p.Publish(ctx, batch, nil)
	assert.Nil(t, err, "publish error")

	again, err := p.Publish(ctx, batch, nil)
	assert.Nil(t, err, "republish error")
	assert.Equal(t, first.CID, again.CID, "identifier not idempotent")

	second, _, err := p.Extend(ctx, first.Records, 1, nil)
	assert.Nil(t, err, "extend error")
	third, _, err := p.Extend(ctx, second.Records, 3, nil)
	assert.Nil(t, err, "extend error")

	assert.Equal(t, record.PointTo(first.CID), second.Records[0].Prior, "second not chained to first")
	assert.Equal(t, record.PointTo(second.CID), third.Records[0].Prior, "third not chained to second")

	r := history.New(log, db.Bundles(), db.Anchors(), history.Options{})
	ids, err := r.ResolveHistory(ctx, 0)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, []cid.CID{third.CID, second.CID, first.CID}, ids, "wrong history")

	// input records survive unchanged
	fetched, err := db.Bundles().Get(ctx, first.CID)
	assert.Nil(t, err, "get error")
	assert.NotEqual(t, 0, len(fetched), "empty bundle")
	assert.True(t, batch[0].Prior.IsRoot(), "input batch modified")
}
