// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/metachain/bundle"
	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/fixtures"
	"github.com/bitmark-inc/metachain/gateway/mocks"
	"github.com/bitmark-inc/metachain/record"
)

func TestEncodeSortsRecords(t *testing.T) {
	batch := fixtures.Records(3, record.Root)
	reversed := []record.Record{batch[2], batch[0], batch[1]}

	a, err := bundle.Encode(batch, nil)
	assert.Nil(t, err, "encode error")

	b, err := bundle.Encode(reversed, nil)
	assert.Nil(t, err, "encode error")

	assert.Equal(t, a, b, "encoding depends on input order")
	assert.Equal(t, uint64(2), reversed[0].ID, "input modified")
}

func TestEncodeErrors(t *testing.T) {
	_, err := bundle.Encode(nil, nil)
	assert.Equal(t, fault.ErrEmptyBundle, err, "empty batch accepted")

	batch := fixtures.Records(2, record.Root)
	batch[1].ID = batch[0].ID
	_, err = bundle.Encode(batch, nil)
	assert.Equal(t, fault.ErrDuplicateRecord, err, "duplicate id accepted")

	batch = fixtures.Records(2, record.Root)
	names := []string{
		"",
		"/abs.png",
		"dir/",
		"../up.png",
		"a//b.png",
		"a\\b.png",
		"1.json",
	}
	for _, name := range names {
		_, err = bundle.Encode(batch, map[string][]byte{name: []byte("x")})
		assert.Equal(t, fault.ErrInvalidFileName, err, "accepted file name: %q", name)
	}

	_, err = bundle.Encode(batch, map[string][]byte{"images/0.png": []byte("x")})
	assert.Nil(t, err, "valid file name rejected")
}

func TestDecodeRoundTrip(t *testing.T) {
	batch := fixtures.Records(3, record.PointTo(fixtures.CID1))
	files := map[string][]byte{
		"images/0.png": {0x89, 'P', 'N', 'G'},
	}

	data, err := bundle.Encode(batch, files)
	assert.Nil(t, err, "encode error")

	b, err := bundle.Decode(data)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, []uint64{0, 1, 2}, b.IDs(), "wrong ids")
	assert.Equal(t, files, b.Files, "wrong files")

	for _, r := range batch {
		actual, ok := b.Record(r.ID)
		assert.True(t, ok, "missing record: %d", r.ID)
		assert.True(t, r.Equal(actual), "record %d changed", r.ID)
	}

	_, ok := b.Record(99)
	assert.False(t, ok, "unexpected record")
}

func TestDecodeCorrupt(t *testing.T) {
	items := []string{
		``,
		`not json`,
		`{"version":2,"records":[{"id":0}]}`,
		`{"version":1,"records":[]}`,
		`{"version":1}`,
		`{"version":1,"records":[{"id":1},{"id":0}]}`,
		`{"version":1,"records":[{"id":1},{"id":1}]}`,
		`{"version":1,"records":[{"id":0}],"files":{"../x":""}}`,
		`{"version":1,"records":[{"id":0}]} {}`,
		`{"version":1,"records":[{"id":0,"last_record_hash":"junk"}]}`,
	}

	for i, item := range items {
		_, err := bundle.Decode([]byte(item))
		assert.Equal(t, fault.ErrCorruptBundle, err, "%d: corrupt bundle accepted: %s", i, item)
	}
}

func TestPack(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	batch := fixtures.Records(2, record.Root)
	expected, _ := bundle.Encode(batch, nil)

	store := mocks.NewMockStore(ctl)
	store.EXPECT().Put(gomock.Any(), expected).Return(fixtures.CID2, nil).Times(1)

	b, err := bundle.New(logger.New(fixtures.LogCategory), store).Pack(context.Background(), batch, nil)
	assert.Nil(t, err, "pack error")
	assert.Equal(t, fixtures.CID2, b.CID, "wrong identifier")
	assert.Equal(t, 2, len(b.Records), "wrong record count")
}

func TestPackStoreError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := errors.New("store offline")

	store := mocks.NewMockStore(ctl)
	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(cid.CID(""), failure).Times(1)

	_, err := bundle.New(logger.New(fixtures.LogCategory), store).Pack(context.Background(), fixtures.Records(1, record.Root), nil)
	assert.Equal(t, failure, err, "wrong error")
}

func TestPackEmpty(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	store := mocks.NewMockStore(ctl)
	store.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

	_, err := bundle.New(logger.New(fixtures.LogCategory), store).Pack(context.Background(), nil, nil)
	assert.Equal(t, fault.ErrEmptyBundle, err, "wrong error")
}

func TestFetch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	batch := fixtures.Records(1, record.Root)
	data, _ := bundle.Encode(batch, nil)

	store := mocks.NewMockStore(ctl)
	store.EXPECT().Get(gomock.Any(), fixtures.CID3).Return(data, nil).Times(1)
	store.EXPECT().Get(gomock.Any(), fixtures.CID4).Return(nil, fault.ErrNotFound).Times(1)

	b, err := bundle.Fetch(context.Background(), store, fixtures.CID3)
	assert.Nil(t, err, "fetch error")
	assert.Equal(t, fixtures.CID3, b.CID, "wrong identifier")

	_, err = bundle.Fetch(context.Background(), store, fixtures.CID4)
	assert.Equal(t, fault.ErrNotFound, err, "wrong error")
}
