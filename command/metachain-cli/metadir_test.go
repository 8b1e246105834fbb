// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/record"
)

const fixtureCID = cid.CID("bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi")

func TestReadDirectory(t *testing.T) {
	dir, err := os.MkdirTemp("", "metachain-metadir")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	records := []record.Record{
		{ID: 2, Attributes: record.Attributes{"a": record.Number(1)}},
		{ID: 0, Attributes: record.Attributes{"a": record.Text("x")}, Prior: record.PointTo(fixtureCID)},
	}
	assert.Nil(t, writeRecords(dir, records), "write error")
	assert.True(t, hasRecords(dir), "records not detected")

	assert.Nil(t, os.MkdirAll(filepath.Join(dir, "media", "audio"), 0755), "mkdir error")
	assert.Nil(t, os.WriteFile(filepath.Join(dir, "media", "audio", "1.json"), []byte("{}"), 0644), "write error")
	assert.Nil(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0644), "write error")

	actual, files, err := readDirectory(dir)
	assert.Nil(t, err, "read error")
	assert.Equal(t, 2, len(actual), "wrong record count")
	assert.Equal(t, uint64(0), actual[0].ID, "records not sorted")
	assert.True(t, records[1].Equal(actual[0]), "record changed")
	assert.True(t, records[0].Equal(actual[1]), "record changed")

	assert.Equal(t, map[string][]byte{"media/audio/1.json": []byte("{}")}, files, "wrong payload files")
}

func TestReadDirectoryErrors(t *testing.T) {
	dir, err := os.MkdirTemp("", "metachain-metadir")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	_, _, err = readDirectory(dir)
	assert.Equal(t, ErrNoRecords, err, "empty directory accepted")
	assert.False(t, hasRecords(dir), "empty directory has records")

	assert.Nil(t, os.WriteFile(filepath.Join(dir, "3.json"), []byte(`{"id":4}`), 0644), "write error")
	_, _, err = readDirectory(dir)
	assert.Equal(t, ErrUnexpectedRecordID, err, "mismatched id accepted")

	assert.Nil(t, os.WriteFile(filepath.Join(dir, "3.json"), []byte(`not json`), 0644), "write error")
	_, _, err = readDirectory(dir)
	assert.Equal(t, ErrUnknownMetadataFile, err, "bad json accepted")
}
