// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared helpers for package tests
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/record"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// identifiers that parse but are not derived from any bundle
const (
	CID1 = cid.CID("bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi")
	CID2 = cid.CID("bafybeibwzifw52ttrkqlikfzext5akxu7lz4xiwjgwzmqcpdzmp3n5vnbe")
	CID3 = cid.CID("bafybeihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku")
	CID4 = cid.CID("bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy")
)

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Records - a small batch with fixed content
func Records(count int, prior record.Pointer) []record.Record {
	batch := make([]record.Record, count)
	for i := 0; i < count; i += 1 {
		batch[i] = record.Record{
			ID:          uint64(i),
			Description: "fixture record",
			Image:       "https://example.com/image.png",
			CreatedAt:   1733011200000,
			Attributes: record.Attributes{
				"territory_id":  record.Number(int64(i)),
				"legado_level":  record.Number(int64(10 + i)),
				"carbon_offset": record.Number(int64(1000 * (i + 1))),
				"legado_user":   record.Text(fmt.Sprintf("user-%d", i)),
			},
			Prior: prior,
		}
	}
	return batch
}
