// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bundle

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/record"
)

// Version - current wire format version
const Version = 1

// Bundle - an immutable set of record snapshots
type Bundle struct {
	CID     cid.CID
	Records []record.Record
	Files   map[string][]byte
}

type wireBundle struct {
	Version int               `json:"version"`
	Records []record.Record   `json:"records"`
	Files   map[string][]byte `json:"files,omitempty"`
}

// Encode - canonical bytes for a set of records and payload files
//
// neither records nor files are modified
func Encode(records []record.Record, files map[string][]byte) ([]byte, error) {
	if 0 == len(records) {
		return nil, fault.ErrEmptyBundle
	}

	sorted := record.CloneAll(records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	names := make(map[string]struct{}, len(sorted))
	for i, r := range sorted {
		if i > 0 && sorted[i-1].ID == r.ID {
			return nil, fault.ErrDuplicateRecord
		}
		names[record.FileName(r.ID)] = struct{}{}
	}

	for name := range files {
		if err := checkFileName(name); nil != err {
			return nil, err
		}
		if _, ok := names[name]; ok {
			return nil, fault.ErrInvalidFileName
		}
	}

	w := wireBundle{
		Version: Version,
		Records: sorted,
		Files:   files,
	}
	return json.Marshal(w)
}

// Decode - parse and validate bundle bytes
//
// any failure is reported as fault.ErrCorruptBundle
func Decode(data []byte) (*Bundle, error) {
	w := wireBundle{}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&w); nil != err {
		return nil, fault.ErrCorruptBundle
	}
	if decoder.More() {
		return nil, fault.ErrCorruptBundle
	}

	if Version != w.Version || 0 == len(w.Records) {
		return nil, fault.ErrCorruptBundle
	}
	for i := 1; i < len(w.Records); i += 1 {
		if w.Records[i-1].ID >= w.Records[i].ID {
			return nil, fault.ErrCorruptBundle
		}
	}
	for name := range w.Files {
		if nil != checkFileName(name) {
			return nil, fault.ErrCorruptBundle
		}
	}

	return &Bundle{
		Records: w.Records,
		Files:   w.Files,
	}, nil
}

// Record - the snapshot of a logical id
func (b *Bundle) Record(id uint64) (record.Record, bool) {
	n := sort.Search(len(b.Records), func(i int) bool {
		return b.Records[i].ID >= id
	})
	if n < len(b.Records) && b.Records[n].ID == id {
		return b.Records[n], true
	}
	return record.Record{}, false
}

// IDs - the logical ids present, ascending
func (b *Bundle) IDs() []uint64 {
	ids := make([]uint64, len(b.Records))
	for i, r := range b.Records {
		ids[i] = r.ID
	}
	return ids
}

// payload names are relative slash separated paths
func checkFileName(name string) error {
	if "" == name ||
		strings.HasPrefix(name, "/") ||
		strings.HasSuffix(name, "/") ||
		strings.Contains(name, "\\") {
		return fault.ErrInvalidFileName
	}
	for _, part := range strings.Split(name, "/") {
		if "" == part || "." == part || ".." == part {
			return fault.ErrInvalidFileName
		}
	}
	return nil
}
