// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bitmark-inc/metachain/record"
)

// top level <id>.json files are records
var recordFile = regexp.MustCompile(`^[0-9]+\.json$`)

// readDirectory - records sorted by id plus every other file as a
// payload keyed by its slash separated relative path
func readDirectory(directory string) ([]record.Record, map[string][]byte, error) {
	records := make([]record.Record, 0, 16)
	files := make(map[string][]byte)

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if nil != err {
			return err
		}

		name := d.Name()
		if path != directory && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		relative, err := filepath.Rel(directory, path)
		if nil != err {
			return err
		}
		relative = filepath.ToSlash(relative)

		data, err := os.ReadFile(path)
		if nil != err {
			return err
		}

		if !recordFile.MatchString(relative) {
			files[relative] = data
			return nil
		}

		r, err := record.Unmarshal(data)
		if nil != err {
			return ErrUnknownMetadataFile
		}
		if record.FileName(r.ID) != relative {
			return ErrUnexpectedRecordID
		}
		records = append(records, r)
		return nil
	})
	if nil != err {
		return nil, nil, err
	}

	if 0 == len(records) {
		return nil, nil, ErrNoRecords
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})

	return records, files, nil
}

// writeRecords - one <id>.json per record
func writeRecords(directory string, records []record.Record) error {
	if err := os.MkdirAll(directory, 0755); nil != err {
		return err
	}
	for _, r := range records {
		err := writeJsonFile(filepath.Join(directory, record.FileName(r.ID)), r)
		if nil != err {
			return err
		}
	}
	return nil
}

// hasRecords - true if the directory already holds any record file
func hasRecords(directory string) bool {
	entries, err := os.ReadDir(directory)
	if nil != err {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && recordFile.MatchString(e.Name()) {
			return true
		}
	}
	return false
}
