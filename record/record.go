// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/json"
	"strconv"
)

// Record - one version of a metadata item
type Record struct {
	ID          uint64     `json:"id"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	CreatedAt   int64      `json:"creation_date"`
	Attributes  Attributes `json:"attributes"`
	Prior       Pointer    `json:"last_record_hash"`
}

// FileName - name of the record inside a bundle or metadata directory
func FileName(id uint64) string {
	return strconv.FormatUint(id, 10) + ".json"
}

// Clone - deep copy so that edits never reach the source record
func (r Record) Clone() Record {
	r.Attributes = r.Attributes.Clone()
	return r
}

// Equal - field by field comparison
func (r Record) Equal(other Record) bool {
	if r.ID != other.ID ||
		r.Description != other.Description ||
		r.Image != other.Image ||
		r.CreatedAt != other.CreatedAt ||
		r.Prior != other.Prior ||
		len(r.Attributes) != len(other.Attributes) {
		return false
	}
	for k, v := range r.Attributes {
		if w, ok := other.Attributes[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// Marshal - canonical compact encoding of a single record
func (r Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal - decode a single record
func Unmarshal(data []byte) (Record, error) {
	r := Record{}
	err := json.Unmarshal(data, &r)
	return r, err
}

// CloneAll - deep copy of a batch
func CloneAll(records []Record) []Record {
	c := make([]Record, len(records))
	for i, r := range records {
		c[i] = r.Clone()
	}
	return c
}
