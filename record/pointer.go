// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"encoding/json"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
)

// wire form of the root sentinel
const rootText = "0"

// Pointer - link to the bundle holding the previous version
//
// the zero value is the root sentinel
type Pointer struct {
	target cid.CID
}

// Root - the sentinel marking the oldest version of a chain
var Root = Pointer{}

// PointTo - a pointer to an existing bundle
func PointTo(c cid.CID) Pointer {
	return Pointer{target: c}
}

// IsRoot - true for the root sentinel
func (p Pointer) IsRoot() bool {
	return p.target.IsZero()
}

// CID - the bundle identifier, empty for root
func (p Pointer) CID() cid.CID {
	return p.target
}

// String - wire text of the pointer
func (p Pointer) String() string {
	if p.IsRoot() {
		return rootText
	}
	return p.target.URI()
}

// ParsePointer - decode the text form of a pointer
//
// "", "0" are root; anything else must name a content identifier
func ParsePointer(s string) (Pointer, error) {
	if "" == s || rootText == s {
		return Root, nil
	}
	c, err := cid.ParseURI(s)
	if nil != err {
		return Root, fault.ErrInvalidPointer
	}
	return PointTo(c), nil
}

// MarshalJSON - always a string
func (p Pointer) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON - also accepts the numeric 0 and null written by
// older generators
func (p *Pointer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("0")) {
		*p = Root
		return nil
	}

	s := ""
	if err := json.Unmarshal(b, &s); nil != err {
		return fault.ErrInvalidPointer
	}
	ptr, err := ParsePointer(s)
	if nil != err {
		return err
	}
	*p = ptr
	return nil
}
