// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cid

import (
	"strings"

	"github.com/mr-tron/base58"
	mh "github.com/multiformats/go-multihash"

	"github.com/bitmark-inc/metachain/fault"
)

// Scheme - URI scheme of a content address
const Scheme = "ipfs://"

const (
	gatewayPath  = "/ipfs/"
	v1Prefix     = 'b'
	v1MinLength  = 50
	base32Digits = "abcdefghijklmnopqrstuvwxyz234567"
)

// CID - a content identifier
type CID string

// Sum - derive the CIDv0 of a byte slice
//
// identical bytes always give identical identifiers
func Sum(data []byte) (CID, error) {
	h, err := mh.Sum(data, mh.SHA2_256, -1)
	if nil != err {
		return "", err
	}
	return CID(h.B58String()), nil
}

// Parse - validate a bare content identifier
func Parse(s string) (CID, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return "", fault.ErrInvalidCID
	}

	if strings.HasPrefix(s, "Qm") {
		buffer, err := base58.Decode(s)
		if nil != err {
			return "", fault.ErrInvalidCID
		}
		if _, err := mh.Cast(buffer); nil != err {
			return "", fault.ErrInvalidCID
		}
		return CID(s), nil
	}

	if v1Prefix == s[0] && len(s) >= v1MinLength {
		for _, c := range s[1:] {
			if !strings.ContainsRune(base32Digits, c) {
				return "", fault.ErrInvalidCID
			}
		}
		return CID(s), nil
	}

	return "", fault.ErrInvalidCID
}

// ParseURI - extract the identifier from any of the accepted forms
func ParseURI(uri string) (CID, error) {
	uri = strings.TrimSpace(uri)

	switch {
	case strings.HasPrefix(uri, Scheme):
		uri = uri[len(Scheme):]
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		n := strings.Index(uri, gatewayPath)
		if n < 0 {
			return "", fault.ErrInvalidURI
		}
		uri = uri[n+len(gatewayPath):]
	}

	if n := strings.IndexByte(uri, '/'); n >= 0 {
		uri = uri[:n]
	}
	return Parse(uri)
}

// IsZero - true if no identifier is set
func (c CID) IsZero() bool {
	return "" == c
}

// String - the bare identifier
func (c CID) String() string {
	return string(c)
}

// URI - the ipfs:// form
func (c CID) URI() string {
	return Scheme + string(c)
}

// MarshalText - bare identifier
func (c CID) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText - accepts any form that ParseURI accepts
func (c *CID) UnmarshalText(s []byte) error {
	id, err := ParseURI(string(s))
	if nil != err {
		return err
	}
	*c = id
	return nil
}
