// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
)

const (
	v1 = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
)

func TestSumIsDeterministic(t *testing.T) {
	a, err := cid.Sum([]byte(`{"version":1}`))
	assert.Nil(t, err, "sum error")

	b, err := cid.Sum([]byte(`{"version":1}`))
	assert.Nil(t, err, "sum error")

	c, err := cid.Sum([]byte(`{"version":2}`))
	assert.Nil(t, err, "sum error")

	assert.Equal(t, a, b, "identical bytes gave different identifiers")
	assert.NotEqual(t, a, c, "different bytes gave same identifier")
	assert.Equal(t, 46, len(a.String()), "wrong CIDv0 length")
	assert.Equal(t, "Qm", a.String()[:2], "wrong CIDv0 prefix")

	parsed, err := cid.Parse(a.String())
	assert.Nil(t, err, "summed identifier did not parse")
	assert.Equal(t, a, parsed, "wrong parse result")
}

func TestParse(t *testing.T) {
	sum, _ := cid.Sum([]byte("payload"))

	items := []struct {
		in  string
		out cid.CID
		err error
	}{
		{sum.String(), sum, nil},
		{v1, cid.CID(v1), nil},
		{"", "", fault.ErrInvalidCID},
		{"Qm000", "", fault.ErrInvalidCID},
		{"bafy", "", fault.ErrInvalidCID},
		{"0", "", fault.ErrInvalidCID},
		{"bAFYBEIGDYRZT5SFP7UDM7HU76UH7Y26NF3EFUYLQABF3OCLGTQY55FBZDI", "", fault.ErrInvalidCID},
	}

	for i, item := range items {
		actual, err := cid.Parse(item.in)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
		assert.Equal(t, item.out, actual, "%d: wrong identifier", i)
	}
}

func TestParseURI(t *testing.T) {
	items := []struct {
		in  string
		err error
	}{
		{v1, nil},
		{"ipfs://" + v1, nil},
		{"ipfs://" + v1 + "/7.json", nil},
		{"https://ipfs.filebase.io/ipfs/" + v1, nil},
		{"https://ipfs.filebase.io/ipfs/" + v1 + "/3.json", nil},
		{"https://example.com/" + v1, fault.ErrInvalidURI},
		{"ipfs://", fault.ErrInvalidCID},
	}

	for i, item := range items {
		actual, err := cid.ParseURI(item.in)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
		if nil == item.err {
			assert.Equal(t, cid.CID(v1), actual, "%d: wrong identifier", i)
		}
	}
}

func TestRewrite(t *testing.T) {
	c := cid.CID(v1)

	assert.Equal(t, "ipfs://"+v1, c.URI(), "wrong uri")
	assert.Equal(t, "https://ipfs.filebase.io/ipfs/"+v1, c.Locator(""), "wrong default locator")
	assert.Equal(t, "http://127.0.0.1:8080/ipfs/"+v1, c.Locator("http://127.0.0.1:8080/ipfs"), "wrong custom locator")
	assert.Equal(t, "https://x/ipfs/"+v1+"/1.json", cid.Rewrite("ipfs://"+v1+"/1.json", "https://x/ipfs/"), "wrong rewrite")
	assert.Equal(t, "https://other/"+v1, cid.Rewrite("https://other/"+v1, "https://x/ipfs/"), "non ipfs uri changed")
}

func TestTextEncoding(t *testing.T) {
	var c cid.CID
	err := c.UnmarshalText([]byte("ipfs://" + v1 + "/2.json"))
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, cid.CID(v1), c, "wrong identifier")

	b, err := c.MarshalText()
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, v1, string(b), "wrong text")

	err = c.UnmarshalText([]byte("nonsense"))
	assert.Equal(t, fault.ErrInvalidCID, err, "wrong error")
}
