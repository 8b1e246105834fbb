// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cid

import (
	"strings"
)

// DefaultGateway - public gateway used when none is configured
const DefaultGateway = "https://ipfs.filebase.io/ipfs/"

// Rewrite - convert an ipfs:// URI into a fetchable gateway address
//
// any other URI is returned unchanged
func Rewrite(uri string, gateway string) string {
	if !strings.HasPrefix(uri, Scheme) {
		return uri
	}
	return NormaliseGateway(gateway) + uri[len(Scheme):]
}

// NormaliseGateway - ensure a gateway base is set and ends with a slash
func NormaliseGateway(gateway string) string {
	gateway = strings.TrimSpace(gateway)
	if "" == gateway {
		return DefaultGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return gateway
}

// Locator - the gateway address of a content identifier
func (c CID) Locator(gateway string) string {
	return Rewrite(c.URI(), gateway)
}
