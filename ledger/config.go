// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bitmark-inc/metachain/fault"
)

const (
	defaultConfirmations = 1
	defaultPollInterval  = 2 * time.Second
)

// Configuration - chain connection and contract
type Configuration struct {
	RPC           string `gluamapper:"rpc" json:"rpc"`
	Contract      string `gluamapper:"contract" json:"contract"`
	PrivateKey    string `gluamapper:"private_key" json:"-"`
	ChainID       int64  `gluamapper:"chain_id" json:"chain_id"`
	Confirmations uint64 `gluamapper:"confirmations" json:"confirmations"`
	PollInterval  int    `gluamapper:"poll_interval" json:"poll_interval"` // seconds
}

// Defaults - fill unset values
func (c *Configuration) Defaults() {
	if 0 == c.Confirmations {
		c.Confirmations = defaultConfirmations
	}
	if c.PollInterval <= 0 {
		c.PollInterval = int(defaultPollInterval / time.Second)
	}
}

// Validate - an endpoint and a contract address are required; the
// private key only for writes
func (c *Configuration) Validate() error {
	if "" == c.RPC {
		return fmt.Errorf("%w: rpc", fault.ErrMissingParameter)
	}
	if !common.IsHexAddress(c.Contract) {
		return fmt.Errorf("%w: contract: %q", fault.ErrInvalidBackend, c.Contract)
	}
	if "" != c.PrivateKey && c.ChainID <= 0 {
		return fmt.Errorf("%w: chain_id", fault.ErrMissingParameter)
	}
	return nil
}

func (c *Configuration) pollInterval() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}
