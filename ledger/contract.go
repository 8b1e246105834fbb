// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
)

const metadataABI = `[
  {"type":"function","name":"tokenURI","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],
   "outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"baseURI","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"setBaseURI","stateMutability":"nonpayable",
   "inputs":[{"name":"baseURI_","type":"string"}],
   "outputs":[]}
]`

// writes need the full client
type writeBackend interface {
	bind.ContractTransactor
	bind.ContractFilterer
	bind.DeployBackend
	BlockNumber(ctx context.Context) (uint64, error)
}

// Contract - anchor gateway over a deployed token contract
type Contract struct {
	log           *logger.L
	address       common.Address
	contract      *bind.BoundContract
	backend       writeBackend
	key           *ecdsa.PrivateKey
	chainID       *big.Int
	confirmations uint64
	pollInterval  time.Duration
	close         func()
}

// New - dial the chain and bind the contract
func New(ctx context.Context, log *logger.L, configuration Configuration) (*Contract, error) {
	configuration.Defaults()
	if err := configuration.Validate(); nil != err {
		return nil, err
	}

	client, err := ethclient.DialContext(ctx, configuration.RPC)
	if nil != err {
		return nil, err
	}

	c, err := newContract(log, configuration, client, client)
	if nil != err {
		client.Close()
		return nil, err
	}
	c.close = client.Close

	log.Infof("rpc: %s  contract: %s  writable: %v", configuration.RPC, c.address.Hex(), nil != c.key)
	return c, nil
}

// backend may be nil for a read only contract
func newContract(log *logger.L, configuration Configuration, caller bind.ContractCaller, backend writeBackend) (*Contract, error) {
	configuration.Defaults()

	parsed, err := abi.JSON(strings.NewReader(metadataABI))
	if nil != err {
		return nil, err
	}

	c := &Contract{
		log:           log,
		address:       common.HexToAddress(configuration.Contract),
		confirmations: configuration.Confirmations,
		pollInterval:  configuration.pollInterval(),
	}

	if nil != backend {
		c.backend = backend
		c.contract = bind.NewBoundContract(c.address, parsed, caller, backend, backend)
	} else {
		c.contract = bind.NewBoundContract(c.address, parsed, caller, nil, nil)
	}

	if "" != configuration.PrivateKey {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(configuration.PrivateKey, "0x"))
		if nil != err {
			return nil, fmt.Errorf("%w: private_key", fault.ErrInvalidBackend)
		}
		c.key = key
		c.chainID = big.NewInt(configuration.ChainID)
	}
	return c, nil
}

// Close - release the connection
func (c *Contract) Close() {
	if nil != c.close {
		c.close()
		c.close = nil
	}
}

// GetAnchor - bundle identifier in the token URI of id
func (c *Contract) GetAnchor(ctx context.Context, id uint64) (cid.CID, error) {
	uri, err := c.callString(ctx, "tokenURI", new(big.Int).SetUint64(id))
	if nil != err {
		return "", err
	}
	if "" == uri {
		return "", fault.ErrAnchorNotFound
	}
	return parseAnchor(uri)
}

// BaseURI - bundle identifier of the collection
func (c *Contract) BaseURI(ctx context.Context) (cid.CID, error) {
	uri, err := c.callString(ctx, "baseURI")
	if nil != err {
		return "", err
	}
	if "" == uri {
		return "", fault.ErrAnchorNotFound
	}
	return parseAnchor(uri)
}

// SetAnchor - point the collection base URI at c and wait for the
// configured number of confirmations
//
// every id of the collection moves, not just id
func (c *Contract) SetAnchor(ctx context.Context, id uint64, anchor cid.CID) error {
	if nil == c.key || nil == c.backend {
		return fmt.Errorf("%w: private_key", fault.ErrMissingParameter)
	}
	if _, err := cid.Parse(anchor.String()); nil != err {
		return err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if nil != err {
		return err
	}
	opts.Context = ctx

	base := anchor.URI() + "/"
	tx, err := c.contract.Transact(opts, "setBaseURI", base)
	if nil != err {
		c.log.Errorf("setBaseURI: %s  error: %s", base, err)
		return err
	}
	c.log.Infof("id: %d  setBaseURI: %s  tx: %s", id, base, tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if nil != err {
		return c.expired(ctx, err)
	}
	if types.ReceiptStatusSuccessful != receipt.Status {
		return fmt.Errorf("%w: tx: %s reverted", fault.ErrUnexpectedStatus, tx.Hash().Hex())
	}

	return c.waitConfirmations(ctx, receipt.BlockNumber.Uint64())
}

// block until the chain head is far enough past mined
func (c *Contract) waitConfirmations(ctx context.Context, mined uint64) error {
	target := mined + c.confirmations - 1

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		head, err := c.backend.BlockNumber(ctx)
		if nil != err {
			return c.expired(ctx, err)
		}
		if head >= target {
			c.log.Debugf("mined: %d  head: %d  confirmed", mined, head)
			return nil
		}

		select {
		case <-ctx.Done():
			return fault.ErrTimeout
		case <-ticker.C:
		}
	}
}

func (c *Contract) callString(ctx context.Context, method string, params ...interface{}) (string, error) {
	out := []interface{}{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	if nil != err {
		return "", c.expired(ctx, err)
	}
	if 1 != len(out) {
		return "", fmt.Errorf("%w: %s returned %d values", fault.ErrUnexpectedStatus, method, len(out))
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s returned %T", fault.ErrUnexpectedStatus, method, out[0])
	}
	return s, nil
}

func (c *Contract) expired(ctx context.Context, err error) error {
	if nil != ctx.Err() {
		return fault.ErrTimeout
	}
	return err
}

// accepts ipfs://<cid>, ipfs://<cid>/ and ipfs://<cid>/<id>.json as
// well as their gateway forms
func parseAnchor(uri string) (cid.CID, error) {
	c, err := cid.ParseURI(uri)
	if nil != err {
		return "", fmt.Errorf("%w: %q", fault.ErrInvalidURI, uri)
	}
	return c, nil
}
