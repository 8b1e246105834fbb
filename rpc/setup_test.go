// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/fixtures"
	"github.com/bitmark-inc/metachain/rpc"
)

func TestConfigurationValidate(t *testing.T) {
	c := rpc.Defaults()
	assert.Nil(t, c.Validate(), "defaults rejected")

	items := []func(*rpc.Configuration){
		func(c *rpc.Configuration) { c.MaximumConnections = 0 },
		func(c *rpc.Configuration) { c.RequestRate = 0 },
		func(c *rpc.Configuration) { c.RequestBurst = 0 },
		func(c *rpc.Configuration) { c.Allow = map[string][]string{"details": {"10.0.0.1"}} },
	}
	for i, f := range items {
		c := rpc.Defaults()
		f(&c)
		err := c.Validate()
		assert.True(t, fault.IsErrInvalid(err), "%d: wrong error: %v", i, err)
	}
}

func TestServerStartStop(t *testing.T) {
	ctl, _, anchor, server := setup(t, testConfiguration())
	defer teardown(ctl)

	anchor.EXPECT().GetAnchor(gomock.Any(), uint64(3)).Return(fixtures.CID3, nil).Times(1)

	err := server.Start()
	assert.Nil(t, err, "start error")

	err = server.Start()
	assert.True(t, errors.Is(err, fault.ErrAlreadyInitialised), "second start: %v", err)

	addrs := server.Addrs()
	assert.Equal(t, 1, len(addrs), "wrong listener count")

	client := &http.Client{Timeout: 5 * time.Second}

	response, err := client.Get(fmt.Sprintf("http://%s/v1/anchor/3", addrs[0]))
	assert.Nil(t, err, "get error")
	body, _ := io.ReadAll(response.Body)
	response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode, "wrong status: %s", body)

	// loopback is on the details allow list
	response, err = client.Get(fmt.Sprintf("http://%s/v1/details", addrs[0]))
	assert.Nil(t, err, "get error")
	response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode, "details denied")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = server.Stop(ctx)
	assert.Nil(t, err, "stop error")

	err = server.Stop(ctx)
	assert.True(t, errors.Is(err, fault.ErrNotInitialised), "second stop: %v", err)
}
