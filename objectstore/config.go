// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
)

const (
	DefaultEndpoint = "s3.filebase.com"
	DefaultRegion   = "us-east-1"

	defaultRate        = 5.0
	defaultBurst       = 10
	defaultTimeout     = 30 * time.Second
	defaultMaximumSize = 64 * 1024 * 1024
)

// Configuration - object store and gateway settings
type Configuration struct {
	Endpoint    string  `gluamapper:"endpoint" json:"endpoint"`
	Region      string  `gluamapper:"region" json:"region"`
	AccessKey   string  `gluamapper:"access_key" json:"-"`
	SecretKey   string  `gluamapper:"secret_key" json:"-"`
	Bucket      string  `gluamapper:"bucket" json:"bucket"`
	Prefix      string  `gluamapper:"prefix" json:"prefix"`
	Insecure    bool    `gluamapper:"insecure" json:"insecure"`
	Gateway     string  `gluamapper:"gateway" json:"gateway"`
	Rate        float64 `gluamapper:"rate" json:"rate"`
	Burst       int     `gluamapper:"burst" json:"burst"`
	Timeout     int     `gluamapper:"timeout" json:"timeout"` // seconds
	MaximumSize int64   `gluamapper:"maximum_size" json:"maximum_size"`
}

// Defaults - fill unset values
func (c *Configuration) Defaults() {
	if "" == c.Endpoint {
		c.Endpoint = DefaultEndpoint
	}
	if "" == c.Region {
		c.Region = DefaultRegion
	}
	c.Gateway = cid.NormaliseGateway(c.Gateway)
	if c.Rate <= 0 {
		c.Rate = defaultRate
	}
	if c.Burst <= 0 {
		c.Burst = defaultBurst
	}
	if c.Timeout <= 0 {
		c.Timeout = int(defaultTimeout / time.Second)
	}
	if c.MaximumSize <= 0 {
		c.MaximumSize = defaultMaximumSize
	}
}

// Validate - credentials and bucket must be given
func (c *Configuration) Validate() error {
	if "" == c.Endpoint {
		return fmt.Errorf("%w: endpoint", fault.ErrMissingParameter)
	}
	if "" == c.Bucket {
		return fmt.Errorf("%w: bucket", fault.ErrMissingParameter)
	}
	if "" == c.AccessKey || "" == c.SecretKey {
		return fmt.Errorf("%w: access_key/secret_key", fault.ErrMissingParameter)
	}
	return nil
}

func (c *Configuration) timeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
