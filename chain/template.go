// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math/rand"
	"time"

	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/record"
)

// Range - a numeric trait drawn uniformly from [Minimum, Maximum]
type Range struct {
	Name    string
	Minimum int64
	Maximum int64
}

// Template - the fixed and random parts of a generated record
type Template struct {
	Description    string
	Image          string
	TerritoryTrait string            // set to the record id
	UserTrait      string            // fresh unique token per record
	Fixed          map[string]string // constant text traits
	Numeric        []Range           // resampled on every edit
}

// DefaultTemplate - the Legado collection trait set
func DefaultTemplate() Template {
	return Template{
		Description:    "This is a test file for LEGADO",
		Image:          "https://avatars.githubusercontent.com/u/188253427?s=500&v=4",
		TerritoryTrait: "territory_id",
		UserTrait:      "legado_user",
		Fixed: map[string]string{
			"ambassador_title":     "classical",
			"distribution_partner": "Legado",
		},
		Numeric: []Range{
			{Name: "legado_level", Minimum: 1, Maximum: 100},
			{Name: "carbon_offset", Minimum: 1, Maximum: 100000},
		},
	}
}

// Validate - check ranges are usable
func (t Template) Validate() error {
	for _, r := range t.Numeric {
		if "" == r.Name || r.Minimum > r.Maximum {
			return fault.ErrInvalidRange
		}
	}
	return nil
}

// NewRand - a random source; seed zero uses the current time
func NewRand(seed int64) *rand.Rand {
	if 0 == seed {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// assign fresh values to every numeric trait
func (t Template) sample(rng *rand.Rand, attributes record.Attributes) {
	for _, r := range t.Numeric {
		attributes[r.Name] = record.Number(r.Minimum + rng.Int63n(r.Maximum-r.Minimum+1))
	}
}
