// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/record"
)

// Builder - creates unlinked batches
type Builder struct {
	template Template
	rng      *rand.Rand
	clock    func() time.Time
}

// NewBuilder - a builder drawing from rng
func NewBuilder(template Template, rng *rand.Rand) (*Builder, error) {
	if err := template.Validate(); nil != err {
		return nil, err
	}
	return &Builder{
		template: template,
		rng:      rng,
		clock:    time.Now,
	}, nil
}

// SetClock - replace the creation timestamp source
func (b *Builder) SetClock(clock func() time.Time) {
	b.clock = clock
}

// Build - a batch of count records with ids 0..count-1, all roots
func (b *Builder) Build(count int) ([]record.Record, error) {
	if count < 1 {
		return nil, fault.ErrInvalidCount
	}

	createdAt := b.clock().UnixNano() / int64(time.Millisecond)
	batch := make([]record.Record, count)

	for i := 0; i < count; i += 1 {
		id := uint64(i)

		user, err := uuid.NewRandomFromReader(b.rng)
		if nil != err {
			return nil, err
		}

		attributes := make(record.Attributes, len(b.template.Fixed)+len(b.template.Numeric)+2)
		for k, v := range b.template.Fixed {
			attributes[k] = record.Text(v)
		}
		if "" != b.template.TerritoryTrait {
			attributes[b.template.TerritoryTrait] = record.Number(int64(id))
		}
		if "" != b.template.UserTrait {
			attributes[b.template.UserTrait] = record.Text(user.String())
		}
		b.template.sample(b.rng, attributes)

		batch[i] = record.Record{
			ID:          id,
			Description: b.template.Description,
			Image:       b.template.Image,
			CreatedAt:   createdAt,
			Attributes:  attributes,
			Prior:       record.Root,
		}
	}
	return batch, nil
}
