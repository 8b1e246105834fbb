// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math/rand"

	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/record"
)

// Mutator - extends the chain of randomly selected records
type Mutator struct {
	template Template
	rng      *rand.Rand
}

// NewMutator - a mutator drawing from rng
func NewMutator(template Template, rng *rand.Rand) (*Mutator, error) {
	if err := template.Validate(); nil != err {
		return nil, err
	}
	return &Mutator{
		template: template,
		rng:      rng,
	}, nil
}

// Mutate - apply edits to a copy of batch
//
// Records are chosen uniformly with replacement.  Every choice
// resamples the numeric traits and sets the pointer to prior, so a
// record chosen twice keeps only the last values; only one pointer
// per record is tracked for a batch.
//
// The returned ids list every choice in order, duplicates included.
// The input batch is left untouched.  A root prior is rejected since
// an edited record must point at the bundle it was derived from.
func (m *Mutator) Mutate(batch []record.Record, edits int, prior record.Pointer) ([]record.Record, []uint64, error) {
	if 0 == len(batch) {
		return nil, nil, fault.ErrEmptyBatch
	}
	if edits < 1 {
		return nil, nil, fault.ErrInvalidEditCount
	}

	// an edit always links to a published bundle
	if prior.IsRoot() {
		return nil, nil, fault.ErrPointerReverted
	}

	result := record.CloneAll(batch)
	edited := make([]uint64, 0, edits)

	for i := 0; i < edits; i += 1 {
		r := &result[m.rng.Intn(len(result))]

		if nil == r.Attributes {
			r.Attributes = make(record.Attributes, len(m.template.Numeric))
		}
		m.template.sample(m.rng, r.Attributes)
		r.Prior = prior

		edited = append(edited, r.ID)
	}

	return result, edited, nil
}
