// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/metachain/chain"
	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
	"github.com/bitmark-inc/metachain/record"
)

const (
	seed     = 12345
	bundleID = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
)

var fixedTime = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

func newBuilder(t *testing.T, s int64) *chain.Builder {
	b, err := chain.NewBuilder(chain.DefaultTemplate(), chain.NewRand(s))
	assert.Nil(t, err, "new builder error")
	b.SetClock(func() time.Time { return fixedTime })
	return b
}

func newMutator(t *testing.T, s int64) *chain.Mutator {
	m, err := chain.NewMutator(chain.DefaultTemplate(), chain.NewRand(s))
	assert.Nil(t, err, "new mutator error")
	return m
}

func TestBuild(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100} {
		batch, err := newBuilder(t, seed).Build(n)
		assert.Nil(t, err, "build error")
		assert.Equal(t, n, len(batch), "wrong batch length")

		users := make(map[string]struct{})
		for i, r := range batch {
			assert.Equal(t, uint64(i), r.ID, "wrong id")
			assert.True(t, r.Prior.IsRoot(), "record not a root")
			assert.Equal(t, fixedTime.UnixNano()/int64(time.Millisecond), r.CreatedAt, "wrong creation time")

			territory, ok := r.Attributes["territory_id"].Int()
			assert.True(t, ok, "territory not numeric")
			assert.Equal(t, int64(i), territory, "wrong territory")

			level, ok := r.Attributes["legado_level"].Int()
			assert.True(t, ok, "level not numeric")
			assert.True(t, level >= 1 && level <= 100, "level out of range: %d", level)

			offset, _ := r.Attributes["carbon_offset"].Int()
			assert.True(t, offset >= 1 && offset <= 100000, "offset out of range: %d", offset)

			user := r.Attributes["legado_user"]
			assert.True(t, user.IsText(), "user not text")
			users[user.String()] = struct{}{}

			assert.Equal(t, "classical", r.Attributes["ambassador_title"].String(), "wrong title")
		}
		assert.Equal(t, n, len(users), "user tokens not unique")
	}
}

func TestBuildInvalidCount(t *testing.T) {
	b := newBuilder(t, seed)
	for _, n := range []int{0, -1} {
		batch, err := b.Build(n)
		assert.Equal(t, fault.ErrInvalidCount, err, "wrong error")
		assert.Nil(t, batch, "batch returned with error")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a, _ := newBuilder(t, seed).Build(5)
	b, _ := newBuilder(t, seed).Build(5)
	for i := range a {
		assert.True(t, a[i].Equal(b[i]), "%d: same seed gave different record", i)
	}
}

func TestInvalidTemplate(t *testing.T) {
	template := chain.DefaultTemplate()
	template.Numeric = append(template.Numeric, chain.Range{Name: "bad", Minimum: 5, Maximum: 1})

	_, err := chain.NewBuilder(template, chain.NewRand(seed))
	assert.Equal(t, fault.ErrInvalidRange, err, "wrong builder error")

	_, err = chain.NewMutator(template, chain.NewRand(seed))
	assert.Equal(t, fault.ErrInvalidRange, err, "wrong mutator error")
}

func TestMutate(t *testing.T) {
	batch, _ := newBuilder(t, seed).Build(10)
	prior := record.PointTo(cid.CID(bundleID))

	for _, edits := range []int{1, 3, 10, 50} {
		result, edited, err := newMutator(t, seed).Mutate(batch, edits, prior)
		assert.Nil(t, err, "mutate error")
		assert.Equal(t, len(batch), len(result), "wrong batch length")
		assert.Equal(t, edits, len(edited), "wrong edited count")

		touched := make(map[uint64]struct{})
		for _, id := range edited {
			touched[id] = struct{}{}
		}

		for i, r := range result {
			assert.Equal(t, batch[i].ID, r.ID, "id changed")
			assert.Equal(t, batch[i].Description, r.Description, "description changed")
			assert.Equal(t, batch[i].CreatedAt, r.CreatedAt, "creation time changed")
			assert.Equal(t, batch[i].Attributes["legado_user"], r.Attributes["legado_user"], "user changed")

			if _, ok := touched[r.ID]; ok {
				assert.Equal(t, prior, r.Prior, "edited record not linked")
			} else {
				assert.True(t, r.Equal(batch[i]), "unedited record changed")
			}
			assert.True(t, r.Prior == batch[i].Prior || r.Prior == prior, "pointer neither unchanged nor prior")
		}
	}

	// input untouched
	for _, r := range batch {
		assert.True(t, r.Prior.IsRoot(), "input batch modified")
	}
}

func TestMutateWithReplacement(t *testing.T) {
	batch, _ := newBuilder(t, seed).Build(1)
	prior := record.PointTo(cid.CID(bundleID))

	result, edited, err := newMutator(t, seed).Mutate(batch, 5, prior)
	assert.Nil(t, err, "mutate error")
	assert.Equal(t, []uint64{0, 0, 0, 0, 0}, edited, "repeated selection not reported")
	assert.Equal(t, 1, len(result), "repeated selection appended records")
	assert.Equal(t, prior, result[0].Prior, "wrong pointer")
}

func TestMutateIsDeterministic(t *testing.T) {
	batch, _ := newBuilder(t, seed).Build(20)
	prior := record.PointTo(cid.CID(bundleID))

	a, ea, _ := newMutator(t, 99).Mutate(batch, 7, prior)
	b, eb, _ := newMutator(t, 99).Mutate(batch, 7, prior)
	assert.Equal(t, ea, eb, "same seed selected different records")
	for i := range a {
		assert.True(t, a[i].Equal(b[i]), "%d: same seed gave different record", i)
	}
}

func TestMutateErrors(t *testing.T) {
	m := newMutator(t, seed)
	prior := record.PointTo(cid.CID(bundleID))

	_, _, err := m.Mutate(nil, 1, prior)
	assert.Equal(t, fault.ErrEmptyBatch, err, "wrong empty batch error")

	batch, _ := newBuilder(t, seed).Build(3)
	_, _, err = m.Mutate(batch, 0, prior)
	assert.Equal(t, fault.ErrInvalidEditCount, err, "wrong edit count error")

	linked, _, err := m.Mutate(batch, 1, prior)
	assert.Nil(t, err, "mutate error")
	for i := range linked {
		linked[i].Prior = prior
	}
	_, _, err = m.Mutate(linked, 1, record.Root)
	assert.Equal(t, fault.ErrPointerReverted, err, "wrong revert error")
}

func TestMutateRootBatchWithRoot(t *testing.T) {
	batch, _ := newBuilder(t, seed).Build(3)
	result, edited, err := newMutator(t, seed).Mutate(batch, 2, record.Root)
	assert.Equal(t, fault.ErrPointerReverted, err, "root prior accepted")
	assert.Nil(t, result, "result returned with error")
	assert.Nil(t, edited, "edited ids returned with error")
	for _, r := range batch {
		assert.True(t, r.Prior.IsRoot(), "input batch modified")
	}
}
