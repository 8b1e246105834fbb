// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"encoding/binary"

	"github.com/bitmark-inc/metachain/cid"
	"github.com/bitmark-inc/metachain/fault"
)

// AnchorStore - local anchor table
//
// the last write for an id wins; writes are serialised by LevelDB
type AnchorStore struct {
	d *Database
}

// Anchors - the anchor pool as a gateway.Anchor
func (d *Database) Anchors() *AnchorStore {
	return &AnchorStore{d: d}
}

func anchorKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// GetAnchor - current identifier for id
func (s *AnchorStore) GetAnchor(ctx context.Context, id uint64) (cid.CID, error) {
	if err := ctx.Err(); nil != err {
		return "", err
	}

	value, err := s.d.pool.Anchors.Get(anchorKey(id))
	if nil != err {
		return "", err
	}
	if nil == value {
		return "", fault.ErrAnchorNotFound
	}
	return cid.Parse(string(value))
}

// SetAnchor - publish c as the current identifier for id
func (s *AnchorStore) SetAnchor(ctx context.Context, id uint64, c cid.CID) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	if _, err := cid.Parse(c.String()); nil != err {
		return err
	}

	err := s.d.pool.Anchors.Put(anchorKey(id), []byte(c))
	if nil != err {
		return err
	}
	s.d.log.Infof("anchor: %d -> %s", id, c)
	return nil
}

// AnchorEntry - one row of the anchor table
type AnchorEntry struct {
	ID  uint64  `json:"id"`
	CID cid.CID `json:"cid"`
}

// List - all anchors in id order
func (s *AnchorStore) List() ([]AnchorEntry, error) {
	anchors := make([]AnchorEntry, 0, 16)
	err := s.d.pool.Anchors.Map(func(key []byte, value []byte) error {
		if 8 != len(key) {
			return fault.ErrInvalidCount
		}
		anchors = append(anchors, AnchorEntry{
			ID:  binary.BigEndian.Uint64(key),
			CID: cid.CID(value),
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return anchors, nil
}
