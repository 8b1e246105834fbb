// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - reconstruct the versions of a record
//
// The walk starts at the published anchor of an id and follows the
// prior pointer of that id's record in each fetched bundle until the
// root is reached:
//
//   anchor(id) -> bundle N -> bundle N-1 -> ... -> bundle 1 (prior = root)
//
// Identifiers are returned newest first.  A pointer seen twice, a walk
// longer than the configured depth or an expired context stops the
// walk; the steps gathered so far are returned along with the error.
package history
