// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - create batches of chain roots and extend them
//
// Builder produces a fresh batch where every record points at the
// root sentinel.  Mutator picks records at random and links them to
// the bundle the batch was last published in.
//
// Neither type is safe for concurrent use: both draw from a single
// math/rand source so that a fixed seed reproduces the same batch.
package chain
