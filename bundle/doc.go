// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bundle - content addressed packages of record snapshots
//
// Encoding is canonical: records are sorted by id, struct fields are
// written in declaration order, map keys are sorted and integers are
// written in base 10.  The same logical content therefore always
// gives the same bytes and so the same identifier from the store.
//
//   {"version":1,"records":[{...},{...}],"files":{"art/1.png":"<base64>"}}
package bundle
