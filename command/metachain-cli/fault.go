// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/metachain/fault"
)

// common errors - keep in alphabetic order
const (
	ErrDirectoryExists     = fault.ExistsError("metadata directory already has records")
	ErrLocalAnchorsOnly    = fault.InvalidError("anchor list needs the local ledger")
	ErrNoRecords           = fault.NotFoundError("no records in metadata directory")
	ErrNotPublished        = fault.NotFoundError("records not published yet, publish before editing")
	ErrRequiredConfigFile  = fault.InvalidError("config file is required")
	ErrRequiredCount       = fault.InvalidError("count is required")
	ErrUnexpectedRecordID  = fault.InvalidError("record id does not match file name")
	ErrUnknownMetadataFile = fault.InvalidError("unreadable metadata file")
)
