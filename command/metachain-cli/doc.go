// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Maintain a chain of metadata records in a directory
//
// The directory holds one <id>.json file per record; any other file
// is a payload that is packed with the records.
//
//   metachain-cli create -n 10
//   metachain-cli -c metachain.conf publish
//   metachain-cli -c metachain.conf extend -e 3
//   metachain-cli -c metachain.conf history -i 4
package main
