// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// same layout as printJson, replacing the file atomically
func writeJsonFile(fileName string, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	b = append(b, '\n')

	temporary := fileName + ".new"
	if err := os.WriteFile(temporary, b, 0644); nil != err {
		return err
	}
	return os.Rename(temporary, fileName)
}
