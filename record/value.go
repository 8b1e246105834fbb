// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/bitmark-inc/metachain/fault"
)

// Value - an attribute value, either an integer or a string
type Value struct {
	number int64
	text   string
	isText bool
}

// Attributes - named traits of a record
type Attributes map[string]Value

// Number - integer value
func Number(n int64) Value {
	return Value{number: n}
}

// Text - string value
func Text(s string) Value {
	return Value{text: s, isText: true}
}

// IsText - true for string values
func (v Value) IsText() bool {
	return v.isText
}

// Int - the integer value and true if the value is numeric
func (v Value) Int() (int64, bool) {
	return v.number, !v.isText
}

func (v Value) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatInt(v.number, 10)
}

// MarshalJSON - integers are written in base 10 without exponent
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}
	return []byte(strconv.FormatInt(v.number, 10)), nil
}

// UnmarshalJSON - only integers and strings are accepted
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && '"' == b[0] {
		s := ""
		if err := json.Unmarshal(b, &s); nil != err {
			return err
		}
		*v = Text(s)
		return nil
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if nil != err {
		return fault.InvalidError("attribute value is not an integer or string: " + string(b))
	}
	*v = Number(n)
	return nil
}

// Clone - independent copy of the attributes
func (a Attributes) Clone() Attributes {
	if nil == a {
		return nil
	}
	c := make(Attributes, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}
