// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidAnswer = errors.New("answer must be a string or an array of strings")

// Answer holds either a single value (TEXT, TEXTAREA, RADIO) or a set of
// values (CHECKBOX). On the wire it is a JSON string or array of strings.
type Answer struct {
	Value  string
	Values []string
	Multi  bool
}

// Single returns a single-valued answer
func Single(v string) Answer {
	return Answer{Value: v}
}

// Multiple returns a multi-valued answer
func Multiple(vs ...string) Answer {
	if vs == nil {
		vs = []string{}
	}
	return Answer{Values: vs, Multi: true}
}

// IsEmpty reports whether the answer carries no usable value
func (a Answer) IsEmpty() bool {
	if a.Multi {
		return len(a.Values) == 0
	}
	return strings.TrimSpace(a.Value) == ""
}

// String joins multi-valued answers with ", "
func (a Answer) String() string {
	if a.Multi {
		return strings.Join(a.Values, ", ")
	}
	return a.Value
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		vs := a.Values
		if vs == nil {
			vs = []string{}
		}
		return json.Marshal(vs)
	}
	return json.Marshal(a.Value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidAnswer
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Single(s)
		return nil
	case '[':
		var vs []string
		if err := json.Unmarshal(data, &vs); err != nil {
			return ErrInvalidAnswer
		}
		*a = Multiple(vs...)
		return nil
	case 'n':
		*a = Answer{}
		return nil
	}
	return ErrInvalidAnswer
}
