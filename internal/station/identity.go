/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package station

import (
	"fmt"
	"strconv"
)

// IdentityKind tells which representation a station identifier uses.
type IdentityKind int

const (
	IdentityString IdentityKind = iota + 1
	IdentityInteger
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityString:
		return "String"
	case IdentityInteger:
		return "Integer"
	}
	return "Unknown"
}

// Identity is a station identifier that is either a string or an integer.
// The kind is fixed when the value is constructed.
type Identity struct {
	kind IdentityKind
	str  string
	num  int
}

// StringID returns a string station identifier.
func StringID(id string) Identity {
	return Identity{kind: IdentityString, str: id}
}

// IntegerID returns an integer station identifier.
func IntegerID(id int) Identity {
	return Identity{kind: IdentityInteger, num: id}
}

// Kind reports the identifier representation. The zero Identity has kind 0.
func (i Identity) Kind() IdentityKind {
	return i.kind
}

// IsZero reports whether the identity was never set.
func (i Identity) IsZero() bool {
	return i.kind == 0
}

// StringValue returns the string form when the identity is a string id.
func (i Identity) StringValue() (string, bool) {
	return i.str, i.kind == IdentityString
}

// IntegerValue returns the integer form when the identity is an integer id.
func (i Identity) IntegerValue() (int, bool) {
	return i.num, i.kind == IdentityInteger
}

// Equal compares kind and value. A string "1001" never equals integer 1001.
func (i Identity) Equal(other Identity) bool {
	return i == other
}

// String returns the raw identifier value.
func (i Identity) String() string {
	switch i.kind {
	case IdentityString:
		return i.str
	case IdentityInteger:
		return strconv.Itoa(i.num)
	}
	return ""
}

// Describe renders the identifier with its kind, e.g. "Station ID (Integer): 1001".
func (i Identity) Describe() string {
	return fmt.Sprintf("Station ID (%s): %s", i.kind, i)
}
