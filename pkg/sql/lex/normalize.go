// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package lex holds the identifier rules shared by the statement readers.
package lex

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds an identifier to lower case. A name enclosed in
// double quotes keeps its case and loses the quotes; a doubled quote
// inside it stands for one quote character. Non-ASCII names are brought
// to NFC so that equal-looking identifiers compare equal.
func NormalizeName(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return normalizeString(strings.ReplaceAll(name[1:len(name)-1], `""`, `"`))
	}
	return normalizeString(strings.ToLower(name))
}

// EncodeName is the inverse of NormalizeName for names that would not
// survive a round trip unquoted.
func EncodeName(name string) string {
	if isBareIdentifier(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func normalizeString(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return norm.NFC.String(s)
		}
	}
	return s
}

func isBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z'):
		case i > 0 && (r >= '0' && r <= '9' || r == '$'):
		default:
			return false
		}
	}
	return true
}
