// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/lib/pq"
)

// InternalErrorPrefix is prepended to the message of errors flattened
// with the Internal code.
const InternalErrorPrefix = "internal error: "

// Error is the flattened, client-facing form of an error.
type Error struct {
	Code     string
	Message  string
	Detail   string
	Hint     string
	Severity string
}

// Flatten turns any error into a pgerror with fields populated.
// Returns a nil ptr if err was nil to start with.
func Flatten(err error) *Error {
	if err == nil {
		return nil
	}
	resErr := &Error{
		Code:     GetPGCode(err).String(),
		Message:  err.Error(),
		Detail:   errors.FlattenDetails(err),
		Hint:     errors.FlattenHints(err),
		Severity: GetSeverity(err),
	}
	if resErr.Code == pgcode.Internal.String() &&
		!strings.HasPrefix(resErr.Message, InternalErrorPrefix) {
		resErr.Message = InternalErrorPrefix + resErr.Message
	}
	return resErr
}

// FullError can be used when the hint and/or detail are to be tested.
func FullError(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return formatMsgHintDetail("pq", pqErr.Message, pqErr.Hint, pqErr.Detail)
	}
	pgErr := Flatten(err)
	if pgErr == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(pgErr.Severity)
	b.WriteString(": ")
	b.WriteString(pgErr.Message)
	b.WriteString(" (SQLSTATE ")
	b.WriteString(pgErr.Code)
	b.WriteString(")")
	if pgErr.Hint != "" {
		b.WriteString("\nHINT: ")
		b.WriteString(pgErr.Hint)
	}
	if pgErr.Detail != "" {
		b.WriteString("\nDETAIL: ")
		b.WriteString(pgErr.Detail)
	}
	return b.String()
}

func formatMsgHintDetail(prefix, msg, hint, detail string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(": ")
	b.WriteString(msg)
	if hint != "" {
		b.WriteString("\nHINT: ")
		b.WriteString(hint)
	}
	if detail != "" {
		b.WriteString("\nDETAIL: ")
		b.WriteString(detail)
	}
	return b.String()
}
