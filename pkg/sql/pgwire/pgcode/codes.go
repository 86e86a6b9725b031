// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package pgcode defines the PostgreSQL SQLSTATE codes attached to errors
// produced by the schema and statement compilers.
package pgcode

// Code is a wrapper around a string to ensure that pgcodes are used in
// different pgerror functions by avoiding accidental string input.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying pgcode string.
func (c Code) String() string {
	return c.code
}

// PG error codes from: http://www.postgresql.org/docs/9.5/static/errcodes-appendix.html.
// Specifically, errcodes.txt is copied from from Postgres' src/backend/utils/errcodes.txt.
var (
	// Section: Class 00 - Successful Completion
	SuccessfulCompletion = MakeCode("00000")
	// Section: Class 01 - Warning
	Warning = MakeCode("01000")
	// Section: Class 08 - Connection Exception
	ProtocolViolation = MakeCode("08P01")
	// Section: Class 0A - Feature Not Supported
	FeatureNotSupported = MakeCode("0A000")
	// Section: Class 22 - Data Exception
	StringDataRightTruncation = MakeCode("22001")
	NumericValueOutOfRange    = MakeCode("22003")
	InvalidDatetimeFormat     = MakeCode("22007")
	InvalidParameterValue     = MakeCode("22023")
	InvalidTextRepresentation = MakeCode("22P02")
	// Section: Class 23 - Integrity Constraint Violation
	NotNullViolation = MakeCode("23502")
	// Section: Class 2B - Dependent Privilege Descriptors Still Exist
	DependentObjectsStillExist = MakeCode("2BP01")
	// Section: Class 40 - Transaction Rollback
	SerializationFailure = MakeCode("40001")
	// Section: Class 42 - Syntax Error or Access Rule Violation
	Syntax                  = MakeCode("42601")
	InvalidColumnDefinition = MakeCode("42611")
	UndefinedColumn         = MakeCode("42703")
	DatatypeMismatch        = MakeCode("42804")
	WrongObjectType         = MakeCode("42809")
	InvalidForeignKey       = MakeCode("42830")
	CannotCoerce            = MakeCode("42846")
	UndefinedFunction       = MakeCode("42883")
	UndefinedTable          = MakeCode("42P01")
	UndefinedObject         = MakeCode("42704")
	DuplicateRelation       = MakeCode("42P07")
	DuplicateObject         = MakeCode("42710")
	DuplicateColumn         = MakeCode("42701")
	InvalidTableDefinition  = MakeCode("42P16")
	InvalidObjectDefinition = MakeCode("42P17")
	// Section: Class XX - Internal Error
	Internal = MakeCode("XX000")
)

// Uncategorized is used for errors that flow out to a client
// when there's no code known yet.
var Uncategorized = MakeCode("XXUUU")
