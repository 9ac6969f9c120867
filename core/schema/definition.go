// Package schema defines column-level expectations for frames and a
// Validator that checks a frame against them, reporting structured issues
// instead of failing on the first mismatch.
package schema

import (
	"github.com/asaidimu/go-tabula/core/frame"
)

// LogicalOperator for combining filter conditions.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and" // All conditions must be true
	LogicalOr  LogicalOperator = "or"  // At least one condition must be true
)

// Column describes the expectations for a single column.
type Column struct {
	// Type is the expected column type. A Float expectation also accepts an
	// Int column (numeric widening).
	Type frame.Type
	// Required marks the column as mandatory.
	Required bool
}

// Definition describes the expected shape of a frame.
type Definition struct {
	// Name identifies the schema, e.g. the dataset it describes.
	Name string
	// Columns maps column name to its expectations.
	Columns map[string]Column
	// Strict rejects columns not present in the definition.
	Strict bool
}

// Issue codes reported by the Validator.
const (
	IssueRequiredColumnMissing = "REQUIRED_COLUMN_MISSING"
	IssueTypeMismatch          = "TYPE_MISMATCH"
	IssueUnexpectedColumn      = "UNEXPECTED_COLUMN"
)

// Issue is a single validation finding.
type Issue struct {
	Code    string
	Column  string
	Message string
}
