package schema

import (
	"fmt"

	"github.com/asaidimu/go-tabula/core/frame"
)

// Validator checks frames against a Definition. It checks column presence,
// column types and, for numeric columns, every value. The validator can be
// reused for multiple frames.
type Validator struct {
	def    *Definition
	issues []Issue
}

// NewValidator creates a Validator for the given definition.
func NewValidator(def *Definition) *Validator {
	return &Validator{def: def}
}

// Validate checks a frame against the validator's definition. It returns
// whether the frame conforms, and the list of issues found.
func (v *Validator) Validate(f *frame.Frame) (bool, []Issue) {
	v.issues = make([]Issue, 0)

	for name, col := range v.def.Columns {
		s, err := f.Col(name)
		if err != nil {
			if col.Required {
				v.addIssue(IssueRequiredColumnMissing, name,
					fmt.Sprintf("required column %q is missing", name))
			}
			continue
		}
		v.validateColumn(s, col)
	}

	if v.def.Strict {
		for _, name := range f.Names() {
			if _, ok := v.def.Columns[name]; !ok {
				v.addIssue(IssueUnexpectedColumn, name,
					fmt.Sprintf("unexpected column %q not defined in schema", name))
			}
		}
	}

	return len(v.issues) == 0, v.issues
}

// validateColumn checks a single column's type, including per-value checks
// for numeric expectations.
func (v *Validator) validateColumn(s *frame.Series, col Column) {
	if !typeCompatible(s.Type(), col.Type) {
		v.addIssue(IssueTypeMismatch, s.Name(),
			fmt.Sprintf("column %q has type %s, want %s", s.Name(), s.Type(), col.Type))
		return
	}
	if !col.Type.IsNumeric() {
		return
	}
	for i := 0; i < s.Len(); i++ {
		if _, err := s.FloatAt(i); err != nil {
			v.addIssue(IssueTypeMismatch, s.Name(),
				fmt.Sprintf("column %q row %d: value %v is not numeric", s.Name(), i, s.Elem(i)))
			return
		}
	}
}

// typeCompatible reports whether a column of type got satisfies an
// expectation of type want. Int columns satisfy Float expectations.
func typeCompatible(got, want frame.Type) bool {
	if got == want {
		return true
	}
	return want == frame.Float && got == frame.Int
}

func (v *Validator) addIssue(code, column, message string) {
	v.issues = append(v.issues, Issue{Code: code, Column: column, Message: message})
}
