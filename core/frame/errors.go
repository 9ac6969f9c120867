package frame

import "fmt"

// MissingColumnError reports that a required column is absent from a frame.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// TypeMismatchError reports that a value (or a whole column) does not have
// the numeric type an operation requires.
type TypeMismatchError struct {
	Column string
	Value  any
	Want   Type
}

func (e *TypeMismatchError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("column %q is not of type %s", e.Column, e.Want)
	}
	return fmt.Sprintf("column %q: value %v (%T) is not of type %s", e.Column, e.Value, e.Value, e.Want)
}
