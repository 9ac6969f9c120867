package frame

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/asaidimu/go-tabula/utils"
)

// LoadRecords builds a frame from string records. The first record is the
// header; the remaining records are rows. Column types are inferred from the
// cell values: bool, then int, then float, then string. Empty cells become
// nil values.
func LoadRecords(records [][]string) (*Frame, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records: missing header row")
	}
	header := records[0]
	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i+1, len(row), len(header))
		}
	}

	cols := make([]*Series, len(header))
	for c, name := range header {
		cells := make([]string, len(rows))
		for r, row := range rows {
			cells[r] = row[c]
		}
		t := inferRecordType(cells)
		vals := make([]any, len(cells))
		for i, cell := range cells {
			if cell == "" {
				vals[i] = nil
				continue
			}
			vals[i] = cell
		}
		s, err := NewSeries(vals, t, name)
		if err != nil {
			return nil, err
		}
		cols[c] = s
	}
	return New(cols...)
}

// inferRecordType picks the narrowest type every non-empty cell parses as.
func inferRecordType(cells []string) Type {
	canBool, canInt, canFloat := true, true, true
	nonEmpty := 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		nonEmpty++
		if canBool {
			if _, err := strconv.ParseBool(cell); err != nil {
				canBool = false
			}
		}
		if canInt {
			if _, err := strconv.Atoi(cell); err != nil {
				canInt = false
			}
		}
		if canFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				canFloat = false
			}
		}
	}
	if nonEmpty == 0 {
		return String
	}
	switch {
	case canBool:
		return Bool
	case canInt:
		return Int
	case canFloat:
		return Float
	default:
		return String
	}
}

// LoadStructs builds a frame from a slice of structs. Column names and order
// follow the struct's exported fields (json tags honored); column types
// follow the field types.
func LoadStructs(records any) (*Frame, error) {
	val := reflect.ValueOf(records)
	if !val.IsValid() || val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("input must be a slice of structs, got %T", records)
	}
	if val.Len() == 0 {
		return nil, fmt.Errorf("input slice is empty")
	}

	names, err := utils.StructFieldNames(val.Index(0).Interface())
	if err != nil {
		return nil, err
	}

	maps := make([]map[string]any, val.Len())
	for i := 0; i < val.Len(); i++ {
		m, err := utils.StructToMap(val.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		maps[i] = m
	}

	cols := make([]*Series, len(names))
	for c, name := range names {
		vals := make([]any, len(maps))
		for r, m := range maps {
			vals[r] = m[name]
		}
		s, err := NewSeries(vals, inferValueType(vals), name)
		if err != nil {
			return nil, err
		}
		cols[c] = s
	}
	return New(cols...)
}
