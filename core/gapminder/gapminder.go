// Package gapminder implements derived-table operations over the Gapminder
// country dataset: per-row GDP computation with optional filtering by year
// and by country.
package gapminder

import (
	"github.com/asaidimu/go-tabula/core/frame"
	"github.com/asaidimu/go-tabula/core/query"
	"github.com/asaidimu/go-tabula/core/schema"
)

// Column names of the Gapminder dataset.
const (
	ColCountry      = "country"
	ColYear         = "year"
	ColPopulation   = "population"
	ColGDPPerCapita = "gdp_per_capita"
	ColGDP          = "gdp"
)

// datasetSchema lists the columns CalcGDP requires. Population and GDP per
// capita must be numeric; Int columns satisfy the Float expectation.
var datasetSchema = &schema.Definition{
	Name: "gapminder",
	Columns: map[string]schema.Column{
		ColYear:         {Type: frame.Int, Required: true},
		ColCountry:      {Type: frame.String, Required: true},
		ColPopulation:   {Type: frame.Float, Required: true},
		ColGDPPerCapita: {Type: frame.Float, Required: true},
	},
}

// Options carries the optional filter sets for CalcGDP. An empty or nil
// slice means no constraint on that column.
type Options struct {
	// Years restricts the result to rows whose year is in the set.
	Years []int
	// Countries restricts the result to rows whose country is in the set.
	Countries []string
}

// CalcGDP returns a new frame holding the rows of dat that match the filter
// sets in opts, with a derived gdp column appended: population multiplied by
// GDP per capita, per row. Row order is preserved and the input frame is
// never modified. It fails with a frame.MissingColumnError when a required
// column is absent, or a frame.TypeMismatchError when population or GDP per
// capita hold non-numeric values.
func CalcGDP(dat *frame.Frame, opts Options) (*frame.Frame, error) {
	if err := Validate(dat); err != nil {
		return nil, err
	}

	b := query.NewBuilder()
	if len(opts.Years) > 0 {
		years := make([]any, len(opts.Years))
		for i, y := range opts.Years {
			years[i] = y
		}
		b.Where(ColYear).In(years...)
	}
	if len(opts.Countries) > 0 {
		countries := make([]any, len(opts.Countries))
		for i, c := range opts.Countries {
			countries[i] = c
		}
		b.Where(ColCountry).In(countries...)
	}
	b.Derive(ColGDP, "mul", ColPopulation, ColGDPPerCapita)

	return query.NewProcessor(nil).Apply(dat, b.Build())
}

// Validate checks that dat has the columns CalcGDP needs, converting the
// first schema issue into the matching typed error.
func Validate(dat *frame.Frame) error {
	ok, issues := schema.NewValidator(datasetSchema).Validate(dat)
	if ok {
		return nil
	}
	issue := issues[0]
	switch issue.Code {
	case schema.IssueRequiredColumnMissing:
		return &frame.MissingColumnError{Column: issue.Column}
	default:
		return &frame.TypeMismatchError{Column: issue.Column, Want: frame.Float}
	}
}
