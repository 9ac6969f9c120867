// Package regress fits linear models to frame columns. Simple one-variable
// fits are delegated to gonum's ordinary least squares; multi-variable fits
// to the sajari regression package.
package regress

import (
	"fmt"

	"github.com/asaidimu/go-tabula/core/frame"
	"github.com/sajari/regression"
	"gonum.org/v1/gonum/stat"
)

// Fit describes a fitted simple linear model y = Alpha + Beta*x.
type Fit struct {
	Alpha    float64
	Beta     float64
	RSquared float64
}

// Linear fits y = alpha + beta*x over two numeric columns of f.
func Linear(f *frame.Frame, yCol, xCol string) (*Fit, error) {
	xs, err := columnFloats(f, xCol)
	if err != nil {
		return nil, err
	}
	ys, err := columnFloats(f, yCol)
	if err != nil {
		return nil, err
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("need at least 2 rows to fit a line, have %d", len(xs))
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return &Fit{
		Alpha:    alpha,
		Beta:     beta,
		RSquared: stat.RSquared(xs, ys, nil, alpha, beta),
	}, nil
}

// Model wraps a fitted multiple regression.
type Model struct {
	reg *regression.Regression
}

// FitMultiple regresses yCol on one or more predictor columns.
func FitMultiple(f *frame.Frame, yCol string, xCols ...string) (*Model, error) {
	if len(xCols) == 0 {
		return nil, fmt.Errorf("need at least one predictor column")
	}
	ys, err := columnFloats(f, yCol)
	if err != nil {
		return nil, err
	}
	xss := make([][]float64, len(xCols))
	for i, col := range xCols {
		xs, err := columnFloats(f, col)
		if err != nil {
			return nil, err
		}
		xss[i] = xs
	}

	r := new(regression.Regression)
	r.SetObserved(yCol)
	for i, col := range xCols {
		r.SetVar(i, col)
	}
	for row := range ys {
		vars := make([]float64, len(xCols))
		for i := range xCols {
			vars[i] = xss[i][row]
		}
		r.Train(regression.DataPoint(ys[row], vars))
	}
	if err := r.Run(); err != nil {
		return nil, fmt.Errorf("fitting %q: %w", yCol, err)
	}
	return &Model{reg: r}, nil
}

// Coeff returns the i-th coefficient; index 0 is the intercept.
func (m *Model) Coeff(i int) float64 { return m.reg.Coeff(i) }

// RSquared returns the coefficient of determination of the fit.
func (m *Model) RSquared() float64 { return m.reg.R2 }

// Formula renders the fitted model as a human-readable equation.
func (m *Model) Formula() string { return m.reg.Formula }

// Predict evaluates the fitted model for one set of predictor values.
func (m *Model) Predict(vars []float64) (float64, error) {
	return m.reg.Predict(vars)
}

// columnFloats fetches a column and converts it to float64 values,
// surfacing the frame's typed errors on missing or non-numeric columns.
func columnFloats(f *frame.Frame, name string) ([]float64, error) {
	col, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	return col.Floats()
}
