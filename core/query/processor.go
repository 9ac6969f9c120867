package query

import (
	"fmt"
	"sync"

	"github.com/asaidimu/go-tabula/core/frame"
	"github.com/asaidimu/go-tabula/core/schema"
	"go.uber.org/zap"
)

// ComputeFunction is a pure function that computes a derived value for one
// row. It receives the row and the input column names declared by the query,
// and returns the computed value or an error.
type ComputeFunction func(row frame.Row, columns []string) (any, error)

// PredicateFunction implements a custom comparison operator. It receives the
// row, the column under test and the condition value, and reports whether
// the row passes.
type PredicateFunction func(row frame.Row, column string, value Value) (bool, error)

// Processor evaluates queries against frames in memory. It holds registered
// compute functions and custom predicate operators, and never mutates the
// frames it is given.
type Processor struct {
	computeFunctions   map[string]ComputeFunction
	predicateFunctions map[ComparisonOperator]PredicateFunction
	mu                 sync.RWMutex
	logger             *zap.Logger
}

// NewProcessor creates a Processor with the built-in arithmetic compute
// functions (mul, add, sub, div) already registered.
func NewProcessor(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Processor{
		computeFunctions:   make(map[string]ComputeFunction),
		predicateFunctions: make(map[ComparisonOperator]PredicateFunction),
		logger:             logger,
	}
	p.computeFunctions["mul"] = arithmeticFunction("mul")
	p.computeFunctions["add"] = arithmeticFunction("add")
	p.computeFunctions["sub"] = arithmeticFunction("sub")
	p.computeFunctions["div"] = arithmeticFunction("div")
	return p
}

// RegisterComputeFunction registers a function for derived columns.
func (p *Processor) RegisterComputeFunction(name string, fn ComputeFunction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.computeFunctions[name] = fn
	p.logger.Info("Registered compute function", zap.String("name", name))
}

// RegisterPredicateFunction registers a custom comparison operator.
func (p *Processor) RegisterPredicateFunction(operator ComparisonOperator, fn PredicateFunction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.predicateFunctions[operator] = fn
	p.logger.Info("Registered predicate function", zap.String("operator", string(operator)))
}

// Apply evaluates a query against a frame: filter pass, then derived
// columns, then the final projection. The input frame is left untouched;
// the result is always a new frame.
func (p *Processor) Apply(f *frame.Frame, q Query) (*frame.Frame, error) {
	if err := p.validateFilterColumns(f, q.Filters); err != nil {
		return nil, err
	}

	result, err := p.applyFilters(f, q.Filters)
	if err != nil {
		return nil, fmt.Errorf("filter failed: %w", err)
	}
	p.logger.Debug("Rows remaining after filters", zap.Int("count", result.Nrow()))

	result, err = p.applyDerived(result, q.Derived)
	if err != nil {
		return nil, fmt.Errorf("derived column failed: %w", err)
	}

	if len(q.Select) > 0 {
		result, err = result.Select(q.Select...)
		if err != nil {
			return nil, fmt.Errorf("projection failed: %w", err)
		}
	}
	p.logger.Debug("Columns returned after projection", zap.Int("count", result.Ncol()))

	return result, nil
}

// Match evaluates a single row against a filter. A nil filter matches
// everything.
func (p *Processor) Match(row frame.Row, filter *Filter) (bool, error) {
	if filter == nil {
		return true, nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.evaluateFilter(row, filter)
}

// validateFilterColumns checks up front that every column referenced by the
// filter exists in the frame, surfacing a MissingColumnError before any row
// is evaluated.
func (p *Processor) validateFilterColumns(f *frame.Frame, filter *Filter) error {
	if filter == nil {
		return nil
	}
	if filter.Condition != nil {
		if !f.HasCol(filter.Condition.Column) {
			return &frame.MissingColumnError{Column: filter.Condition.Column}
		}
	}
	if filter.Group != nil {
		for i := range filter.Group.Filters {
			if err := p.validateFilterColumns(f, &filter.Group.Filters[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyFilters computes the row mask for a filter and subsets the frame.
func (p *Processor) applyFilters(f *frame.Frame, filter *Filter) (*frame.Frame, error) {
	if filter == nil {
		return f, nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	mask := make([]bool, f.Nrow())
	for i := 0; i < f.Nrow(); i++ {
		row := f.Row(i)
		passes, err := p.evaluateFilter(row, filter)
		if err != nil {
			return nil, fmt.Errorf("evaluating filter at row %d: %w", i, err)
		}
		mask[i] = passes
	}
	return f.FilterRows(mask)
}

// evaluateFilter recursively evaluates a filter against one row.
func (p *Processor) evaluateFilter(row frame.Row, filter *Filter) (bool, error) {
	if filter.Condition != nil {
		if !filter.Condition.Operator.IsStandard() {
			fn, ok := p.predicateFunctions[filter.Condition.Operator]
			if !ok {
				return false, fmt.Errorf("unregistered predicate function for operator: %s", filter.Condition.Operator)
			}
			return fn(row, filter.Condition.Column, filter.Condition.Value)
		}
		return evaluateStandardCondition(row, filter.Condition)
	}
	if filter.Group != nil {
		switch filter.Group.Operator {
		case schema.LogicalAnd:
			for i := range filter.Group.Filters {
				passes, err := p.evaluateFilter(row, &filter.Group.Filters[i])
				if err != nil || !passes {
					return false, err
				}
			}
			return true, nil
		case schema.LogicalOr:
			for i := range filter.Group.Filters {
				passes, err := p.evaluateFilter(row, &filter.Group.Filters[i])
				if err != nil {
					return false, err
				}
				if passes {
					return true, nil
				}
			}
			return false, nil
		default:
			return false, fmt.Errorf("unsupported logical operator: %s", filter.Group.Operator)
		}
	}
	return false, fmt.Errorf("empty or invalid filter structure")
}

// evaluateStandardCondition performs the in-memory evaluation for the
// built-in comparison operators.
func evaluateStandardCondition(row frame.Row, condition *Condition) (bool, error) {
	fieldValue, ok := row[condition.Column]
	if !ok {
		return false, nil
	}

	switch condition.Operator {
	case ComparisonOperatorEq:
		return equalValues(fieldValue, condition.Value), nil
	case ComparisonOperatorNeq:
		return !equalValues(fieldValue, condition.Value), nil
	case ComparisonOperatorIn, ComparisonOperatorNin:
		set, ok := condition.Value.([]any)
		if !ok {
			return false, fmt.Errorf("operator %s requires a []any membership set, got %T", condition.Operator, condition.Value)
		}
		member := false
		for _, candidate := range set {
			if equalValues(fieldValue, candidate) {
				member = true
				break
			}
		}
		if condition.Operator == ComparisonOperatorIn {
			return member, nil
		}
		return !member, nil
	case ComparisonOperatorGt, ComparisonOperatorGte, ComparisonOperatorLt, ComparisonOperatorLte:
		fvNum, okF := ToFloat64(fieldValue)
		condNum, okC := ToFloat64(condition.Value)
		if !okF || !okC {
			return false, fmt.Errorf("unsupported types for %s comparison between %T and %T", condition.Operator, fieldValue, condition.Value)
		}
		switch condition.Operator {
		case ComparisonOperatorGt:
			return fvNum > condNum, nil
		case ComparisonOperatorGte:
			return fvNum >= condNum, nil
		case ComparisonOperatorLt:
			return fvNum < condNum, nil
		default:
			return fvNum <= condNum, nil
		}
	default:
		return false, fmt.Errorf("unsupported comparison operator: %s", condition.Operator)
	}
}

// equalValues compares a row value against a condition value, normalizing
// across numeric types so that int 2007 equals float64 2007.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := ToFloat64Strict(a); aok {
		if bf, bok := ToFloat64Strict(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}

// applyDerived appends each derived column in order by applying its compute
// function to every row.
func (p *Processor) applyDerived(f *frame.Frame, derived []Derived) (*frame.Frame, error) {
	if len(derived) == 0 {
		return f, nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	result := f
	for _, d := range derived {
		fn, ok := p.computeFunctions[d.Function]
		if !ok {
			return nil, fmt.Errorf("unregistered compute function: %s", d.Function)
		}
		for _, col := range d.Columns {
			if !result.HasCol(col) {
				return nil, &frame.MissingColumnError{Column: col}
			}
		}
		next, err := result.Map(d.Alias, func(row frame.Row) (any, error) {
			return fn(row, d.Columns)
		})
		if err != nil {
			return nil, fmt.Errorf("executing compute function %q: %w", d.Function, err)
		}
		result = next
	}
	return result, nil
}

// arithmeticFunction builds the elementwise compute function for one of the
// built-in operations. All inputs must be numeric; the result is a float64.
func arithmeticFunction(op string) ComputeFunction {
	return func(row frame.Row, columns []string) (any, error) {
		if len(columns) == 0 {
			return nil, fmt.Errorf("%s requires at least one input column", op)
		}
		var acc float64
		for i, col := range columns {
			v, ok := row[col]
			if !ok {
				return nil, &frame.MissingColumnError{Column: col}
			}
			f, okF := ToFloat64Strict(v)
			if !okF {
				return nil, &frame.TypeMismatchError{Column: col, Value: v, Want: frame.Float}
			}
			if i == 0 {
				acc = f
				continue
			}
			switch op {
			case "mul":
				acc *= f
			case "add":
				acc += f
			case "sub":
				acc -= f
			case "div":
				if f == 0 {
					return nil, fmt.Errorf("division by zero in column %q", col)
				}
				acc /= f
			}
		}
		return acc, nil
	}
}
