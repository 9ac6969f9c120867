package query

import (
	"errors"
	"fmt"
	"testing"

	"github.com/asaidimu/go-tabula/core/frame"
	"github.com/asaidimu/go-tabula/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.LoadRecords([][]string{
		{"country", "year", "population", "gdp_per_capita"},
		{"Afghanistan", "1952", "8425333", "779.45"},
		{"Australia", "2007", "20434176", "34435.37"},
		{"Kenya", "2007", "35610177", "1463.25"},
		{"Norway", "1952", "3327728", "10095.42"},
	})
	require.NoError(t, err)
	return f
}

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(nil)
	assert.NotNil(t, p)
	assert.Contains(t, p.computeFunctions, "mul")
	assert.Contains(t, p.computeFunctions, "add")
	assert.Contains(t, p.computeFunctions, "sub")
	assert.Contains(t, p.computeFunctions, "div")

	p = NewProcessor(zap.NewNop())
	assert.NotNil(t, p)
}

func TestProcessor_RegisterComputeFunction(t *testing.T) {
	p := NewProcessor(nil)
	fn := func(row frame.Row, columns []string) (any, error) { return nil, nil }
	p.RegisterComputeFunction("testFunc", fn)
	assert.Contains(t, p.computeFunctions, "testFunc")
}

func TestProcessor_RegisterPredicateFunction(t *testing.T) {
	p := NewProcessor(nil)
	fn := func(row frame.Row, column string, value Value) (bool, error) { return true, nil }
	p.RegisterPredicateFunction("customOp", fn)
	assert.Contains(t, p.predicateFunctions, ComparisonOperator("customOp"))
}

func TestProcessor_Apply_Filters(t *testing.T) {
	p := NewProcessor(nil)
	f := testFrame(t)

	t.Run("Nil filter keeps all rows", func(t *testing.T) {
		result, err := p.Apply(f, Query{})
		require.NoError(t, err)
		assert.Equal(t, f.Nrow(), result.Nrow())
	})

	t.Run("Eq filter", func(t *testing.T) {
		q := NewBuilder().Where("country").Eq("Kenya").Build()
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		require.Equal(t, 1, result.Nrow())
		assert.Equal(t, "Kenya", result.Row(0)["country"])
	})

	t.Run("In filter keeps member rows in order", func(t *testing.T) {
		q := NewBuilder().Where("year").In(2007).Build()
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		require.Equal(t, 2, result.Nrow())
		assert.Equal(t, "Australia", result.Row(0)["country"])
		assert.Equal(t, "Kenya", result.Row(1)["country"])
	})

	t.Run("Nin filter drops member rows", func(t *testing.T) {
		q := NewBuilder().Where("year").Nin(2007).Build()
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Nrow())
	})

	t.Run("Gt filter on numeric column", func(t *testing.T) {
		q := NewBuilder().Where("population").Gt(30000000).Build()
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		require.Equal(t, 1, result.Nrow())
		assert.Equal(t, "Kenya", result.Row(0)["country"])
	})

	t.Run("Conditions combine with AND", func(t *testing.T) {
		q := NewBuilder().
			Where("year").In(2007).
			Where("country").Eq("Australia").
			Build()
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		require.Equal(t, 1, result.Nrow())
		assert.Equal(t, "Australia", result.Row(0)["country"])
	})

	t.Run("OR group", func(t *testing.T) {
		q := Query{Filters: &Filter{Group: &Group{
			Operator: schema.LogicalOr,
			Filters: []Filter{
				{Condition: &Condition{Column: "country", Operator: ComparisonOperatorEq, Value: "Kenya"}},
				{Condition: &Condition{Column: "country", Operator: ComparisonOperatorEq, Value: "Norway"}},
			},
		}}}
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Nrow())
	})

	t.Run("Missing filter column fails up front", func(t *testing.T) {
		q := NewBuilder().Where("continent").Eq("Africa").Build()
		_, err := p.Apply(f, q)
		var missing *frame.MissingColumnError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "continent", missing.Column)
	})
}

func TestProcessor_Apply_Derived(t *testing.T) {
	p := NewProcessor(nil)
	f := testFrame(t)

	t.Run("mul derives a product column", func(t *testing.T) {
		q := NewBuilder().Derive("gdp", "mul", "population", "gdp_per_capita").Build()
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		require.Equal(t, f.Ncol()+1, result.Ncol())
		for i := 0; i < result.Nrow(); i++ {
			row := result.Row(i)
			pop, _ := ToFloat64Strict(row["population"])
			gpc, _ := ToFloat64Strict(row["gdp_per_capita"])
			assert.InDelta(t, pop*gpc, row["gdp"].(float64), 1e-6)
		}
	})

	t.Run("Unregistered compute function", func(t *testing.T) {
		q := NewBuilder().Derive("x", "nope", "population").Build()
		_, err := p.Apply(f, q)
		assert.ErrorContains(t, err, "unregistered compute function")
	})

	t.Run("Missing input column", func(t *testing.T) {
		q := NewBuilder().Derive("x", "mul", "absent").Build()
		_, err := p.Apply(f, q)
		var missing *frame.MissingColumnError
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("Non-numeric input column", func(t *testing.T) {
		q := NewBuilder().Derive("x", "mul", "country", "population").Build()
		_, err := p.Apply(f, q)
		var mismatch *frame.TypeMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("Custom compute function", func(t *testing.T) {
		p := NewProcessor(nil)
		p.RegisterComputeFunction("constant", func(row frame.Row, columns []string) (any, error) {
			return 1, nil
		})
		q := NewBuilder().Derive("one", "constant").Build()
		result, err := p.Apply(f, q)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Row(0)["one"])
	})

	t.Run("Compute error carries context", func(t *testing.T) {
		p := NewProcessor(nil)
		p.RegisterComputeFunction("boom", func(row frame.Row, columns []string) (any, error) {
			return nil, errors.New("boom")
		})
		q := NewBuilder().Derive("x", "boom").Build()
		_, err := p.Apply(f, q)
		assert.ErrorContains(t, err, "boom")
	})
}

func TestProcessor_Apply_Select(t *testing.T) {
	p := NewProcessor(nil)
	f := testFrame(t)

	q := NewBuilder().
		Where("year").In(2007).
		Derive("gdp", "mul", "population", "gdp_per_capita").
		Select("country", "gdp").
		Build()
	result, err := p.Apply(f, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "gdp"}, result.Names())
	assert.Equal(t, 2, result.Nrow())
}

func TestProcessor_Apply_InputUnchanged(t *testing.T) {
	p := NewProcessor(nil)
	f := testFrame(t)
	before := fmt.Sprintf("%v", f.Records())

	q := NewBuilder().
		Where("year").In(2007).
		Derive("gdp", "mul", "population", "gdp_per_capita").
		Build()
	_, err := p.Apply(f, q)
	require.NoError(t, err)
	assert.Equal(t, before, fmt.Sprintf("%v", f.Records()))
}

func TestProcessor_Apply_Idempotent(t *testing.T) {
	p := NewProcessor(nil)
	f := testFrame(t)

	q := NewBuilder().
		Where("year").In(2007).
		Derive("gdp", "mul", "population", "gdp_per_capita").
		Build()
	once, err := p.Apply(f, q)
	require.NoError(t, err)
	twice, err := p.Apply(once, q)
	require.NoError(t, err)
	assert.Equal(t, once.Records(), twice.Records())
}

func TestProcessor_Match(t *testing.T) {
	p := NewProcessor(nil)
	row := frame.Row{"year": 2007, "country": "Kenya"}

	passes, err := p.Match(row, nil)
	require.NoError(t, err)
	assert.True(t, passes)

	q := NewBuilder().Where("year").In(1952, 2007).Build()
	passes, err = p.Match(row, q.Filters)
	require.NoError(t, err)
	assert.True(t, passes)

	q = NewBuilder().Where("country").Eq("Norway").Build()
	passes, err = p.Match(row, q.Filters)
	require.NoError(t, err)
	assert.False(t, passes)
}

func TestProcessor_CustomPredicate(t *testing.T) {
	p := NewProcessor(nil)
	p.RegisterPredicateFunction("longer_than", func(row frame.Row, column string, value Value) (bool, error) {
		s, ok := row[column].(string)
		if !ok {
			return false, fmt.Errorf("column %q is not a string", column)
		}
		n, ok := value.(int)
		if !ok {
			return false, fmt.Errorf("longer_than requires an int, got %T", value)
		}
		return len(s) > n, nil
	})

	f := testFrame(t)
	q := Query{Filters: &Filter{Condition: &Condition{
		Column:   "country",
		Operator: "longer_than",
		Value:    6,
	}}}
	result, err := p.Apply(f, q)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Nrow()) // Afghanistan, Australia
}
