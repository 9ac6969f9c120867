package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparisonOperator_IsStandard(t *testing.T) {
	tests := []struct {
		operator ComparisonOperator
		expected bool
	}{
		{ComparisonOperatorEq, true},
		{ComparisonOperatorNeq, true},
		{ComparisonOperatorLt, true},
		{ComparisonOperatorLte, true},
		{ComparisonOperatorGt, true},
		{ComparisonOperatorGte, true},
		{ComparisonOperatorIn, true},
		{ComparisonOperatorNin, true},
		{"custom_op", false},
		{"another_custom", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.operator), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.operator.IsStandard())
		})
	}
}
