package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrathCole/oracle-script/pkg/report"
)

func some(v float64) report.Value { return report.Some(v) }

func none() report.Value { return report.None() }

func TestMedianize(t *testing.T) {
	reports := [][]report.Value{
		{some(0.0), some(1.3), some(2.3)},
		{some(0.1), some(1.0), some(2.0)},
		{some(0.3), some(1.1), some(2.3)},
		{some(0.3), some(1.1), some(2.3)},
	}

	result := Medianize(reports, 3, 2)
	require.Len(t, result, 3)

	assert.True(t, result[0].Valid)
	assert.InDelta(t, 0.2, result[0].Value, 1e-12)
	assert.Equal(t, Optional{Value: 1.1, Valid: true}, result[1])
	assert.Equal(t, Optional{Value: 2.3, Valid: true}, result[2])
}

func TestMedianize_BelowQuorum(t *testing.T) {
	reports := [][]report.Value{
		{some(0.0), some(1.3), none()},
		{some(0.1), some(1.0), none()},
		{some(0.3), some(1.1), none()},
		{some(0.3), some(1.1), some(2.3)},
	}

	result := Medianize(reports, 3, 2)
	require.Len(t, result, 3)

	assert.True(t, result[0].Valid)
	assert.InDelta(t, 0.2, result[0].Value, 1e-12)
	assert.Equal(t, Optional{Value: 1.1, Valid: true}, result[1])
	assert.False(t, result[2].Valid)
}

func TestMedianize_NoReports(t *testing.T) {
	result := Medianize(nil, 2, 1)
	assert.Equal(t, []Optional{{}, {}}, result)
}

func TestMedianize_ZeroQuorumWithoutValues(t *testing.T) {
	result := Medianize([][]report.Value{{none()}}, 1, 0)
	assert.False(t, result[0].Valid)
}

func TestMedianize_ExactQuorum(t *testing.T) {
	reports := [][]report.Value{
		{some(5)},
		{some(7)},
		{none()},
	}

	assert.Equal(t, []Optional{{Value: 6, Valid: true}}, Medianize(reports, 1, 2))
	assert.Equal(t, []Optional{{}}, Medianize(reports, 1, 3))
}
