package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

func TestAllocateBrackets_Progressive(t *testing.T) {
	schedule := domain.DefaultRegulation().Income.Progressive

	tests := []struct {
		name   string
		base   int64
		tax    int64
		slices int
	}{
		{"zero", 0, 0, 0},
		{"first bracket", 50_000_000, 2_500_000, 1},
		{"first boundary", 60_000_000, 3_000_000, 1},
		{"second bracket", 100_000_000, 9_000_000, 2},
		{"second boundary", 250_000_000, 31_500_000, 2},
		{"third bracket", 400_000_000, 69_000_000, 3},
		{"top bracket", 6_000_000_000, 1_794_000_000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := AllocateBrackets(rp(tt.base), schedule)
			assertAmount(t, tt.tax, alloc.Total, "total")
			assert.Len(t, alloc.Slices, tt.slices)
		})
	}
}

func TestAllocateBrackets_NegativeBaseClamped(t *testing.T) {
	alloc := AllocateBrackets(rp(-5_000_000), domain.DefaultRegulation().Income.Progressive)
	assert.True(t, alloc.Total.IsZero())
	assert.True(t, alloc.Base.IsZero())
	assert.Empty(t, alloc.Slices)
}

func TestAllocateBrackets_BoundaryStaysInLowerBracket(t *testing.T) {
	schedule := domain.DefaultRegulation().Income.Progressive
	for _, boundary := range schedule.Boundaries() {
		alloc := AllocateBrackets(boundary, schedule)
		require.NotEmpty(t, alloc.Slices)
		last := alloc.Slices[len(alloc.Slices)-1]
		assert.True(t, last.Upper.Equal(boundary), "boundary %s should close the last slice, got upper %s", boundary, last.Upper)
	}
}

func TestAllocateBrackets_ExhaustiveAndMonotonic(t *testing.T) {
	reg := domain.DefaultRegulation()
	schedules := []domain.Schedule{reg.Income.Progressive, reg.Income.Severance, reg.Income.RetirementPayout}
	bases := []int64{0, 1, 999, 49_999_999, 50_000_000, 50_000_001, 60_000_000, 100_000_000,
		250_000_001, 499_999_999, 500_000_000, 5_000_000_000, 5_000_000_001, 12_345_678_901}

	for _, s := range schedules {
		t.Run(s.Name, func(t *testing.T) {
			prev := AllocateBrackets(rp(0), s).Total
			for _, b := range bases {
				alloc := AllocateBrackets(rp(b), s)
				assert.True(t, alloc.Taxed().Equal(rp(b)), "slices of %d sum to %s", b, alloc.Taxed())
				assert.True(t, alloc.Total.GreaterThanOrEqual(prev), "tax decreased at %d", b)
				prev = alloc.Total
			}
		})
	}
}

func TestAllocateBrackets_SeveranceAndRetirement(t *testing.T) {
	reg := domain.DefaultRegulation()

	tests := []struct {
		name     string
		schedule domain.Schedule
		base     int64
		tax      int64
	}{
		{"severance exempt tier", reg.Income.Severance, 50_000_000, 0},
		{"severance second tier", reg.Income.Severance, 100_000_000, 2_500_000},
		{"severance top tier", reg.Income.Severance, 600_000_000, 87_500_000},
		{"retirement exempt tier", reg.Income.RetirementPayout, 40_000_000, 0},
		{"retirement taxed", reg.Income.RetirementPayout, 100_000_000, 2_500_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.tax, AllocateBrackets(rp(tt.base), tt.schedule).Total, "tax")
		})
	}
}
