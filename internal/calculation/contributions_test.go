package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

func TestCalculateContributions(t *testing.T) {
	components := domain.DefaultRegulation().Contributions

	tests := []struct {
		name       string
		base       int64
		jht        int64
		jp         int64
		health     int64
		deductible int64
	}{
		{"below every cap", 10_000_000, 200_000, 100_000, 100_000, 300_000},
		{"above pension cap", 11_000_000, 220_000, 100_423, 110_000, 320_423},
		{"above both caps", 20_000_000, 400_000, 100_423, 120_000, 500_423},
		{"zero", 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateContributions(rp(tt.base), components)
			require.Len(t, res.Lines, 3)
			assertAmount(t, tt.jht, res.Lines[0].Amount, "JHT")
			assertAmount(t, tt.jp, res.Lines[1].Amount, "JP")
			assertAmount(t, tt.health, res.Lines[2].Amount, "BPJS Kesehatan")
			assertAmount(t, tt.jht+tt.jp+tt.health, res.Total, "total")
			assertAmount(t, tt.deductible, res.DeductibleTotal, "deductible")
		})
	}
}

func TestCalculateContributions_CapIndependentOfExcess(t *testing.T) {
	components := []domain.ContributionComponent{
		{Label: "JP", Rate: domain.Percent("1"), Cap: rp(10_042_300)},
		{Label: "BPJS Kesehatan", Rate: domain.Percent("1"), Cap: rp(12_000_000)},
	}

	atCap := CalculateContributions(rp(12_000_000), components)
	for _, base := range []int64{12_000_001, 50_000_000, 1_000_000_000} {
		res := CalculateContributions(rp(base), components)
		for i, l := range res.Lines {
			assert.True(t, l.Capped)
			assert.True(t, l.Amount.Equal(atCap.Lines[i].Amount), "%s at %d", l.Label, base)
			assert.True(t, l.Amount.Equal(components[i].Cap.Mul(components[i].Rate).Floor()))
		}
	}
}

func TestCalculateContributions_NegativeBase(t *testing.T) {
	res := CalculateContributions(rp(-1), domain.DefaultRegulation().Contributions)
	assert.True(t, res.Total.IsZero())
}

func TestContributionResult_Scale(t *testing.T) {
	res := CalculateContributions(rp(10_000_000), domain.DefaultRegulation().Contributions).Scale(12)
	assertAmount(t, 2_400_000, res.Lines[0].Amount, "JHT annual")
	assertAmount(t, 4_800_000, res.Total, "total annual")
	assertAmount(t, 3_600_000, res.DeductibleTotal, "deductible annual")
}
