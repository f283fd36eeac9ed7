package output

// DefaultAssumptions lists the rounding and scope rules rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Amounts are whole rupiah; fractions are dropped, never rounded up",
	"Annual taxable income (PKP) is floored to the nearest thousand rupiah",
	"Rates and thresholds come from the active regulation file",
	"Figures are an estimate and not a substitute for the official tax return",
}
