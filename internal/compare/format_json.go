package compare

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// jsonComparison adds the aggregate tax and the profile names to the set
type jsonComparison struct {
	*ComparisonSet
	Profiles []string        `json:"profiles"`
	TotalTax decimal.Decimal `json:"totalTax"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{
		ComparisonSet: compSet,
		Profiles:      compSet.Names(),
		TotalTax:      compSet.TotalTax(),
	}

	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
