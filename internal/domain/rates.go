package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RateLookup is the outcome of resolving a category key. Defaulted is set when the key was
// not in the table and the zero rate is a fallback rather than a configured rate.
type RateLookup struct {
	Key       string          `json:"key"`
	Rate      decimal.Decimal `json:"rate"`
	Defaulted bool            `json:"defaulted,omitempty"`
}

// RateTable maps a category of one family to its base rate
type RateTable[K ~string] map[K]decimal.Decimal

// Lookup returns the base rate for k, or a defaulted zero rate for an unknown key
func (t RateTable[K]) Lookup(k K) RateLookup {
	if r, ok := t[k]; ok {
		return RateLookup{Key: string(k), Rate: r}
	}
	return RateLookup{Key: string(k), Rate: decimal.Zero, Defaulted: true}
}

// Missing returns the members of all that have no rate in the table
func (t RateTable[K]) Missing(all []K) []K {
	var out []K
	for _, k := range all {
		if _, ok := t[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// NormRates holds one profession's norm percentage per region tier
type NormRates struct {
	MajorCity         decimal.Decimal `yaml:"major_city" json:"major_city"`
	ProvincialCapital decimal.Decimal `yaml:"provincial_capital" json:"provincial_capital"`
	Other             decimal.Decimal `yaml:"other" json:"other"`
}

// NormTable maps a profession to its norm rates
type NormTable map[ProfessionCategory]NormRates

// UnmarshalYAML decodes each profession over its current entry, so an overlay that sets one
// region tier keeps the others.
func (t *NormTable) UnmarshalYAML(node *yaml.Node) error {
	var entries map[ProfessionCategory]yaml.Node
	if err := node.Decode(&entries); err != nil {
		return err
	}
	merged := make(NormTable, len(*t)+len(entries))
	for k, v := range *t {
		merged[k] = v
	}
	for k, n := range entries {
		rates := merged[k]
		if err := n.Decode(&rates); err != nil {
			return err
		}
		merged[k] = rates
	}
	*t = merged
	return nil
}

// Lookup resolves the norm for a profession and region. Either key being unknown defaults to zero.
func (t NormTable) Lookup(p ProfessionCategory, r RegionTier) RateLookup {
	key := string(p) + "@" + string(r)
	rates, ok := t[p]
	if !ok {
		return RateLookup{Key: key, Rate: decimal.Zero, Defaulted: true}
	}
	switch r {
	case RegionMajorCity:
		return RateLookup{Key: key, Rate: rates.MajorCity}
	case RegionProvincialCapital:
		return RateLookup{Key: key, Rate: rates.ProvincialCapital}
	case RegionOther:
		return RateLookup{Key: key, Rate: rates.Other}
	default:
		return RateLookup{Key: key, Rate: decimal.Zero, Defaulted: true}
	}
}
