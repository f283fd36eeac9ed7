package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("set_npwp", createSetNPWP)
	registry.Register("set_status", createSetPTKPStatus)
	registry.Register("set_months", createSetMonthsWorked)
	registry.Register("to_freelancer", createConvertToFreelancer)
	registry.Register("to_small_business", createConvertToSmallBusiness)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_income:rate=0.1"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createAdjustIncome(params map[string]string) (ProfileTransform, error) {
	rateStr, ok := params["rate"]
	if !ok {
		return nil, fmt.Errorf("adjust_income requires 'rate' parameter")
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %w", err)
	}

	return &AdjustIncome{Rate: rate}, nil
}

func createSetNPWP(params map[string]string) (ProfileTransform, error) {
	hasStr, ok := params["has"]
	if !ok {
		return nil, fmt.Errorf("set_npwp requires 'has' parameter")
	}

	has, err := strconv.ParseBool(hasStr)
	if err != nil {
		return nil, fmt.Errorf("invalid has value: %w", err)
	}

	return &SetNPWP{HasNPWP: has}, nil
}

func createSetPTKPStatus(params map[string]string) (ProfileTransform, error) {
	status, ok := params["status"]
	if !ok {
		return nil, fmt.Errorf("set_status requires 'status' parameter")
	}

	return &SetPTKPStatus{Status: domain.PTKPStatus(status)}, nil
}

func createSetMonthsWorked(params map[string]string) (ProfileTransform, error) {
	monthsStr, ok := params["months"]
	if !ok {
		return nil, fmt.Errorf("set_months requires 'months' parameter")
	}

	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}

	return &SetMonthsWorked{Months: months}, nil
}

func createConvertToFreelancer(params map[string]string) (ProfileTransform, error) {
	profession := params["profession"]
	if profession == "" {
		profession = string(domain.ProfessionFreelance)
	}
	region := params["region"]
	if region == "" {
		region = string(domain.RegionMajorCity)
	}

	return &ConvertToFreelancer{
		Profession: domain.ProfessionCategory(profession),
		Region:     domain.RegionTier(region),
	}, nil
}

func createConvertToSmallBusiness(params map[string]string) (ProfileTransform, error) {
	return &ConvertToSmallBusiness{}, nil
}
