package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ulwant/HitungPajakku-sub001/internal/domain"
)

// Logger is the minimal logging surface the engine writes to
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// Engine evaluates every tax regime against one regulation. It holds no mutable state
// besides the logger, so one Engine may serve concurrent callers.
type Engine struct {
	Regulation domain.Regulation
	Logger     Logger
}

// NewEngine creates an engine over the built-in regulation
func NewEngine() *Engine {
	return NewEngineWithRegulation(domain.DefaultRegulation())
}

// NewEngineWithRegulation creates an engine over a caller-supplied regulation
func NewEngineWithRegulation(reg domain.Regulation) *Engine {
	return &Engine{Regulation: reg, Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// lookup logs and records a defaulted rate lookup
func (e *Engine) lookup(family string, l domain.RateLookup, res *domain.ComputationResult) decimal.Decimal {
	if l.Defaulted {
		e.Logger.Warnf("unknown %s category %q, using zero rate", family, l.Key)
		res.Defaulted = append(res.Defaulted, family+":"+l.Key)
	}
	return l.Rate
}

// finishIncome fills the derived fields of an income-tax result
func finishIncome(res domain.ComputationResult) domain.ComputationResult {
	res.Net = res.Gross.Sub(res.Tax).Sub(res.WithheldTotal())
	res.EffectiveRate = effectiveRate(res.Tax, res.Gross)
	return res
}

// finishConsumption fills the derived fields of a VAT-type result
func finishConsumption(res domain.ComputationResult) domain.ComputationResult {
	res.Net = res.Gross.Add(res.Tax)
	res.EffectiveRate = effectiveRate(res.Tax, res.Gross)
	return res
}

func effectiveRate(tax, gross decimal.Decimal) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}
	return tax.DivRound(gross, 6)
}
