// Package rules evaluates a service's eligibility criteria, fee rules and
// document requirements against an applicant. Every function here is pure:
// the only input besides its arguments is the engine clock.
package rules

import (
	"time"

	"citizenhub/config"
)

// FeeAdjustments holds the thresholds and multipliers applied by the
// "income" and "age" variable factors.
type FeeAdjustments struct {
	LowIncomeThreshold   float64
	HighIncomeThreshold  float64
	LowIncomeMultiplier  float64
	HighIncomeMultiplier float64
	MinorAge             int
	SeniorAge            int
	MinorMultiplier      float64
	SeniorMultiplier     float64
}

// DefaultFeeAdjustments returns the stock adjustment table.
func DefaultFeeAdjustments() FeeAdjustments {
	return FeeAdjustments{
		LowIncomeThreshold:   300000,
		HighIncomeThreshold:  1000000,
		LowIncomeMultiplier:  0.5,
		HighIncomeMultiplier: 1.5,
		MinorAge:             18,
		SeniorAge:            60,
		MinorMultiplier:      0.5,
		SeniorMultiplier:     0.75,
	}
}

// FeeAdjustmentsFromConfig reads the FEE_* keys. Zero values fall back to the
// defaults so a partial configuration stays usable.
func FeeAdjustmentsFromConfig(cfg config.Config) FeeAdjustments {
	adj := DefaultFeeAdjustments()
	if cfg.FeeLowIncomeThreshold > 0 {
		adj.LowIncomeThreshold = cfg.FeeLowIncomeThreshold
	}
	if cfg.FeeHighIncomeThreshold > 0 {
		adj.HighIncomeThreshold = cfg.FeeHighIncomeThreshold
	}
	if cfg.FeeLowIncomeMultiplier > 0 {
		adj.LowIncomeMultiplier = cfg.FeeLowIncomeMultiplier
	}
	if cfg.FeeHighIncomeMultiplier > 0 {
		adj.HighIncomeMultiplier = cfg.FeeHighIncomeMultiplier
	}
	if cfg.FeeMinorAge > 0 {
		adj.MinorAge = cfg.FeeMinorAge
	}
	if cfg.FeeSeniorAge > 0 {
		adj.SeniorAge = cfg.FeeSeniorAge
	}
	if cfg.FeeMinorMultiplier > 0 {
		adj.MinorMultiplier = cfg.FeeMinorMultiplier
	}
	if cfg.FeeSeniorMultiplier > 0 {
		adj.SeniorMultiplier = cfg.FeeSeniorMultiplier
	}
	return adj
}

// Engine evaluates rules. The zero value is not usable; build one with NewEngine.
type Engine struct {
	// Now is the evaluation clock used for age computation.
	Now  func() time.Time
	Fees FeeAdjustments
}

// NewEngine returns an engine on the wall clock. "Today" is the UTC date,
// matching how dates of birth are stored.
func NewEngine(adj FeeAdjustments) *Engine {
	return &Engine{Now: utcNow, Fees: adj}
}

func utcNow() time.Time { return time.Now().UTC() }

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return utcNow()
	}
	return e.Now()
}
