package bench

import (
	"regexp"

	"github.com/cockroachdb/apd/v3"
	"github.com/ericlagergren/decimal"

	"github.com/ydb-platform/decimal-bench/internal/dataset"
)

// SetupLevel says when mutable operands are restored during a scenario.
type SetupLevel int

const (
	// SetupTrial restores operands once before warmup.
	SetupTrial SetupLevel = iota
	// SetupInvocation also restores operands before a call whose working index is zero.
	SetupInvocation
)

func (l SetupLevel) String() string {
	switch l {
	case SetupTrial:
		return "trial"
	case SetupInvocation:
		return "invocation"
	default:
		return "unknown"
	}
}

// Scenario is one measured call shape. Call performs exactly one operation at the
// harness index, hands the result to the sink and advances the index.
type Scenario struct {
	Name  string
	Setup SetupLevel
	Call  func(h *Harness)
}

const (
	VariantApd           = "apd"
	VariantDec128Static  = "dec128-static"
	VariantDec128Method  = "dec128-method"
	VariantDec128InPlace = "dec128-inplace"
)

type operation struct {
	name string
	apd  func(c *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)
	ctx  func(z, x, y *decimal.Big) *decimal.Big
	big  func(z, x, y *decimal.Big) *decimal.Big
}

var operations = []operation{
	{
		name: "Add",
		apd:  (*apd.Context).Add,
		ctx:  func(z, x, y *decimal.Big) *decimal.Big { return dataset.Dec128.Add(z, x, y) },
		big:  (*decimal.Big).Add,
	},
	{
		name: "Sub",
		apd:  (*apd.Context).Sub,
		ctx:  func(z, x, y *decimal.Big) *decimal.Big { return dataset.Dec128.Sub(z, x, y) },
		big:  (*decimal.Big).Sub,
	},
	{
		name: "Mul",
		apd:  (*apd.Context).Mul,
		ctx:  func(z, x, y *decimal.Big) *decimal.Big { return dataset.Dec128.Mul(z, x, y) },
		big:  (*decimal.Big).Mul,
	},
	{
		name: "Quo",
		apd:  (*apd.Context).Quo,
		ctx:  func(z, x, y *decimal.Big) *decimal.Big { return dataset.Dec128.Quo(z, x, y) },
		big:  (*decimal.Big).Quo,
	},
}

// Scenarios returns every registered scenario: each operation measured on apd and on
// dec128 in static, method and in-place forms.
func Scenarios() []Scenario {
	scenarios := make([]Scenario, 0, len(operations)*4)
	for _, op := range operations {
		scenarios = append(scenarios,
			apdScenario(op),
			dec128StaticScenario(op),
			dec128MethodScenario(op),
			dec128InPlaceScenario(op),
		)
	}

	return scenarios
}

// Filter keeps scenarios whose name matches re. A nil re keeps everything.
func Filter(scenarios []Scenario, re *regexp.Regexp) []Scenario {
	if re == nil {
		return scenarios
	}
	filtered := make([]Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		if re.MatchString(s.Name) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

func apdScenario(op operation) Scenario {
	return Scenario{
		Name: op.name + "/" + VariantApd,
		Call: func(h *Harness) {
			i := h.index
			d := new(apd.Decimal)
			cond, err := op.apd(h.apdCtx, d, h.ds.ApdX[i], h.ds.ApdY[i])
			h.apdResults[i] = d
			h.sink.ConsumeApd(d, cond, err)
			h.advance()
		},
	}
}

func dec128StaticScenario(op operation) Scenario {
	return Scenario{
		Name: op.name + "/" + VariantDec128Static,
		Call: func(h *Harness) {
			i := h.index
			z := op.ctx(new(decimal.Big), h.ds.Dec128X[i], h.ds.Dec128Y[i])
			h.dec128Results[i] = z
			h.sink.ConsumeDec128(z)
			h.advance()
		},
	}
}

func dec128MethodScenario(op operation) Scenario {
	return Scenario{
		Name: op.name + "/" + VariantDec128Method,
		Call: func(h *Harness) {
			i := h.index
			z := op.big(h.dec128Receivers[i], h.ds.Dec128X[i], h.ds.Dec128Y[i])
			h.sink.ConsumeDec128(z)
			h.advance()
		},
	}
}

func dec128InPlaceScenario(op operation) Scenario {
	return Scenario{
		Name:  op.name + "/" + VariantDec128InPlace,
		Setup: SetupInvocation,
		Call: func(h *Harness) {
			i := h.index
			x := h.ds.Dec128X[i]
			h.sink.ConsumeDec128(op.big(x, x, h.ds.Dec128Y[i]))
			h.advance()
		},
	}
}
