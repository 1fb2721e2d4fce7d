// Package revenue computes period-scoped consumption and revenue per customer
// from the contracts, products and prices of one snapshot.
//
// The engine is a single synchronous pass over in-memory tables: join contracts
// to prices, clip every pair to the reporting period, integrate cost and usage
// per component, merge base price onto working price as-of date_from, then
// aggregate to one row per customer.
package revenue

import "github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"

// Engine runs the revenue calculation.
type Engine struct {
	policy NegativeOverlapPolicy
}

// Option configures the engine.
type Option func(*Engine)

// WithNegativeOverlapPolicy sets how inverted overlap windows are treated.
func WithNegativeOverlapPolicy(policy NegativeOverlapPolicy) Option {
	return func(e *Engine) {
		if policy != "" {
			e.policy = policy
		}
	}
}

// NewEngine cria um engine; por padrão segmentos negativos são descartados.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{policy: DropNegativeOverlaps}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the negative overlap policy in force.
func (e *Engine) Policy() NegativeOverlapPolicy {
	return e.policy
}

// Result is the output table of one run plus what the engine skipped.
type Result struct {
	Rows        []entity.RevenueRow
	Diagnostics entity.EngineDiagnostics
}

// Run computes one output row per customer for the period.
func (e *Engine) Run(tables entity.Tables, period Period) Result {
	diag := entity.EngineDiagnostics{NegativeOverlapsKept: e.policy == KeepNegativeOverlaps}

	priced := joinPriceProduct(tables.Prices, tables.Products)
	records := joinContractPrice(tables.Contracts, priced)
	diag.JoinedRecords = len(records)

	var working []workingSegment
	var base []baseSegment
	for seq, rec := range records {
		o, ok := resolveOverlap(rec.contract, rec.price, period)
		if !ok {
			diag.DiscardedPairs++
			continue
		}
		if o.days < 0 {
			diag.NegativeOverlaps++
			if e.policy == DropNegativeOverlaps {
				continue
			}
		}

		switch rec.price.Component {
		case entity.WorkingPrice:
			working = append(working, newWorkingSegment(rec, o, seq))
		case entity.BasePrice:
			base = append(base, newBaseSegment(rec, o, seq))
		default:
			diag.UnknownComponents++
		}
	}
	diag.WorkingSegments = len(working)
	diag.BaseSegments = len(base)

	matched := mergeAsOf(working, base)
	for _, m := range matched {
		if !m.hasBase {
			diag.WorkingWithoutBasePrice++
		}
	}

	return Result{
		Rows:        aggregate(matched),
		Diagnostics: diag,
	}
}
