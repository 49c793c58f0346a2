package billing

// PricingMode selects the computation path for the whole engine. It is
// resolved once at startup from configuration; mid-session flips are not a
// supported scenario.
type PricingMode string

const (
	// ModeFree disables billing entirely: every cost is zero and every
	// entitlement is granted.
	ModeFree PricingMode = "free"
	// ModeMetered charges per active user beyond the first, for storage
	// overage and for enabled feature add-ons.
	ModeMetered PricingMode = "metered"
)

// Rates holds the monetary constants used by the metered path. All amounts
// are USD per month.
type Rates struct {
	PerUserMonthly      float64
	StorageFreeGB       float64
	StorageOveragePerGB float64
	FleetMapMonthly     float64
}

// DefaultRates returns the reference pricing: $10 per user after the first,
// 5 GB free storage then $0.10/GB, $10 flat for the fleet map add-on.
func DefaultRates() Rates {
	return Rates{
		PerUserMonthly:      10,
		StorageFreeGB:       5,
		StorageOveragePerGB: 0.10,
		FleetMapMonthly:     10,
	}
}

// Engine computes invoices, entitlements and slot verdicts for one pricing
// mode. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	mode  PricingMode
	rates Rates
}

// NewEngine builds an engine for the given mode and rates. Unknown modes fall
// back to metered so a misconfigured flag can never hand out free service.
func NewEngine(mode PricingMode, rates Rates) *Engine {
	if mode != ModeFree {
		mode = ModeMetered
	}
	return &Engine{mode: mode, rates: rates}
}

// Mode reports the pricing mode the engine was built with.
func (e *Engine) Mode() PricingMode {
	return e.mode
}

// Rates reports the rates the engine was built with.
func (e *Engine) Rates() Rates {
	return e.rates
}
