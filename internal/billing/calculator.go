package billing

import (
	"encoding/json"
	"math"
	"sort"

	"server/internal/domain"
)

// BillingState is the calculator's input: a read-only snapshot of an
// organization's membership, storage usage and add-on toggles. A nil
// SlotAvailability means no capacity snapshot was loaded.
type BillingState struct {
	Members          []domain.Member
	StorageGB        float64
	FleetMapEnabled  bool
	SlotAvailability *domain.SlotAvailability
}

// UserSlotsBreakdown itemizes license costs.
type UserSlotsBreakdown struct {
	Model         PricingMode `json:"model"`
	TotalUsers    int         `json:"total_users"`
	BillableUsers int         `json:"billable_users"`
	CostPerUser   float64     `json:"cost_per_user"`
	TotalCost     float64     `json:"total_cost"`
}

// StorageBreakdown itemizes storage costs. FreeGB is +Inf under the free
// model; it serializes as null so JSON encoding never fails.
type StorageBreakdown struct {
	UsedGB    float64
	FreeGB    float64
	OverageGB float64
	Cost      float64
}

func (s StorageBreakdown) MarshalJSON() ([]byte, error) {
	type view struct {
		UsedGB    float64  `json:"used_gb"`
		FreeGB    *float64 `json:"free_gb"`
		OverageGB float64  `json:"overage_gb"`
		Cost      float64  `json:"cost"`
	}
	v := view{UsedGB: s.UsedGB, OverageGB: s.OverageGB, Cost: s.Cost}
	if !math.IsInf(s.FreeGB, 1) {
		free := s.FreeGB
		v.FreeGB = &free
	}
	return json.Marshal(v)
}

// FeatureCost pairs an add-on's enabled flag with its monthly cost. The two
// are independent: a feature can be enabled while billing is globally free.
type FeatureCost struct {
	Enabled bool    `json:"enabled"`
	Cost    float64 `json:"cost"`
}

// FeaturesBreakdown itemizes add-on costs.
type FeaturesBreakdown struct {
	FleetMap FeatureCost `json:"fleet_map"`
}

// CurrentUsage summarizes how many slots the organization occupies right now.
type CurrentUsage struct {
	ActiveUsers        int `json:"active_users"`
	PendingInvitations int `json:"pending_invitations"`
	TotalSlotsNeeded   int `json:"total_slots_needed"`
}

// Totals aggregates the cost categories. MonthlyTotal always equals the sum
// of the other three fields exactly.
type Totals struct {
	UserLicenses float64 `json:"user_licenses"`
	Storage      float64 `json:"storage"`
	Features     float64 `json:"features"`
	MonthlyTotal float64 `json:"monthly_total"`
}

// BillingResult is the calculator's output. Its shape is identical under
// both pricing models so callers never branch on the mode.
type BillingResult struct {
	UserSlots    UserSlotsBreakdown `json:"user_slots"`
	Storage      StorageBreakdown   `json:"storage"`
	Features     FeaturesBreakdown  `json:"features"`
	CurrentUsage CurrentUsage       `json:"current_usage"`
	Totals       Totals             `json:"totals"`
}

// Calculate computes the monthly cost breakdown for a snapshot. It is pure
// and total: malformed numeric input is clamped to zero, never propagated as
// a negative cost, and the input is never mutated. Monetary values are left
// unrounded; two-decimal rounding belongs to the presentation layer so
// chained calculations do not compound rounding error.
func (e *Engine) Calculate(state BillingState) BillingResult {
	usedGB := math.Max(0, state.StorageGB)

	var active, pending int
	for _, m := range state.Members {
		switch m.Status {
		case domain.MemberStatusActive:
			active++
		case domain.MemberStatusPending:
			pending++
		}
	}

	usage := CurrentUsage{
		ActiveUsers:        active,
		PendingInvitations: pending,
		TotalSlotsNeeded:   active + pending,
	}

	if e.mode == ModeFree {
		return BillingResult{
			UserSlots: UserSlotsBreakdown{
				Model:         ModeFree,
				TotalUsers:    active,
				BillableUsers: active,
			},
			Storage:      StorageBreakdown{UsedGB: usedGB, FreeGB: math.Inf(1)},
			Features:     FeaturesBreakdown{FleetMap: FeatureCost{Enabled: state.FleetMapEnabled}},
			CurrentUsage: usage,
		}
	}

	// The first active user is always free.
	billable := active - 1
	if billable < 0 {
		billable = 0
	}
	userCost := float64(billable) * e.rates.PerUserMonthly

	overageGB := math.Max(0, usedGB-e.rates.StorageFreeGB)
	storageCost := overageGB * e.rates.StorageOveragePerGB

	var fleetMapCost float64
	if state.FleetMapEnabled {
		fleetMapCost = e.rates.FleetMapMonthly
	}

	return BillingResult{
		UserSlots: UserSlotsBreakdown{
			Model:         ModeMetered,
			TotalUsers:    active,
			BillableUsers: billable,
			CostPerUser:   e.rates.PerUserMonthly,
			TotalCost:     userCost,
		},
		Storage: StorageBreakdown{
			UsedGB:    usedGB,
			FreeGB:    e.rates.StorageFreeGB,
			OverageGB: overageGB,
			Cost:      storageCost,
		},
		Features:     FeaturesBreakdown{FleetMap: FeatureCost{Enabled: state.FleetMapEnabled, Cost: fleetMapCost}},
		CurrentUsage: usage,
		Totals: Totals{
			UserLicenses: userCost,
			Storage:      storageCost,
			Features:     fleetMapCost,
			MonthlyTotal: userCost + storageCost + fleetMapCost,
		},
	}
}

// IsFreeOrganization reports whether the organization incurs zero license
// cost under the current mode: always true while billing is disabled, and
// true under metered pricing when at most one active member exists.
func (e *Engine) IsFreeOrganization(members []domain.Member) bool {
	if e.mode == ModeFree {
		return true
	}
	var active int
	for _, m := range members {
		if m.Status == domain.MemberStatusActive {
			active++
		}
	}
	return active <= 1
}

// FreeSeat returns the member occupying the free license seat under metered
// pricing. Canonical order: the owner first, then ascending join date, then
// ID as a tiebreaker, so the result is stable regardless of input order.
func FreeSeat(members []domain.Member) (domain.Member, bool) {
	actives := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if m.Status == domain.MemberStatusActive {
			actives = append(actives, m)
		}
	}
	if len(actives) == 0 {
		return domain.Member{}, false
	}
	sort.SliceStable(actives, func(i, j int) bool {
		if (actives[i].Role == domain.MemberRoleOwner) != (actives[j].Role == domain.MemberRoleOwner) {
			return actives[i].Role == domain.MemberRoleOwner
		}
		if !actives[i].JoinedDate.Equal(actives[j].JoinedDate) {
			return actives[i].JoinedDate.Before(actives[j].JoinedDate)
		}
		return actives[i].ID < actives[j].ID
	})
	return actives[0], true
}
