package billing

import (
	"sort"
	"time"

	"server/internal/domain"
)

// ExpiryWarningWindow is how close to expiry a grant must be before the UI
// shows a warning. The flag never changes the numeric computation.
const ExpiryWarningWindow = 30 * 24 * time.Hour

// ActiveExemptions filters a grant list to those applying at now. Expired
// rows are excluded from capacity but remain stored for audit.
func ActiveExemptions(exemptions []domain.BillingExemption, now time.Time) []domain.BillingExemption {
	active := make([]domain.BillingExemption, 0, len(exemptions))
	for _, ex := range exemptions {
		if ex.Active(now) {
			active = append(active, ex)
		}
	}
	return active
}

// ExemptedSlots sums the slot values of all active grants. Duplicate
// exemption types accumulate; negative values are clamped to zero.
func ExemptedSlots(exemptions []domain.BillingExemption, now time.Time) int {
	var total int
	for _, ex := range ActiveExemptions(exemptions, now) {
		if ex.ExemptionValue > 0 {
			total += ex.ExemptionValue
		}
	}
	return total
}

// ExpiringSoon reports whether an active grant expires within the warning
// window. Perpetual grants never expire.
func ExpiringSoon(ex domain.BillingExemption, now time.Time) bool {
	if ex.ExpiresAt == nil || !ex.Active(now) {
		return false
	}
	return ex.ExpiresAt.Sub(now) <= ExpiryWarningWindow
}

// ExemptionSummary aggregates active grants of one type for reporting.
type ExemptionSummary struct {
	ExemptionType string `json:"exemption_type"`
	TotalSlots    int    `json:"total_slots"`
	Grants        int    `json:"grants"`
}

// SummarizeExemptions groups active grants by type, sorted by type name.
func SummarizeExemptions(exemptions []domain.BillingExemption, now time.Time) []ExemptionSummary {
	byType := make(map[string]*ExemptionSummary)
	for _, ex := range ActiveExemptions(exemptions, now) {
		s, ok := byType[ex.ExemptionType]
		if !ok {
			s = &ExemptionSummary{ExemptionType: ex.ExemptionType}
			byType[ex.ExemptionType] = s
		}
		if ex.ExemptionValue > 0 {
			s.TotalSlots += ex.ExemptionValue
		}
		s.Grants++
	}

	summaries := make([]ExemptionSummary, 0, len(byType))
	for _, s := range byType {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ExemptionType < summaries[j].ExemptionType
	})
	return summaries
}

// ResolveSlotAvailability recomputes the capacity snapshot for a billing
// period from source rows. Used slots count active and pending members, since
// pending invitations reserve capacity before they are billed. The available
// count may go negative, signaling over-capacity.
func ResolveSlotAvailability(totalPurchased int, members []domain.Member, exemptions []domain.BillingExemption, now, periodStart, periodEnd time.Time) domain.SlotAvailability {
	if totalPurchased < 0 {
		totalPurchased = 0
	}

	var used int
	for _, m := range members {
		if m.IsBillable() {
			used++
		}
	}

	exempted := ExemptedSlots(exemptions, now)

	return domain.SlotAvailability{
		TotalPurchased:     totalPurchased,
		UsedSlots:          used,
		ExemptedSlots:      exempted,
		AvailableSlots:     totalPurchased + exempted - used,
		CurrentPeriodStart: periodStart,
		CurrentPeriodEnd:   periodEnd,
	}
}
