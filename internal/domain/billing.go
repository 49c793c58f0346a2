package domain

import "time"

// SlotAvailability is a per-billing-period capacity snapshot. It is always
// recomputed from source rows on membership or purchase changes and never
// persisted as derived state.
type SlotAvailability struct {
	TotalPurchased int `json:"total_purchased"`
	UsedSlots      int `json:"used_slots"`
	ExemptedSlots  int `json:"exempted_slots"`
	// AvailableSlots is TotalPurchased + ExemptedSlots - UsedSlots; a
	// negative value signals over-capacity.
	AvailableSlots     int       `json:"available_slots"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
}

// SlotPurchase records slots bought for an organization within a billing period.
type SlotPurchase struct {
	ID          string
	OrgID       string
	Quantity    int
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
}

// BillingExemption is an administrator-granted capacity grant. A nil ExpiresAt
// means the grant is perpetual. Exemptions raise the capacity ceiling but
// never reduce monetary cost; expired rows stay stored for audit.
type BillingExemption struct {
	ID             string
	OrgID          string
	ExemptionType  string
	ExemptionValue int
	Reason         string
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

// Active reports whether the exemption applies at the given instant. A grant
// expiring exactly at now is no longer active.
func (e BillingExemption) Active(now time.Time) bool {
	return e.ExpiresAt == nil || e.ExpiresAt.After(now)
}
