package billing

import (
	"fmt"

	"server/internal/domain"
)

// SlotStatusKind names the capacity states surfaced to the UI.
type SlotStatusKind string

const (
	SlotStatusUnlimited    SlotStatusKind = "unlimited"
	SlotStatusAvailable    SlotStatusKind = "available"
	SlotStatusInsufficient SlotStatusKind = "insufficient"
	SlotStatusExhausted    SlotStatusKind = "exhausted"
)

// Severity variants for UI styling.
const (
	VariantDefault     = "default"
	VariantSuccess     = "success"
	VariantWarning     = "warning"
	VariantDestructive = "destructive"
)

// SlotStatus describes current capacity relative to a request, with a
// severity variant for UI styling.
type SlotStatus struct {
	Status  SlotStatusKind `json:"status"`
	Variant string         `json:"variant"`
	Message string         `json:"message"`
}

// HasLicenses reports whether the organization holds any license capacity.
// While billing is disabled capacity is unlimited, including when no
// snapshot was loaded. Under metered pricing a missing snapshot means no
// capacity.
func (e *Engine) HasLicenses(avail *domain.SlotAvailability) bool {
	if e.mode == ModeFree {
		return true
	}
	if avail == nil {
		return false
	}
	return avail.TotalPurchased > 0
}

// SlotStatusFor classifies capacity against a requested number of slots.
// The free mode overrides capacity semantics entirely: the status is
// unlimited even when the snapshot says otherwise.
func (e *Engine) SlotStatusFor(avail *domain.SlotAvailability, requestedSlots int) SlotStatus {
	if e.mode == ModeFree {
		return SlotStatus{
			Status:  SlotStatusUnlimited,
			Variant: VariantDefault,
			Message: "Unlimited slots available",
		}
	}

	if requestedSlots < 1 {
		requestedSlots = 1
	}

	if avail == nil || avail.AvailableSlots <= 0 {
		return SlotStatus{
			Status:  SlotStatusExhausted,
			Variant: VariantDestructive,
			Message: "No license slots available",
		}
	}

	if avail.AvailableSlots < requestedSlots {
		return SlotStatus{
			Status:  SlotStatusInsufficient,
			Variant: VariantWarning,
			Message: fmt.Sprintf("Only %d of %d requested slots available", avail.AvailableSlots, requestedSlots),
		}
	}

	return SlotStatus{
		Status:  SlotStatusAvailable,
		Variant: VariantSuccess,
		Message: fmt.Sprintf("%d slots available", avail.AvailableSlots),
	}
}

// ShouldBlockInvitation reports whether a new invitation must be refused.
// Never blocks while billing is disabled; under metered pricing it blocks
// when capacity is exhausted or no snapshot was loaded.
func (e *Engine) ShouldBlockInvitation(avail *domain.SlotAvailability) bool {
	if e.mode == ModeFree {
		return false
	}
	if avail == nil {
		return true
	}
	return avail.AvailableSlots <= 0
}
