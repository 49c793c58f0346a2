package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"server/internal/billing"
	"server/internal/domain"
)

func TestOrgSlotsExhaustedUnderMeteredMode(t *testing.T) {
	// 2 purchased, 2 used (1 active + 1 pending), no exemptions.
	fx := newTestApp(t, billing.ModeMetered, orgMembers(1, 1), 2, nil)

	req := orgRequest("GET", "/v1/orgs/org-1/slots", "org-1")
	rr := httptest.NewRecorder()

	fx.app.OrgSlots(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}

	var payload struct {
		Availability domain.SlotAvailability `json:"availability"`
		Status       billing.SlotStatus      `json:"status"`
		HasLicenses  bool                    `json:"has_licenses"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Availability.AvailableSlots != 0 {
		t.Fatalf("available slots mismatch: got %d, want 0", payload.Availability.AvailableSlots)
	}
	if payload.Status.Status != billing.SlotStatusExhausted {
		t.Fatalf("status mismatch: got %q, want exhausted", payload.Status.Status)
	}
	if !payload.HasLicenses {
		t.Fatal("expected purchased slots to count as licenses")
	}
}

func TestOrgSlotsExemptionRaisesCapacity(t *testing.T) {
	exemptions := []domain.BillingExemption{{
		ID:             "ex-1",
		OrgID:          "org-1",
		ExemptionType:  "nonprofit",
		ExemptionValue: 3,
	}}
	fx := newTestApp(t, billing.ModeMetered, orgMembers(2, 0), 2, exemptions)

	req := orgRequest("GET", "/v1/orgs/org-1/slots?requested=2", "org-1")
	rr := httptest.NewRecorder()

	fx.app.OrgSlots(rr, req)

	var payload struct {
		Availability domain.SlotAvailability `json:"availability"`
		Status       billing.SlotStatus      `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Availability.ExemptedSlots != 3 {
		t.Fatalf("exempted slots mismatch: got %d, want 3", payload.Availability.ExemptedSlots)
	}
	if payload.Availability.AvailableSlots != 3 {
		t.Fatalf("available slots mismatch: got %d, want 3", payload.Availability.AvailableSlots)
	}
	if payload.Status.Status != billing.SlotStatusAvailable {
		t.Fatalf("status mismatch: got %q, want available", payload.Status.Status)
	}
}

func TestOrgSlotsFreeModeReportsUnlimited(t *testing.T) {
	fx := newTestApp(t, billing.ModeFree, orgMembers(5, 3), 0, nil)

	req := orgRequest("GET", "/v1/orgs/org-1/slots", "org-1")
	rr := httptest.NewRecorder()

	fx.app.OrgSlots(rr, req)

	var payload struct {
		Status billing.SlotStatus `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status.Status != billing.SlotStatusUnlimited {
		t.Fatalf("status mismatch: got %q, want unlimited", payload.Status.Status)
	}
	if payload.Status.Message != "Unlimited slots available" {
		t.Fatalf("message mismatch: got %q", payload.Status.Message)
	}
}

func TestOrgSlotsRejectsNonNumericRequested(t *testing.T) {
	fx := newTestApp(t, billing.ModeMetered, orgMembers(1, 0), 1, nil)

	req := orgRequest("GET", "/v1/orgs/org-1/slots?requested=lots", "org-1")
	rr := httptest.NewRecorder()

	fx.app.OrgSlots(rr, req)

	if rr.Code != 400 {
		t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
	}
}

func TestCheckInvitationBlockedWhenCapacityExhausted(t *testing.T) {
	fx := newTestApp(t, billing.ModeMetered, orgMembers(1, 1), 2, nil)

	req := orgRequest("POST", "/v1/orgs/org-1/invitations/check", "org-1")
	rr := httptest.NewRecorder()

	fx.app.CheckInvitation(rr, req)

	var payload struct {
		Blocked bool               `json:"blocked"`
		Status  billing.SlotStatus `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Blocked {
		t.Fatal("expected invitation to be blocked")
	}
	if payload.Status.Variant != billing.VariantDestructive {
		t.Fatalf("variant mismatch: got %q, want destructive", payload.Status.Variant)
	}
}

func TestCheckInvitationNeverBlocksInFreeMode(t *testing.T) {
	fx := newTestApp(t, billing.ModeFree, orgMembers(10, 10), 0, nil)

	req := orgRequest("POST", "/v1/orgs/org-1/invitations/check", "org-1")
	rr := httptest.NewRecorder()

	fx.app.CheckInvitation(rr, req)

	var payload struct {
		Blocked bool `json:"blocked"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Blocked {
		t.Fatal("expected invitation to proceed while billing is disabled")
	}
}
