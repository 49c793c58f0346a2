package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/billing"
	"server/internal/middleware"
)

type billingResponse struct {
	OrgID   string                `json:"org_id"`
	Billing billing.BillingResult `json:"billing"`
	Display displayTotals         `json:"display"`
	Period  billingPeriod         `json:"period"`
	IsFree  bool                  `json:"is_free"`
}

// displayTotals carries locale-formatted, two-decimal renditions of the
// unrounded engine output.
type displayTotals struct {
	UserLicenses string `json:"user_licenses"`
	Storage      string `json:"storage"`
	Features     string `json:"features"`
	MonthlyTotal string `json:"monthly_total"`
}

type billingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OrgBilling computes the monthly cost breakdown for one organization.
func (a *App) OrgBilling(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	snap, err := a.loadSnapshot(r, orgID)
	if err != nil {
		a.error(w, r, err)
		return
	}

	result := a.Engine.Calculate(billing.BillingState{
		Members:          snap.members,
		StorageGB:        snap.org.StorageGB,
		FleetMapEnabled:  snap.org.FleetMapEnabled,
		SlotAvailability: snap.availability,
	})

	locale := middleware.LocaleFromContext(r.Context())

	a.json(w, http.StatusOK, billingResponse{
		OrgID:   orgID,
		Billing: result,
		Display: displayTotals{
			UserLicenses: billing.FormatAmount(result.Totals.UserLicenses, locale),
			Storage:      billing.FormatAmount(result.Totals.Storage, locale),
			Features:     billing.FormatAmount(result.Totals.Features, locale),
			MonthlyTotal: billing.FormatAmount(result.Totals.MonthlyTotal, locale),
		},
		Period: billingPeriod{
			Start: snap.availability.CurrentPeriodStart,
			End:   snap.availability.CurrentPeriodEnd,
		},
		IsFree: a.Engine.IsFreeOrganization(snap.members),
	})
}

// OrgRestrictions derives the feature entitlement set for one organization.
func (a *App) OrgRestrictions(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	snap, err := a.loadSnapshot(r, orgID)
	if err != nil {
		a.error(w, r, err)
		return
	}

	restrictions := a.Engine.Restrictions(snap.members, snap.org.FleetMapEnabled)
	a.json(w, http.StatusOK, map[string]any{
		"org_id":       orgID,
		"restrictions": restrictions,
	})
}
