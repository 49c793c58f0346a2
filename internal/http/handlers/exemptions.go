package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/billing"
	"server/internal/domain"
)

type exemptionItem struct {
	ID             string     `json:"id"`
	ExemptionType  string     `json:"exemption_type"`
	ExemptionValue int        `json:"exemption_value"`
	Reason         string     `json:"reason,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	Active         bool       `json:"active"`
	ExpiringSoon   bool       `json:"expiring_soon"`
}

// ListExemptions returns every grant for the organization, including expired
// rows for audit, with active and near-expiry flags plus a per-type summary.
func (a *App) ListExemptions(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	if _, err := a.Orgs.GetByID(r.Context(), orgID); err != nil {
		a.error(w, r, err)
		return
	}

	exemptions, err := a.Exemptions.ListByOrg(r.Context(), orgID)
	if err != nil {
		a.error(w, r, err)
		return
	}

	now := a.Now()
	items := make([]exemptionItem, 0, len(exemptions))
	for _, ex := range exemptions {
		items = append(items, exemptionItem{
			ID:             ex.ID,
			ExemptionType:  ex.ExemptionType,
			ExemptionValue: ex.ExemptionValue,
			Reason:         ex.Reason,
			ExpiresAt:      ex.ExpiresAt,
			CreatedAt:      ex.CreatedAt,
			Active:         ex.Active(now),
			ExpiringSoon:   billing.ExpiringSoon(ex, now),
		})
	}

	a.json(w, http.StatusOK, map[string]any{
		"org_id":         orgID,
		"items":          items,
		"summary":        billing.SummarizeExemptions(exemptions, now),
		"exempted_slots": billing.ExemptedSlots(exemptions, now),
	})
}

type createExemptionRequest struct {
	ExemptionType  string     `json:"exemption_type"`
	ExemptionValue int        `json:"exemption_value"`
	Reason         string     `json:"reason"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// CreateExemption records an administrator-granted capacity grant.
func (a *App) CreateExemption(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req createExemptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.badRequest(w, "invalid JSON body")
		return
	}

	req.ExemptionType = strings.TrimSpace(req.ExemptionType)
	if req.ExemptionType == "" {
		a.badRequest(w, "exemption_type is required")
		return
	}
	if req.ExemptionValue < 0 {
		a.badRequest(w, "exemption_value must not be negative")
		return
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(a.Now()) {
		a.badRequest(w, "expires_at must be in the future")
		return
	}

	if _, err := a.Orgs.GetByID(r.Context(), orgID); err != nil {
		a.error(w, r, err)
		return
	}

	exemption := &domain.BillingExemption{
		ID:             uuid.NewString(),
		OrgID:          orgID,
		ExemptionType:  req.ExemptionType,
		ExemptionValue: req.ExemptionValue,
		Reason:         req.Reason,
		ExpiresAt:      req.ExpiresAt,
	}

	if err := a.Exemptions.Create(r.Context(), exemption); err != nil {
		a.error(w, r, err)
		return
	}

	a.json(w, http.StatusCreated, exemptionItem{
		ID:             exemption.ID,
		ExemptionType:  exemption.ExemptionType,
		ExemptionValue: exemption.ExemptionValue,
		Reason:         exemption.Reason,
		ExpiresAt:      exemption.ExpiresAt,
		CreatedAt:      exemption.CreatedAt,
		Active:         true,
	})
}
