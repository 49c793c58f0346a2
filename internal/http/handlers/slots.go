package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// OrgSlots reports the current capacity snapshot and its UI status. The
// optional "requested" query parameter sizes the status check, defaulting
// to a single slot.
func (a *App) OrgSlots(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	requested := 1
	if raw := r.URL.Query().Get("requested"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.badRequest(w, "requested must be an integer")
			return
		}
		requested = n
	}

	snap, err := a.loadSnapshot(r, orgID)
	if err != nil {
		a.error(w, r, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"org_id":       orgID,
		"availability": snap.availability,
		"status":       a.Engine.SlotStatusFor(snap.availability, requested),
		"has_licenses": a.Engine.HasLicenses(snap.availability),
	})
}

// CheckInvitation is the invitation gate: it decides whether a new invite
// may proceed given current capacity.
func (a *App) CheckInvitation(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	snap, err := a.loadSnapshot(r, orgID)
	if err != nil {
		a.error(w, r, err)
		return
	}

	blocked := a.Engine.ShouldBlockInvitation(snap.availability)
	status := a.Engine.SlotStatusFor(snap.availability, 1)

	a.json(w, http.StatusOK, map[string]any{
		"org_id":  orgID,
		"blocked": blocked,
		"status":  status,
	})
}
