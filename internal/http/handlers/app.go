package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"server/internal/billing"
	"server/internal/domain"
)

// App bundles the billing engine with the repositories that load its input
// snapshots. The engine never performs I/O; handlers fetch the snapshot and
// hand it over.
type App struct {
	Engine     *billing.Engine
	Orgs       domain.OrganizationRepository
	Members    domain.MemberRepository
	Slots      domain.SlotPurchaseRepository
	Exemptions domain.ExemptionRepository
	Logger     zerolog.Logger

	// Now is the evaluation clock, overridable in tests.
	Now func() time.Time
}

// NewApp constructs the handler container.
func NewApp(engine *billing.Engine, orgs domain.OrganizationRepository, members domain.MemberRepository, slots domain.SlotPurchaseRepository, exemptions domain.ExemptionRepository, logger zerolog.Logger) *App {
	return &App{
		Engine:     engine,
		Orgs:       orgs,
		Members:    members,
		Slots:      slots,
		Exemptions: exemptions,
		Logger:     logger,
		Now:        time.Now,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		a.json(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	a.json(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (a *App) badRequest(w http.ResponseWriter, msg string) {
	a.json(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// snapshot is the read-only input the engine consumes for one organization.
type snapshot struct {
	org          *domain.Organization
	members      []domain.Member
	availability *domain.SlotAvailability
}

// loadSnapshot gathers membership, purchase and exemption rows and resolves
// the capacity snapshot for the current billing period.
func (a *App) loadSnapshot(r *http.Request, orgID string) (*snapshot, error) {
	ctx := r.Context()

	org, err := a.Orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	members, err := a.Members.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	exemptions, err := a.Exemptions.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	now := a.Now()
	purchased, periodStart, periodEnd, err := a.Slots.TotalForPeriod(ctx, orgID, now)
	if err != nil {
		return nil, err
	}

	avail := billing.ResolveSlotAvailability(purchased, members, exemptions, now, periodStart, periodEnd)

	return &snapshot{
		org:          org,
		members:      members,
		availability: &avail,
	}, nil
}
