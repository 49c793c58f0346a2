package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/billing"
	"server/internal/domain"
)

var testNow = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

type fakeOrgs struct {
	org *domain.Organization
}

func (f *fakeOrgs) GetByID(_ context.Context, orgID string) (*domain.Organization, error) {
	if f.org == nil || f.org.ID != orgID {
		return nil, domain.ErrNotFound
	}
	return f.org, nil
}

type fakeMembers struct {
	members []domain.Member
}

func (f *fakeMembers) ListByOrg(context.Context, string) ([]domain.Member, error) {
	return f.members, nil
}

func (f *fakeMembers) CountByStatus(_ context.Context, _ string, status domain.MemberStatus) (int, error) {
	var n int
	for _, m := range f.members {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeSlots struct {
	total int
}

func (f *fakeSlots) TotalForPeriod(_ context.Context, _ string, at time.Time) (int, time.Time, time.Time, error) {
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	return f.total, start, start.AddDate(0, 1, 0), nil
}

func (f *fakeSlots) Create(context.Context, *domain.SlotPurchase) error {
	return nil
}

type fakeExemptions struct {
	items   []domain.BillingExemption
	created *domain.BillingExemption
}

func (f *fakeExemptions) ListByOrg(context.Context, string) ([]domain.BillingExemption, error) {
	return f.items, nil
}

func (f *fakeExemptions) Create(_ context.Context, ex *domain.BillingExemption) error {
	ex.CreatedAt = testNow
	f.created = ex
	return nil
}

func (f *fakeExemptions) Expire(context.Context, string, time.Time) error {
	return nil
}

type appFixture struct {
	app        *App
	exemptions *fakeExemptions
}

func newTestApp(t *testing.T, mode billing.PricingMode, members []domain.Member, purchased int, exemptions []domain.BillingExemption) *appFixture {
	t.Helper()

	org := &domain.Organization{
		ID:              "org-1",
		Name:            "Acme Fleet Services",
		StorageGB:       8,
		FleetMapEnabled: true,
	}

	fx := &fakeExemptions{items: exemptions}
	app := NewApp(
		billing.NewEngine(mode, billing.DefaultRates()),
		&fakeOrgs{org: org},
		&fakeMembers{members: members},
		&fakeSlots{total: purchased},
		fx,
		zerolog.Nop(),
	)
	app.Now = func() time.Time { return testNow }

	return &appFixture{app: app, exemptions: fx}
}

func orgMembers(active, pending int) []domain.Member {
	joined := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	members := make([]domain.Member, 0, active+pending)
	for i := 0; i < active; i++ {
		role := domain.MemberRoleMember
		if i == 0 {
			role = domain.MemberRoleOwner
		}
		members = append(members, domain.Member{
			ID:         "active-" + string(rune('a'+i)),
			OrgID:      "org-1",
			Role:       role,
			Status:     domain.MemberStatusActive,
			JoinedDate: joined.AddDate(0, 0, i),
		})
	}
	for i := 0; i < pending; i++ {
		members = append(members, domain.Member{
			ID:         "pending-" + string(rune('a'+i)),
			OrgID:      "org-1",
			Role:       domain.MemberRoleMember,
			Status:     domain.MemberStatusPending,
			JoinedDate: joined.AddDate(0, 1, i),
		})
	}
	return members
}

// orgRequest builds a request carrying the orgID chi route parameter.
func orgRequest(method, target, orgID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orgID", orgID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
