package domain

import (
	"context"
	"time"
)

// OrganizationRepository defines access methods for organizations.
type OrganizationRepository interface {
	GetByID(ctx context.Context, orgID string) (*Organization, error)
}

// MemberRepository defines access methods for organization members.
type MemberRepository interface {
	ListByOrg(ctx context.Context, orgID string) ([]Member, error)
	CountByStatus(ctx context.Context, orgID string, status MemberStatus) (int, error)
}

// SlotPurchaseRepository reads and records purchased license slots.
type SlotPurchaseRepository interface {
	TotalForPeriod(ctx context.Context, orgID string, at time.Time) (int, time.Time, time.Time, error)
	Create(ctx context.Context, purchase *SlotPurchase) error
}

// ExemptionRepository handles billing exemption grants.
type ExemptionRepository interface {
	ListByOrg(ctx context.Context, orgID string) ([]BillingExemption, error)
	Create(ctx context.Context, exemption *BillingExemption) error
	Expire(ctx context.Context, exemptionID string, at time.Time) error
}
