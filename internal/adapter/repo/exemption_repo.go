package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// ExemptionRepositoryPG implements domain.ExemptionRepository backed by PostgreSQL.
type ExemptionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewExemptionRepository creates a new ExemptionRepositoryPG.
func NewExemptionRepository(pool *pgxpool.Pool) *ExemptionRepositoryPG {
	return &ExemptionRepositoryPG{pool: pool}
}

// ListByOrg returns every exemption grant for the organization, newest first.
// Expired rows are included; filtering to active grants is the engine's job.
func (r *ExemptionRepositoryPG) ListByOrg(ctx context.Context, orgID string) ([]domain.BillingExemption, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, org_id, exemption_type, exemption_value, reason, expires_at, created_at
FROM billing_exemptions
WHERE org_id = $1
ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exemptions []domain.BillingExemption
	for rows.Next() {
		var ex domain.BillingExemption
		if err := rows.Scan(&ex.ID, &ex.OrgID, &ex.ExemptionType, &ex.ExemptionValue, &ex.Reason, &ex.ExpiresAt, &ex.CreatedAt); err != nil {
			return nil, err
		}
		exemptions = append(exemptions, ex)
	}
	return exemptions, rows.Err()
}

// Create inserts an exemption grant.
func (r *ExemptionRepositoryPG) Create(ctx context.Context, exemption *domain.BillingExemption) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO billing_exemptions (id, org_id, exemption_type, exemption_value, reason, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`,
		exemption.ID,
		exemption.OrgID,
		exemption.ExemptionType,
		exemption.ExemptionValue,
		exemption.Reason,
		exemption.ExpiresAt,
	)
	return row.Scan(&exemption.CreatedAt)
}

// Expire ends a grant at the given instant. The row stays stored for audit.
func (r *ExemptionRepositoryPG) Expire(ctx context.Context, exemptionID string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE billing_exemptions
SET expires_at = $2
WHERE id = $1`, exemptionID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
