package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// SlotPurchaseRepositoryPG implements domain.SlotPurchaseRepository backed by PostgreSQL.
type SlotPurchaseRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSlotPurchaseRepository creates a new SlotPurchaseRepositoryPG.
func NewSlotPurchaseRepository(pool *pgxpool.Pool) *SlotPurchaseRepositoryPG {
	return &SlotPurchaseRepositoryPG{pool: pool}
}

// TotalForPeriod sums purchased slots whose period covers the given instant
// and returns the calendar-month bounds of that billing period.
func (r *SlotPurchaseRepositoryPG) TotalForPeriod(ctx context.Context, orgID string, at time.Time) (int, time.Time, time.Time, error) {
	start, end := PeriodBounds(at)

	row := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(quantity), 0)
FROM slot_purchases
WHERE org_id = $1
  AND period_start <= $2
  AND period_end > $2`, orgID, at)

	var total int
	if err := row.Scan(&total); err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	return total, start, end, nil
}

// Create records a slot purchase.
func (r *SlotPurchaseRepositoryPG) Create(ctx context.Context, purchase *domain.SlotPurchase) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO slot_purchases (id, org_id, quantity, period_start, period_end)
VALUES ($1, $2, $3, $4, $5)`,
		purchase.ID,
		purchase.OrgID,
		purchase.Quantity,
		purchase.PeriodStart,
		purchase.PeriodEnd,
	)
	return err
}

// PeriodBounds returns the UTC calendar month containing the instant.
func PeriodBounds(at time.Time) (time.Time, time.Time) {
	at = at.UTC()
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
