package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// OrganizationRepositoryPG implements domain.OrganizationRepository backed by PostgreSQL.
type OrganizationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository creates a new OrganizationRepositoryPG.
func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepositoryPG {
	return &OrganizationRepositoryPG{pool: pool}
}

// GetByID fetches an organization by UUID.
func (r *OrganizationRepositoryPG) GetByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, storage_gb, fleet_map_enabled, created_at
FROM organizations
WHERE id = $1`, orgID)

	var org domain.Organization
	if err := row.Scan(&org.ID, &org.Name, &org.StorageGB, &org.FleetMapEnabled, &org.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// MemberRepositoryPG implements domain.MemberRepository backed by PostgreSQL.
type MemberRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepositoryPG.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepositoryPG {
	return &MemberRepositoryPG{pool: pool}
}

// ListByOrg returns every membership row for the organization, owner first
// then by join date, matching the engine's canonical free-seat order.
func (r *MemberRepositoryPG) ListByOrg(ctx context.Context, orgID string) ([]domain.Member, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, org_id, role, status, joined_date
FROM members
WHERE org_id = $1
ORDER BY (role = 'owner') DESC, joined_date ASC, id ASC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.OrgID, &m.Role, &m.Status, &m.JoinedDate); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CountByStatus counts memberships in one lifecycle state.
func (r *MemberRepositoryPG) CountByStatus(ctx context.Context, orgID string, status domain.MemberStatus) (int, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM members
WHERE org_id = $1 AND status = $2`, orgID, status)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
