package domain

import "time"

// MemberRole enumerates supported organization roles.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// MemberStatus enumerates membership lifecycle states.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusInactive MemberStatus = "inactive"
)

// Member represents one user's relationship to an organization. Every
// organization has exactly one owner; owners and admins are structurally
// privileged but receive no billing exemption beyond the general
// first-user-free rule.
type Member struct {
	ID         string
	OrgID      string
	Role       MemberRole
	Status     MemberStatus
	JoinedDate time.Time
}

// IsBillable reports whether the member occupies a license slot. Pending
// invitations reserve capacity even though they are not yet billed.
func (m Member) IsBillable() bool {
	return m.Status == MemberStatusActive || m.Status == MemberStatusPending
}

// Organization represents a tenant with its storage usage and add-on toggles.
type Organization struct {
	ID              string
	Name            string
	StorageGB       float64
	FleetMapEnabled bool
	CreatedAt       time.Time
}
