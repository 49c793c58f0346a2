package billing

import "server/internal/domain"

// RestrictionKind identifies one gated capability.
type RestrictionKind string

const (
	RestrictionManageTeams       RestrictionKind = "manage_teams"
	RestrictionAssignEquipment   RestrictionKind = "assign_equipment_to_teams"
	RestrictionUploadImages      RestrictionKind = "upload_images"
	RestrictionFleetMap          RestrictionKind = "fleet_map"
	RestrictionInviteMembers     RestrictionKind = "invite_members"
	RestrictionCustomPMTemplates RestrictionKind = "custom_pm_templates"
	RestrictionAvailableSlots    RestrictionKind = "available_slots"
)

// OrganizationRestrictions is the fixed entitlement set derived from
// membership and pricing mode. UpgradeMessage is empty when nothing is
// restricted.
type OrganizationRestrictions struct {
	CanManageTeams             bool   `json:"can_manage_teams"`
	CanAssignEquipmentToTeams  bool   `json:"can_assign_equipment_to_teams"`
	CanUploadImages            bool   `json:"can_upload_images"`
	CanAccessFleetMap          bool   `json:"can_access_fleet_map"`
	CanInviteMembers           bool   `json:"can_invite_members"`
	CanCreateCustomPMTemplates bool   `json:"can_create_custom_pm_templates"`
	HasAvailableSlots          bool   `json:"has_available_slots"`
	UpgradeMessage             string `json:"upgrade_message"`
}

// Restrictions derives feature entitlements for an organization. While
// billing is disabled every entitlement is granted; the metered branch is
// kept intact so re-enabling billing restores gating without touching
// callers.
func (e *Engine) Restrictions(members []domain.Member, fleetMapEnabled bool) OrganizationRestrictions {
	if e.mode == ModeFree {
		return OrganizationRestrictions{
			CanManageTeams:             true,
			CanAssignEquipmentToTeams:  true,
			CanUploadImages:            true,
			CanAccessFleetMap:          true,
			CanInviteMembers:           true,
			CanCreateCustomPMTemplates: true,
			HasAvailableSlots:          true,
		}
	}

	// Metered: single-seat organizations stay on the free tier and lose the
	// collaboration features; the fleet map follows its paid add-on toggle.
	if e.IsFreeOrganization(members) {
		return OrganizationRestrictions{
			CanManageTeams:             false,
			CanAssignEquipmentToTeams:  false,
			CanUploadImages:            false,
			CanAccessFleetMap:          fleetMapEnabled,
			CanInviteMembers:           true,
			CanCreateCustomPMTemplates: false,
			HasAvailableSlots:          true,
			UpgradeMessage:             RestrictionMessage(RestrictionManageTeams),
		}
	}

	return OrganizationRestrictions{
		CanManageTeams:             true,
		CanAssignEquipmentToTeams:  true,
		CanUploadImages:            true,
		CanAccessFleetMap:          fleetMapEnabled,
		CanInviteMembers:           true,
		CanCreateCustomPMTemplates: true,
		HasAvailableSlots:          true,
	}
}

// RestrictionMessage returns the human-readable explanation for a denied
// entitlement. Unknown kinds get a generic upgrade prompt, never a panic.
func RestrictionMessage(kind RestrictionKind) string {
	switch kind {
	case RestrictionManageTeams:
		return "Team management requires a paid plan. Upgrade to create and organize teams."
	case RestrictionAssignEquipment:
		return "Assigning equipment to teams requires a paid plan."
	case RestrictionUploadImages:
		return "Image uploads require a paid plan. Upgrade to attach photos to equipment and work orders."
	case RestrictionFleetMap:
		return "The fleet map is a paid add-on. Enable it from your billing settings."
	case RestrictionInviteMembers:
		return "You have no license slots available. Purchase more slots to invite members."
	case RestrictionCustomPMTemplates:
		return "Custom preventative-maintenance templates require a paid plan."
	case RestrictionAvailableSlots:
		return "All purchased license slots are in use. Purchase more slots to add members."
	default:
		return "This feature requires a plan upgrade."
	}
}
