package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestrictionsFreeModeGrantsEverything(t *testing.T) {
	engine := NewEngine(ModeFree, DefaultRates())

	for _, size := range []int{0, 1, 3} {
		r := engine.Restrictions(activeMembers(size), false)
		assert.True(t, r.CanManageTeams)
		assert.True(t, r.CanAssignEquipmentToTeams)
		assert.True(t, r.CanUploadImages)
		assert.True(t, r.CanAccessFleetMap)
		assert.True(t, r.CanInviteMembers)
		assert.True(t, r.CanCreateCustomPMTemplates)
		assert.True(t, r.HasAvailableSlots)
		assert.Empty(t, r.UpgradeMessage)
	}
}

func TestRestrictionsMeteredFreeTier(t *testing.T) {
	engine := NewEngine(ModeMetered, DefaultRates())

	r := engine.Restrictions(activeMembers(1), false)

	assert.False(t, r.CanManageTeams)
	assert.False(t, r.CanAssignEquipmentToTeams)
	assert.False(t, r.CanUploadImages)
	assert.False(t, r.CanAccessFleetMap)
	assert.True(t, r.CanInviteMembers)
	assert.False(t, r.CanCreateCustomPMTemplates)
	assert.NotEmpty(t, r.UpgradeMessage)
}

func TestRestrictionsMeteredPaidTier(t *testing.T) {
	engine := NewEngine(ModeMetered, DefaultRates())

	r := engine.Restrictions(activeMembers(3), true)

	assert.True(t, r.CanManageTeams)
	assert.True(t, r.CanAccessFleetMap)
	assert.True(t, r.CanCreateCustomPMTemplates)
	assert.Empty(t, r.UpgradeMessage)

	// The fleet map entitlement follows its add-on toggle.
	r = engine.Restrictions(activeMembers(3), false)
	assert.False(t, r.CanAccessFleetMap)
}

func TestRestrictionMessageCoversEveryKind(t *testing.T) {
	kinds := []RestrictionKind{
		RestrictionManageTeams,
		RestrictionAssignEquipment,
		RestrictionUploadImages,
		RestrictionFleetMap,
		RestrictionInviteMembers,
		RestrictionCustomPMTemplates,
		RestrictionAvailableSlots,
	}

	seen := make(map[string]struct{}, len(kinds))
	for _, kind := range kinds {
		msg := RestrictionMessage(kind)
		assert.NotEmpty(t, msg)
		seen[msg] = struct{}{}
	}
	assert.Len(t, seen, len(kinds), "every kind has a distinct message")
}

func TestRestrictionMessageUnknownKindFallsBack(t *testing.T) {
	assert.Equal(t, "This feature requires a plan upgrade.", RestrictionMessage(RestrictionKind("no_such_kind")))
}
