package palette_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/gridmap/palette"
)

func TestMemberPlacementSpec(t *testing.T) {
	rc := palette.NewRankColors()
	m := palette.NewMember("Nova")
	m.Rank = palette.RankR4

	spec := m.PlacementSpec(rc)
	assert.Equal(t, "Nova", spec.Name)
	assert.Equal(t, 3, spec.WidthCells)
	assert.Equal(t, 1, spec.Limit, "a member is on the map at most once")
	assert.Equal(t, m.TemplateID(), spec.LimitKey)
	assert.Equal(t, m.TemplateID(), spec.TemplateID)
	assert.Equal(t, rc.Color(palette.RankR4), spec.Fill)
}

func TestMemberDisplayText(t *testing.T) {
	m := palette.NewMember("Nova")
	assert.Equal(t, "R1 Nova", m.DisplayText())

	m.Rank = palette.RankR4
	m.Roles = []string{"Muse", "Warlord"}
	assert.Equal(t, "R4 Nova - Muse, Warlord", m.DisplayText())
}

func TestRankCapR5(t *testing.T) {
	r := palette.NewRoster()
	_, err := r.AddMember("Lead", palette.RankR5)
	require.NoError(t, err)

	_, err = r.AddMember("Pretender", palette.RankR5)
	var capErr *palette.ErrRankCapReached
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, palette.RankR5, capErr.Rank)
	assert.Equal(t, 1, capErr.Max)
	assert.Len(t, r.Members(), 1)
}

func TestRankCapR4(t *testing.T) {
	r := palette.NewRoster()
	for i := 0; i < palette.MaxR4; i++ {
		_, err := r.AddMember("Officer", palette.RankR4)
		require.NoError(t, err)
	}

	_, err := r.AddMember("Eleventh", palette.RankR4)
	var capErr *palette.ErrRankCapReached
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 10, capErr.Max)

	// Demoting one officer frees the slot.
	require.NoError(t, r.SetRank(r.Members()[0], palette.RankR3))
	_, err = r.AddMember("Eleventh", palette.RankR4)
	assert.NoError(t, err)
}

func TestSetRankOwnRankDoesNotCount(t *testing.T) {
	r := palette.NewRoster()
	lead, err := r.AddMember("Lead", palette.RankR5)
	require.NoError(t, err)

	// Re-assigning the holder's own rank is not blocked by the cap.
	assert.NoError(t, r.SetRank(lead, palette.RankR5))
	assert.Equal(t, palette.RankR5, lead.Rank)
}

func TestSetRankUnassignsDisallowedRoles(t *testing.T) {
	r := palette.NewRoster()
	for _, role := range palette.DefaultRoles() {
		r.AddRole(role)
	}
	m, err := r.AddMember("Nova", palette.RankR4)
	require.NoError(t, err)

	warlord := r.Roles()[0]
	require.NoError(t, r.AssignRole(warlord, m))
	require.Equal(t, m.MemberID, warlord.MemberID)

	// Warlord only allows R4; demotion vacates it.
	require.NoError(t, r.SetRank(m, palette.RankR2))
	assert.Empty(t, warlord.MemberID)
}

func TestAssignRoleChecksRank(t *testing.T) {
	r := palette.NewRoster()
	role := palette.NewRole("Warlord", palette.RankR4)
	r.AddRole(role)
	m, err := r.AddMember("Nova", palette.RankR1)
	require.NoError(t, err)

	assert.Error(t, r.AssignRole(role, m))
	assert.Empty(t, role.MemberID)

	anyRole := palette.NewRole("Scout")
	r.AddRole(anyRole)
	assert.NoError(t, r.AssignRole(anyRole, m))
}

func TestRemoveMemberVacatesRoles(t *testing.T) {
	r := palette.NewRoster()
	role := palette.NewRole("Scout")
	r.AddRole(role)
	m, err := r.AddMember("Nova", palette.RankR1)
	require.NoError(t, err)
	require.NoError(t, r.AssignRole(role, m))

	assert.True(t, r.RemoveMember(m.MemberID))
	assert.Empty(t, role.MemberID)
	assert.False(t, r.RemoveMember(m.MemberID))
}

func TestStandardRolesCannotBeRemoved(t *testing.T) {
	r := palette.NewRoster()
	for _, role := range palette.DefaultRoles() {
		r.AddRole(role)
	}
	require.Len(t, r.Roles(), 4)

	assert.False(t, r.RemoveRole(r.Roles()[0].RoleID))
	assert.Len(t, r.Roles(), 4)

	custom := palette.NewRole("Scout")
	r.AddRole(custom)
	assert.True(t, r.RemoveRole(custom.RoleID))
	assert.Len(t, r.Roles(), 4)
}

func TestEligibleMembers(t *testing.T) {
	r := palette.NewRoster()
	officer, err := r.AddMember("Officer", palette.RankR4)
	require.NoError(t, err)
	_, err = r.AddMember("Recruit", palette.RankR1)
	require.NoError(t, err)

	warlord := palette.NewRole("Warlord", palette.RankR4)
	eligible := r.EligibleMembers(warlord)
	require.Len(t, eligible, 1)
	assert.Same(t, officer, eligible[0])

	scout := palette.NewRole("Scout")
	assert.Len(t, r.EligibleMembers(scout), 2)
}

func TestMemberByTemplate(t *testing.T) {
	r := palette.NewRoster()
	m, err := r.AddMember("Nova", palette.RankR1)
	require.NoError(t, err)

	assert.Same(t, m, r.MemberByTemplate(m.TemplateID()))
	assert.Nil(t, r.MemberByTemplate("member:unknown"))
}
