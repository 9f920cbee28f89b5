package editorui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/gridmap/palette"
	"github.com/plus3/gridmap/scene"
)

// RosterPanel manages alliance members and duty roles. Selecting a member
// activates placement of their marker; rank changes go through the roster's
// caps and recolor any marker already on the map.
type RosterPanel struct {
	scene  *scene.Scene
	roster *palette.Roster
	colors *palette.RankColors
	host   *Host

	selectedMember string
	newMemberName  string
	newRoleName    string
}

func NewRosterPanel(s *scene.Scene, r *palette.Roster, colors *palette.RankColors, host *Host) *RosterPanel {
	return &RosterPanel{scene: s, roster: r, colors: colors, host: host}
}

func (rp *RosterPanel) Render() {
	if !imgui.BeginV("Alliance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.BeginTabBar("##alliance") {
		if imgui.BeginTabItem("Members") {
			rp.renderMembers()
			imgui.EndTabItem()
		}
		if imgui.BeginTabItem("Roles") {
			rp.renderRoles()
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.End()
}

func (rp *RosterPanel) renderMembers() {
	imgui.InputTextWithHint("##newmember", "New member name", &rp.newMemberName, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Add") {
		name := strings.TrimSpace(rp.newMemberName)
		if name != "" {
			if _, err := rp.roster.AddMember(name, palette.RankR1); err != nil {
				rp.host.status(err.Error())
			} else {
				rp.newMemberName = ""
				rp.host.autosave()
			}
		}
	}

	for _, m := range rp.roster.Members() {
		isSel := m.MemberID == rp.selectedMember
		placed := rp.scene.Registry().CountObjectsWithKey(m.TemplateID()) > 0
		label := m.DisplayText()
		if placed {
			label += " *"
		}
		if imgui.SelectableBoolV(label+"##"+m.MemberID, isSel, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			rp.selectedMember = m.MemberID
			rp.scene.ZoneDraw().SetEnabled(false)
			rp.scene.Placement().Activate(m.PlacementSpec(rp.colors))
		}
	}

	m := rp.roster.Member(rp.selectedMember)
	if m == nil {
		return
	}
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Rank of %s", m.Name))
	for _, rank := range palette.Ranks {
		imgui.SameLine()
		if imgui.RadioButtonBool(string(rank), m.Rank == rank) {
			rp.setRank(m, rank)
		}
	}
	if imgui.Button("Remove member") {
		rp.removeMember(m)
	}
}

func (rp *RosterPanel) setRank(m *palette.Member, rank palette.Rank) {
	if err := rp.roster.SetRank(m, rank); err != nil {
		rp.host.status(err.Error())
		return
	}
	// Recolor the placed marker, if any.
	for _, o := range rp.scene.Registry().ObjectsWithKey(m.TemplateID()) {
		o.Spec.Fill = rp.colors.Color(rank)
	}
	rp.host.autosave()
}

func (rp *RosterPanel) removeMember(m *palette.Member) {
	rp.scene.Registry().RemoveObjectsByTemplate(m.TemplateID())
	rp.scene.RefreshVisibility()
	rp.roster.RemoveMember(m.MemberID)
	rp.selectedMember = ""
	if active := rp.scene.Placement().Active(); active != nil && active.TemplateID == m.TemplateID() {
		rp.scene.Placement().Cancel()
	}
	rp.host.autosave()
}

func (rp *RosterPanel) renderRoles() {
	imgui.InputTextWithHint("##newrole", "New role name", &rp.newRoleName, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Add role") {
		name := strings.TrimSpace(rp.newRoleName)
		if name != "" {
			rp.roster.AddRole(palette.NewRole(name))
			rp.newRoleName = ""
			rp.host.autosave()
		}
	}

	for _, role := range rp.roster.Roles() {
		holder := "unassigned"
		if m := rp.roster.Member(role.MemberID); m != nil {
			holder = m.Name
		}
		if !imgui.TreeNodeStr(fmt.Sprintf("%s: %s##%s", role.Name, holder, role.RoleID)) {
			continue
		}
		for _, m := range rp.roster.EligibleMembers(role) {
			if imgui.SelectableBoolV(m.DisplayText()+"##assign"+m.MemberID, m.MemberID == role.MemberID, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				if err := rp.roster.AssignRole(role, m); err != nil {
					rp.host.status(err.Error())
				} else {
					rp.host.autosave()
				}
			}
		}
		if role.MemberID != "" && imgui.Button("Unassign##"+role.RoleID) {
			rp.roster.UnassignRole(role)
			rp.host.autosave()
		}
		if !role.Standard && imgui.Button("Delete role##"+role.RoleID) {
			rp.roster.RemoveRole(role.RoleID)
			rp.host.autosave()
			imgui.TreePop()
			break
		}
		imgui.TreePop()
	}
}
