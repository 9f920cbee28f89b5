package palette

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/plus3/gridmap/scene"
)

// Member is one alliance member on the roster. A member's map marker is a
// single-instance object template keyed by the member's identity, so a
// member can be on the map at most once and re-placing moves the marker.
type Member struct {
	Name     string
	MemberID string
	Rank     Rank
	Roles    []string
}

// NewMember creates an R1 member with a fresh id.
func NewMember(name string) *Member {
	return &Member{
		Name:     name,
		MemberID: uuid.New().String(),
		Rank:     RankR1,
	}
}

// TemplateID returns the object template id the member's marker uses.
func (m *Member) TemplateID() string {
	return "member:" + m.MemberID
}

// DisplayText returns the roster list line: rank, name and any roles.
func (m *Member) DisplayText() string {
	if len(m.Roles) == 0 {
		return fmt.Sprintf("%s %s", m.Rank, m.Name)
	}
	return fmt.Sprintf("%s %s - %s", m.Rank, m.Name, strings.Join(m.Roles, ", "))
}

// PlacementSpec builds the marker template for placing this member: a 3x3
// object filled with the member's rank color, limited to one instance.
func (m *Member) PlacementSpec(colors *RankColors) *scene.ObjectSpec {
	return &scene.ObjectSpec{
		Name:        m.Name,
		WidthCells:  3,
		HeightCells: 3,
		Fill:        colors.Color(m.Rank),
		Limit:       1,
		LimitKey:    m.TemplateID(),
		TemplateID:  m.TemplateID(),
	}
}

// Role is a named duty that can be held by at most one member, optionally
// restricted to a set of ranks. Standard roles are seeded on new maps and
// cannot be deleted.
type Role struct {
	Name         string
	RoleID       string
	MemberID     string // empty while unassigned
	AllowedRanks []Rank // nil means any rank
	Standard     bool
}

// NewRole creates an unassigned role with a fresh id.
func NewRole(name string, allowed ...Rank) *Role {
	return &Role{
		Name:         name,
		RoleID:       uuid.New().String(),
		AllowedRanks: allowed,
	}
}

// AllowsRank reports whether a member of the given rank may hold the role.
func (r *Role) AllowsRank(rank Rank) bool {
	if r.AllowedRanks == nil {
		return true
	}
	return slices.Contains(r.AllowedRanks, rank)
}

// Rank caps: one leader, ten officers.
const (
	MaxR5 = 1
	MaxR4 = 10
)

// ErrRankCapReached is returned when a rank change would exceed its cap.
type ErrRankCapReached struct {
	Rank Rank
	Max  int
}

func (e *ErrRankCapReached) Error() string {
	if e.Max == 1 {
		return fmt.Sprintf("only one member may hold rank %s at a time", e.Rank)
	}
	return fmt.Sprintf("only %d members may hold rank %s at a time", e.Max, e.Rank)
}

// Roster is the alliance member and role list. Rank caps are enforced here,
// independently of the map's placement limits: a member may hold R4 without
// being placed, and the R4/R5 marker templates stay usable for opponents'
// bases regardless of the roster.
type Roster struct {
	members []*Member
	roles   []*Role
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Members returns the members in roster order.
func (r *Roster) Members() []*Member { return r.members }

// Roles returns the roles in creation order.
func (r *Roster) Roles() []*Role { return r.roles }

// Member looks a member up by id.
func (r *Roster) Member(memberID string) *Member {
	for _, m := range r.members {
		if m.MemberID == memberID {
			return m
		}
	}
	return nil
}

// MemberByTemplate looks a member up by marker template id.
func (r *Roster) MemberByTemplate(templateID string) *Member {
	for _, m := range r.members {
		if m.TemplateID() == templateID {
			return m
		}
	}
	return nil
}

// CountRank returns how many members currently hold the rank.
func (r *Roster) CountRank(rank Rank) int {
	n := 0
	for _, m := range r.members {
		if m.Rank == rank {
			n++
		}
	}
	return n
}

// CanAssignRank checks the rank caps for assigning rank to member. A nil
// member means a new member is being created. The member's own current rank
// does not count against the cap.
func (r *Roster) CanAssignRank(rank Rank, member *Member) error {
	check := func(capRank Rank, max int) error {
		if rank != capRank {
			return nil
		}
		count := r.CountRank(capRank)
		if member != nil && member.Rank == capRank {
			count--
		}
		if count >= max {
			return &ErrRankCapReached{Rank: capRank, Max: max}
		}
		return nil
	}
	if err := check(RankR5, MaxR5); err != nil {
		return err
	}
	return check(RankR4, MaxR4)
}

// AddMember creates a member with the given starting rank, subject to the
// rank caps.
func (r *Roster) AddMember(name string, rank Rank) (*Member, error) {
	if err := r.CanAssignRank(rank, nil); err != nil {
		return nil, err
	}
	m := NewMember(name)
	m.Rank = rank
	r.members = append(r.members, m)
	return m, nil
}

// AddMemberUnchecked appends a member without rank cap checks. The load
// path uses it so an over-cap roster in a save file loads as-is instead of
// silently dropping members.
func (r *Roster) AddMemberUnchecked(m *Member) {
	r.members = append(r.members, m)
}

// RemoveMember deletes a member and unassigns them from every role. The
// caller removes the member's map marker through the registry.
func (r *Roster) RemoveMember(memberID string) bool {
	i := slices.IndexFunc(r.members, func(m *Member) bool { return m.MemberID == memberID })
	if i < 0 {
		return false
	}
	r.members = slices.Delete(r.members, i, i+1)
	for _, role := range r.roles {
		if role.MemberID == memberID {
			role.MemberID = ""
		}
	}
	return true
}

// SetRank changes a member's rank, subject to the rank caps. A role the
// member holds that does not allow the new rank is unassigned.
func (r *Roster) SetRank(member *Member, rank Rank) error {
	if member.Rank == rank {
		return nil
	}
	if err := r.CanAssignRank(rank, member); err != nil {
		return err
	}
	member.Rank = rank
	for _, role := range r.roles {
		if role.MemberID == member.MemberID && !role.AllowsRank(rank) {
			role.MemberID = ""
		}
	}
	return nil
}

// AddRole appends a role to the roster.
func (r *Roster) AddRole(role *Role) {
	r.roles = append(r.roles, role)
}

// RemoveRole deletes a non-standard role by id.
func (r *Roster) RemoveRole(roleID string) bool {
	i := slices.IndexFunc(r.roles, func(x *Role) bool { return x.RoleID == roleID && !x.Standard })
	if i < 0 {
		return false
	}
	r.roles = slices.Delete(r.roles, i, i+1)
	return true
}

// AssignRole gives a role to a member, replacing any previous holder. The
// member's rank must be allowed by the role.
func (r *Roster) AssignRole(role *Role, member *Member) error {
	if !role.AllowsRank(member.Rank) {
		return fmt.Errorf("role %s does not allow rank %s", role.Name, member.Rank)
	}
	role.MemberID = member.MemberID
	return nil
}

// UnassignRole clears a role's holder.
func (r *Roster) UnassignRole(role *Role) {
	role.MemberID = ""
}

// EligibleMembers returns the members whose rank a role allows.
func (r *Roster) EligibleMembers(role *Role) []*Member {
	var out []*Member
	for _, m := range r.members {
		if role.AllowsRank(m.Rank) {
			out = append(out, m)
		}
	}
	return out
}

// DefaultRoles seeds the standard R4 duty roles for a fresh map.
func DefaultRoles() []*Role {
	names := []string{"Warlord", "Recruiter", "Muse", "Butler"}
	roles := make([]*Role, 0, len(names))
	for _, name := range names {
		role := NewRole(name, RankR4)
		role.Standard = true
		roles = append(roles, role)
	}
	return roles
}
