package clubapi

import (
	"slices"
)

// ManagerPositions are the officer positions that imply manager capability on
// their own, independent of the is_manager flag.
var ManagerPositions = []string{
	PositionPresident,
	PositionVicePresident,
	PositionActivityOfficer,
	PositionFinanceOfficer,
	PositionPROfficer,
}

// IsManager reports whether the membership confers manager capability: either
// the explicit flag is set or the member holds any officer position.
func IsManager(m Membership) bool {
	return m.IsManager || slices.Contains(ManagerPositions, m.Position)
}

// Role is the viewer's derived standing within a club.
type Role struct {
	Membership *Membership
	IsMember   bool
	IsManager  bool
	Status     string
}

// DeriveRole scans the club's membership collection for the given user.
// Anonymous viewers (userID == 0) are never considered members.
func DeriveRole(members []Membership, userID int) Role {
	if userID == 0 {
		return Role{}
	}
	for i := range members {
		m := members[i]
		if m.User != userID {
			continue
		}
		return Role{
			Membership: &m,
			IsMember:   m.Status == MembershipStatusAccepted || m.Status == MembershipStatusActive,
			IsManager:  IsManager(m),
			Status:     m.Status,
		}
	}
	return Role{}
}

// AcceptedMemberCount counts memberships that are accepted (or the legacy
// "active" spelling). Pending, rejected and left members do not count against
// the club's member limit.
func AcceptedMemberCount(members []Membership) int {
	var count int
	for _, m := range members {
		if m.Status == MembershipStatusAccepted || m.Status == MembershipStatusActive {
			count++
		}
	}
	return count
}

// FindParticipation returns the user's participation in an event, if any.
func FindParticipation(participants []Participation, userID int) *Participation {
	if userID == 0 {
		return nil
	}
	for i := range participants {
		if participants[i].User == userID {
			return &participants[i]
		}
	}
	return nil
}
