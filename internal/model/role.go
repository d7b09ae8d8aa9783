package model

// Role is a player's secret assignment for a round
type Role string

const (
	RoleMajor Role = "major"
	RoleMinor Role = "minor"
	RoleGhost Role = "ghost"
	RoleClown Role = "clown"
)

// Roles lists every role in display order. Role quotas are consumed in
// this order when partitioning the shuffled player list.
var Roles = []Role{RoleMajor, RoleMinor, RoleGhost, RoleClown}

// Valid reports whether r is one of the four known roles
func (r Role) Valid() bool {
	switch r {
	case RoleMajor, RoleMinor, RoleGhost, RoleClown:
		return true
	}
	return false
}
