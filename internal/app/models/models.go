package models

// RoleType tells which profile payload a user carries
type RoleType string

const (
	RoleVolunteer   RoleType = "VOLUNTEER"
	RoleAssociation RoleType = "ASSOCIATION"
)

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	return r == RoleVolunteer || r == RoleAssociation
}
