package auth

import "time"

// Role is the stored access level for a club member.
type Role string

// Roles recognised in the users table.
const (
	RoleMember  Role = "member"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether the value is one of the stored roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleMember, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// UserRecord is the persisted account row keyed by the identity
// provider's id. Rows are created out of band (sign-up flow, seed
// script); an authorization check never creates one.
type UserRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Decision is the outcome of a policy evaluation.
type Decision int

const (
	// DecisionDeny rejects the request for an authenticated principal.
	DecisionDeny Decision = iota
	// DecisionAllow grants the request.
	DecisionAllow
)
