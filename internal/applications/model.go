package applications

import "time"

// Status values for an application.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// MembershipApplication is a prospective member's submission.
type MembershipApplication struct {
	ID         int64     `json:"id" db:"id"`
	Reference  string    `json:"reference" db:"reference"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Major      string    `json:"major" db:"major"`
	Year       int       `json:"year" db:"year"`
	Motivation string    `json:"motivation" db:"motivation"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ProjectApplication is a member's request to join a project team.
type ProjectApplication struct {
	ID        int64     `json:"id" db:"id"`
	Reference string    `json:"reference" db:"reference"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Skills    string    `json:"skills" db:"skills"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidStatus reports whether the value is a known application status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
