package projects

import "time"

// Status values for a project.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Project is a club project row.
type Project struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Summary   string    `json:"summary" db:"summary"`
	RepoURL   *string   `json:"repo_url,omitempty" db:"repo_url"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TeamMember ties a user to a project.
type TeamMember struct {
	ProjectID int64     `json:"project_id" db:"project_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Milestone is a dated goal inside a project.
type Milestone struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	Title     string    `json:"title" db:"title"`
	DueOn     time.Time `json:"due_on" db:"due_on"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
