package projects

import "time"

type CreateProjectRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Summary string  `json:"summary" validate:"required"`
	RepoURL *string `json:"repo_url,omitempty" validate:"omitempty,url"`
}

type UpdateProjectRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Summary *string `json:"summary,omitempty"`
	RepoURL *string `json:"repo_url,omitempty" validate:"omitempty,url"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=active archived"`
}

type AddTeamMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,max=100"`
}

type CreateMilestoneRequest struct {
	Title string    `json:"title" validate:"required,max=200"`
	DueOn time.Time `json:"due_on" validate:"required"`
}
