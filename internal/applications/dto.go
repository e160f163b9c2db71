package applications

type SubmitMembershipRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Major      string `json:"major" validate:"required,max=200"`
	Year       int    `json:"year" validate:"required,gte=1,lte=8"`
	Motivation string `json:"motivation" validate:"required"`
}

type SubmitProjectRequest struct {
	ProjectID int64  `json:"project_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Skills    string `json:"skills" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
