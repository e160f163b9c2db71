package projects

import "context"

// Service wraps project business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	return s.repo.Create(ctx, Project{
		Name:    req.Name,
		Summary: req.Summary,
		RepoURL: req.RepoURL,
		Status:  StatusActive,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.RepoURL != nil {
		updates["repo_url"] = *req.RepoURL
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, id)
	}
	return s.repo.Update(ctx, id, updates)
}

// Delete removes a project along with its team rows and milestones.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListTeam(ctx context.Context, projectID int64) ([]TeamMember, error) {
	return s.repo.ListTeam(ctx, projectID)
}

// AddTeamMember attaches a user to the project. The project must exist;
// the users row is enforced by the store's foreign key.
func (s *Service) AddTeamMember(ctx context.Context, projectID int64, req AddTeamMemberRequest) error {
	if _, err := s.repo.Get(ctx, projectID); err != nil {
		return err
	}
	return s.repo.AddTeamMember(ctx, TeamMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
	})
}

func (s *Service) RemoveTeamMember(ctx context.Context, projectID int64, userID string) error {
	return s.repo.RemoveTeamMember(ctx, projectID, userID)
}

func (s *Service) ListMilestones(ctx context.Context, projectID int64) ([]Milestone, error) {
	return s.repo.ListMilestones(ctx, projectID)
}

func (s *Service) CreateMilestone(ctx context.Context, projectID int64, req CreateMilestoneRequest) (*Milestone, error) {
	if _, err := s.repo.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.CreateMilestone(ctx, Milestone{
		ProjectID: projectID,
		Title:     req.Title,
		DueOn:     req.DueOn,
	})
}

func (s *Service) SetMilestoneDone(ctx context.Context, projectID, id int64, done bool) (*Milestone, error) {
	return s.repo.SetMilestoneDone(ctx, projectID, id, done)
}
