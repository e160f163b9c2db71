package applications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/clubhub/clubhub/jobs"
)

// Enqueuer is the slice of asynq.Client the service needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service wraps application workflow rules.
type Service struct {
	repo     Repository
	enqueuer Enqueuer
	logger   *slog.Logger
}

// NewService constructs a Service. enqueuer may be nil; approval
// notifications are then skipped.
func NewService(repo Repository, enqueuer Enqueuer, logger *slog.Logger) *Service {
	return &Service{repo: repo, enqueuer: enqueuer, logger: logger}
}

// SubmitMembership stores a new membership application in pending state
// and returns it with its public reference.
func (s *Service) SubmitMembership(ctx context.Context, req SubmitMembershipRequest) (*MembershipApplication, error) {
	return s.repo.CreateMembership(ctx, MembershipApplication{
		Reference:  uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Major:      req.Major,
		Year:       req.Year,
		Motivation: req.Motivation,
		Status:     StatusPending,
	})
}

// SubmitProject stores a new project application in pending state.
func (s *Service) SubmitProject(ctx context.Context, req SubmitProjectRequest) (*ProjectApplication, error) {
	return s.repo.CreateProject(ctx, ProjectApplication{
		Reference: uuid.NewString(),
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Email:     req.Email,
		Skills:    req.Skills,
		Status:    StatusPending,
	})
}

// ListMembership returns all membership applications, newest first.
func (s *Service) ListMembership(ctx context.Context) ([]MembershipApplication, error) {
	return s.repo.ListMembership(ctx)
}

// ListProject returns all project applications, newest first.
func (s *Service) ListProject(ctx context.Context) ([]ProjectApplication, error) {
	return s.repo.ListProject(ctx)
}

// UpdateMembershipStatus sets the status of exactly one membership
// application and returns the updated row. Approval queues a
// notification email; an enqueue failure is logged but does not undo
// the already-committed update.
func (s *Service) UpdateMembershipStatus(ctx context.Context, id int64, status string) (*MembershipApplication, error) {
	app, err := s.repo.UpdateMembershipStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if status == StatusApproved {
		s.notify(ctx, app.Email, "Welcome to the club",
			fmt.Sprintf("Hi %s, your membership application (%s) has been approved.", app.Name, app.Reference))
	}
	return app, nil
}

// UpdateProjectStatus sets the status of exactly one project
// application and returns the updated row.
func (s *Service) UpdateProjectStatus(ctx context.Context, id int64, status string) (*ProjectApplication, error) {
	app, err := s.repo.UpdateProjectStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if status == StatusApproved {
		s.notify(ctx, app.Email, "Project application approved",
			fmt.Sprintf("Hi %s, your project application (%s) has been approved.", app.Name, app.Reference))
	}
	return app, nil
}

func (s *Service) notify(ctx context.Context, to, subject, body string) {
	if s.enqueuer == nil {
		return
	}
	task, err := jobs.NewSendEmailTask(jobs.SendEmailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		s.logWarn("build email task", err)
		return
	}
	if _, err := s.enqueuer.EnqueueContext(ctx, task, asynq.Queue(jobs.QueueDefault)); err != nil {
		s.logWarn("enqueue approval email", err)
	}
}

func (s *Service) logWarn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.Any("error", err))
	}
}
