package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
)

type UseCase interface {
	Apply(ctx context.Context, who auth.Identity, jobID uuid.UUID, portfolioLink string) (Application, error)
	ListMine(ctx context.Context, who auth.Identity) ([]Application, error)
	ListForJob(ctx context.Context, who auth.Identity, jobID uuid.UUID, status string) ([]Application, error)
	SetStatus(ctx context.Context, who auth.Identity, id uuid.UUID, status string) (Application, error)
}

type service struct {
	repo  Repository
	jobs  job.Repository
	users auth.UserRepository
	bus   events.Publisher
	now   func() time.Time
}

func NewService(repo Repository, jobs job.Repository, users auth.UserRepository, bus events.Publisher) UseCase {
	return &service{repo: repo, jobs: jobs, users: users, bus: bus, now: time.Now}
}

func (s *service) Apply(ctx context.Context, who auth.Identity, jobID uuid.UUID, portfolioLink string) (Application, error) {
	if err := who.Require(auth.RoleJobSeeker); err != nil {
		return Application{}, err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	exists, err := s.repo.Exists(ctx, jobID, who.UserID)
	if err != nil {
		return Application{}, err
	}
	if exists {
		return Application{}, ErrAlreadyApplied
	}
	applicant, err := s.users.GetByID(ctx, who.UserID)
	if err != nil {
		return Application{}, err
	}

	now := s.now().UTC()
	a := Application{
		ID:            uuid.New(),
		JobID:         jobID,
		ApplicantID:   who.UserID,
		Status:        StatusPending,
		PortfolioLink: strings.TrimSpace(portfolioLink),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	n := notification.New(j.PostedBy, notification.TypeApplication,
		fmt.Sprintf("%s applied for your job: %q", applicant.Name, j.Title), now)

	// Unique (job_id, applicant_id) closes the window between Exists and Create.
	if err := s.repo.Create(ctx, a, n); err != nil {
		return Application{}, err
	}
	a.Job = &j
	s.bus.Publish(events.TopicApplicationSubmitted, events.ApplicationSubmitted{
		ApplicationID: a.ID,
		JobID:         jobID,
		ApplicantID:   who.UserID,
		RecruiterID:   j.PostedBy,
	})
	return a, nil
}

func (s *service) ListMine(ctx context.Context, who auth.Identity) ([]Application, error) {
	return s.repo.ListByApplicant(ctx, who.UserID)
}

// ListForJob is limited to the recruiter who posted the job. An unknown job is
// reported as forbidden so other recruiters cannot tell which job ids exist.
func (s *service) ListForJob(ctx context.Context, who auth.Identity, jobID uuid.UUID, status string) ([]Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, auth.ErrForbidden
		}
		return nil, err
	}
	if j.PostedBy != who.UserID {
		return nil, auth.ErrForbidden
	}

	var filter Status
	if strings.TrimSpace(status) != "" {
		st, ok := ParseStatus(status)
		if !ok {
			return nil, ErrValidation("status must be pending, approved or rejected")
		}
		filter = st
	}
	return s.repo.ListByJob(ctx, jobID, filter)
}

// SetStatus decides a pending application. Decisions are final: a second
// decision fails with ErrAlreadyDecided and sends no notification.
func (s *service) SetStatus(ctx context.Context, who auth.Identity, id uuid.UUID, status string) (Application, error) {
	decision, ok := ParseDecision(status)
	if !ok {
		return Application{}, ErrValidation("status must be approved or rejected")
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.Job == nil || a.Job.PostedBy != who.UserID {
		return Application{}, auth.ErrForbidden
	}
	if a.Status.Terminal() {
		return Application{}, ErrAlreadyDecided
	}

	kind := notification.TypeApproval
	if decision == StatusRejected {
		kind = notification.TypeRejection
	}
	now := s.now().UTC()
	n := notification.New(a.ApplicantID, kind,
		fmt.Sprintf("Your application for %q was %s", a.Job.Title, decision), now)

	updated, err := s.repo.Decide(ctx, id, decision, n, now)
	if err != nil {
		return Application{}, err
	}
	s.bus.Publish(events.TopicApplicationStatusChanged, events.ApplicationStatusChanged{
		ApplicationID: updated.ID,
		JobID:         updated.JobID,
		ApplicantID:   updated.ApplicantID,
		Status:        string(decision),
	})
	return updated, nil
}
