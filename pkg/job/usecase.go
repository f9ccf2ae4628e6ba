package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/nlp"
)

// UseCase инкапсулирует работу с каталогом вакансий.
type UseCase interface {
	Create(ctx context.Context, who auth.Identity, in CreateInput) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f Filter) ([]Job, error)
}

type CreateInput struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Skills       []string
	Requirements []string
}

type service struct {
	repo Repository
	bus  events.Publisher
	now  func() time.Time
}

func NewService(repo Repository, bus events.Publisher) UseCase {
	return &service{repo: repo, bus: bus, now: time.Now}
}

func (s *service) Create(ctx context.Context, who auth.Identity, in CreateInput) (Job, error) {
	if err := who.Require(auth.RoleRecruiter); err != nil {
		return Job{}, err
	}
	j := Job{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(in.Title),
		Company:      strings.TrimSpace(in.Company),
		Location:     strings.TrimSpace(in.Location),
		Description:  strings.TrimSpace(in.Description),
		Skills:       nlp.CleanList(in.Skills),
		Requirements: nlp.CleanList(in.Requirements),
		PostedBy:     who.UserID,
		CreatedAt:    s.now().UTC(),
	}
	if j.Title == "" || j.Company == "" || j.Location == "" || j.Description == "" {
		return Job{}, ErrValidation("title, company, location and description are required")
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	s.bus.Publish(events.TopicJobCreated, events.JobCreated{JobID: j.ID, PostedBy: j.PostedBy, Title: j.Title})
	return j, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter) ([]Job, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if f.Empty() {
		return jobs, nil
	}
	return lo.Filter(jobs, func(j Job, _ int) bool {
		return nlp.ContainsFold(j.Title, f.Title) &&
			nlp.ContainsFold(j.Company, f.Company) &&
			nlp.ContainsFold(j.Location, f.Location) &&
			nlp.HasSkill(j.Skills, f.Skill)
	}), nil
}
