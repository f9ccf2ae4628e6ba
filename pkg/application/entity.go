package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied for this job")
	ErrAlreadyDecided = errors.New("application has already been decided")
)

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Status: pending -> approved | rejected. approved и rejected терминальные.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, true
	default:
		return "", false
	}
}

// ParseDecision accepts only the statuses a recruiter may set.
func ParseDecision(s string) (Status, bool) {
	st, ok := ParseStatus(s)
	if !ok || st == StatusPending {
		return "", false
	}
	return st, true
}

func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// Application связывает соискателя с вакансией. Не более одной на пару (job, applicant).
type Application struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	ApplicantID   uuid.UUID
	Status        Status
	PortfolioLink string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Job заполняется в GetByID и ListByApplicant, Applicant — в ListByJob.
	Job       *job.Job
	Applicant *Applicant
}

// Applicant — профиль соискателя, который видит рекрутер.
type Applicant struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Contact    string
	Experience string
	Education  []auth.Education
	Skills     []string
}

// Repository — порт хранения заявок.
// Create и Decide пишут заявку и уведомление в одной транзакции.
type Repository interface {
	// Create returns ErrAlreadyApplied when the (job, applicant) pair exists.
	Create(ctx context.Context, a Application, n notification.Notification) error
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error)
	// ListByJob filters by status unless it is empty.
	ListByJob(ctx context.Context, jobID uuid.UUID, status Status) ([]Application, error)
	// Decide moves a pending application to status; ErrAlreadyDecided otherwise.
	Decide(ctx context.Context, id uuid.UUID, status Status, n notification.Notification, at time.Time) (Application, error)
}
