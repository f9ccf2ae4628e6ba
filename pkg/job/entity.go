package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Job — вакансия. После публикации не изменяется.
type Job struct {
	ID           uuid.UUID
	Title        string
	Company      string
	Location     string
	Description  string
	Skills       []string
	Requirements []string
	PostedBy     uuid.UUID
	CreatedAt    time.Time

	// Заполняются при чтении.
	Poster     *UserRef
	Applicants []UserRef
}

// UserRef — публичные данные пользователя, подставляемые в вакансию.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Filter — необязательные подстроки без учёта регистра; пустой фильтр отдаёт всё.
// Skill сравнивается с навыками вакансии целиком, с учётом синонимов (golang = go).
type Filter struct {
	Title    string
	Company  string
	Location string
	Skill    string
}

func (f Filter) Empty() bool {
	return f.Title == "" && f.Company == "" && f.Location == "" && f.Skill == ""
}

// Repository — порт для работы с вакансиями.
// GetByID и List возвращают вакансии с заполненными Poster и Applicants.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context) ([]Job, error)
}
