package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
)

// ApplicationRepository хранит заявки. Уникальность пары (job, applicant)
// обеспечивает ограничение ux_applications_job_applicant.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationWithJob = `
	SELECT a.id, a.job_id, a.applicant_id, a.status, a.portfolio_link, a.created_at, a.updated_at,
	       j.title, j.company, j.location, j.description, j.skills, j.requirements, j.posted_by, j.created_at
	FROM applications a
	JOIN jobs j ON j.id = a.job_id`

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application, n notification.Notification) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO applications (id, job_id, applicant_id, status, portfolio_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.JobID, a.ApplicantID, string(a.Status), a.PortfolioLink, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		switch {
		case hasCode(err, codeUniqueViolation):
			return application.ErrAlreadyApplied
		case hasCode(err, codeForeignKeyViolation):
			return job.ErrNotFound
		}
		return pkgerrors.Wrap(err, "insert application")
	}
	if err := insertNotification(ctx, tx, n); err != nil {
		return err
	}
	return pkgerrors.Wrap(tx.Commit(ctx), "commit application")
}

func (r *ApplicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)
	`, jobID, applicantID).Scan(&exists)
	if err != nil {
		return false, pkgerrors.Wrap(err, "check application")
	}
	return exists, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplicationWithJob(r.pool.QueryRow(ctx, applicationWithJob+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, pkgerrors.Wrap(err, "get application")
	}
	return a, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, applicationWithJob+`
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC, a.id DESC`, applicantID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list applications")
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplicationWithJob(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan application")
		}
		out = append(out, a)
	}
	return out, pkgerrors.Wrap(rows.Err(), "list applications")
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, status application.Status) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.job_id, a.applicant_id, a.status, a.portfolio_link, a.created_at, a.updated_at,
		       u.name, u.email, u.contact, u.experience, u.education, u.skills
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.job_id = $1 AND ($2::text = '' OR a.status = $2)
		ORDER BY a.created_at DESC, a.id DESC
	`, jobID, string(status))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list job applications")
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var (
			a         application.Application
			st        string
			applicant application.Applicant
			education []auth.Education
		)
		if err := rows.Scan(&a.ID, &a.JobID, &a.ApplicantID, &st, &a.PortfolioLink, &a.CreatedAt, &a.UpdatedAt,
			&applicant.Name, &applicant.Email, &applicant.Contact, &applicant.Experience, &education, &applicant.Skills); err != nil {
			return nil, pkgerrors.Wrap(err, "scan job application")
		}
		a.Status = application.Status(st)
		a.CreatedAt, a.UpdatedAt = a.CreatedAt.UTC(), a.UpdatedAt.UTC()
		applicant.ID = a.ApplicantID
		applicant.Education = nonNil(education)
		applicant.Skills = nonNil(applicant.Skills)
		a.Applicant = &applicant
		out = append(out, a)
	}
	return out, pkgerrors.Wrap(rows.Err(), "list job applications")
}

// Decide переводит заявку из pending; условие в WHERE защищает от гонки двух решений.
func (r *ApplicationRepository) Decide(ctx context.Context, id uuid.UUID, status application.Status, n notification.Notification, at time.Time) (application.Application, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return application.Application{}, pkgerrors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE applications SET status = $2, updated_at = $3
		WHERE id = $1 AND status = 'pending'
	`, id, string(status), at.UTC())
	if err != nil {
		return application.Application{}, pkgerrors.Wrap(err, "update application")
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
			return application.Application{}, pkgerrors.Wrap(err, "check application")
		}
		if !exists {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, application.ErrAlreadyDecided
	}
	if err := insertNotification(ctx, tx, n); err != nil {
		return application.Application{}, err
	}
	a, err := scanApplicationWithJob(tx.QueryRow(ctx, applicationWithJob+` WHERE a.id = $1`, id))
	if err != nil {
		return application.Application{}, pkgerrors.Wrap(err, "reload application")
	}
	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, pkgerrors.Wrap(err, "commit decision")
	}
	return a, nil
}

func scanApplicationWithJob(row pgx.Row) (application.Application, error) {
	var (
		a  application.Application
		st string
		j  job.Job
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &st, &a.PortfolioLink, &a.CreatedAt, &a.UpdatedAt,
		&j.Title, &j.Company, &j.Location, &j.Description, &j.Skills, &j.Requirements, &j.PostedBy, &j.CreatedAt); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(st)
	a.CreatedAt, a.UpdatedAt = a.CreatedAt.UTC(), a.UpdatedAt.UTC()
	j.ID = a.JobID
	j.Skills = nonNil(j.Skills)
	j.Requirements = nonNil(j.Requirements)
	j.CreatedAt = j.CreatedAt.UTC()
	a.Job = &j
	return a, nil
}
