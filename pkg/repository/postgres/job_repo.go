package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/artem13815/jobboard/pkg/job"
)

// JobRepository хранит вакансии. Список откликнувшихся не хранится отдельно,
// а собирается из applications.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobSelect = `
	SELECT j.id, j.title, j.company, j.location, j.description, j.skills, j.requirements,
	       j.posted_by, j.created_at, u.name, u.email
	FROM jobs j
	JOIN users u ON u.id = j.posted_by`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO jobs (id, title, company, location, description, skills, requirements, posted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, j.ID, j.Title, j.Company, j.Location, j.Description,
		nonNil(j.Skills), nonNil(j.Requirements), j.PostedBy, j.CreatedAt)
	if err != nil {
		return pkgerrors.Wrap(err, "insert job")
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, pkgerrors.Wrap(err, "get job")
	}
	jobs := []job.Job{j}
	if err := r.attachApplicants(ctx, jobs); err != nil {
		return job.Job{}, err
	}
	return jobs[0], nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, jobSelect+` ORDER BY j.created_at DESC, j.id DESC`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list jobs")
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan job")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "list jobs")
	}
	if err := r.attachApplicants(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachApplicants подставляет откликнувшихся одним запросом на все вакансии.
func (r *JobRepository) attachApplicants(ctx context.Context, jobs []job.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := lo.Map(jobs, func(j job.Job, _ int) uuid.UUID { return j.ID })
	rows, err := r.pool.Query(ctx, `
		SELECT a.job_id, u.id, u.name, u.email
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.job_id = ANY($1)
		ORDER BY a.created_at, a.id
	`, ids)
	if err != nil {
		return pkgerrors.Wrap(err, "list job applicants")
	}
	defer rows.Close()

	byJob := make(map[uuid.UUID][]job.UserRef, len(jobs))
	for rows.Next() {
		var (
			jobID uuid.UUID
			ref   job.UserRef
		)
		if err := rows.Scan(&jobID, &ref.ID, &ref.Name, &ref.Email); err != nil {
			return pkgerrors.Wrap(err, "scan job applicant")
		}
		byJob[jobID] = append(byJob[jobID], ref)
	}
	if err := rows.Err(); err != nil {
		return pkgerrors.Wrap(err, "list job applicants")
	}
	for i := range jobs {
		jobs[i].Applicants = nonNil(byJob[jobs[i].ID])
	}
	return nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var (
		j         job.Job
		poster    job.UserRef
		createdAt time.Time
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.Skills, &j.Requirements,
		&j.PostedBy, &createdAt, &poster.Name, &poster.Email); err != nil {
		return job.Job{}, err
	}
	poster.ID = j.PostedBy
	j.Poster = &poster
	j.Skills = nonNil(j.Skills)
	j.Requirements = nonNil(j.Requirements)
	j.CreatedAt = createdAt.UTC()
	return j, nil
}
