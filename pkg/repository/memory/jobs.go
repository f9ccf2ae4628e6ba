package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/job"
)

type JobRepository struct{ s *Store }

func (r *JobRepository) Create(_ context.Context, j job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j.Poster, j.Applicants = nil, nil
	r.s.jobs[j.ID] = copyJob(j)
	return nil
}

func (r *JobRepository) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return r.s.populateJob(j), nil
}

func (r *JobRepository) List(_ context.Context) ([]job.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]job.Job, 0, len(r.s.jobs))
	for _, j := range r.s.jobs {
		out = append(out, r.s.populateJob(j))
	}
	sort.Slice(out, func(i, k int) bool { return newer(out[i].CreatedAt, out[k].CreatedAt, out[i].ID, out[k].ID) })
	return out, nil
}
