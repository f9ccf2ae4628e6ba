package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
)

type ApplicationRepository struct{ s *Store }

func (r *ApplicationRepository) Create(_ context.Context, a application.Application, n notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[a.JobID]; !ok {
		return job.ErrNotFound
	}
	key := pairKey{jobID: a.JobID, applicantID: a.ApplicantID}
	if _, dup := r.s.pairs[key]; dup {
		return application.ErrAlreadyApplied
	}
	a.Job, a.Applicant = nil, nil
	r.s.applications[a.ID] = a
	r.s.pairs[key] = a.ID
	r.s.notifications = append(r.s.notifications, n)
	return nil
}

func (r *ApplicationRepository) Exists(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.pairs[pairKey{jobID: jobID, applicantID: applicantID}]
	return ok, nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return r.withJob(a), nil
}

func (r *ApplicationRepository) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]application.Application, 0)
	for _, a := range r.s.applications {
		if a.ApplicantID == applicantID {
			out = append(out, r.withJob(a))
		}
	}
	newestFirst(out)
	return out, nil
}

func (r *ApplicationRepository) ListByJob(_ context.Context, jobID uuid.UUID, status application.Status) ([]application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]application.Application, 0)
	for _, a := range r.s.applications {
		if a.JobID != jobID || (status != "" && a.Status != status) {
			continue
		}
		u := copyUser(r.s.users[a.ApplicantID])
		a.Applicant = &application.Applicant{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Contact:    u.Profile.Contact,
			Experience: u.Profile.Experience,
			Education:  u.Profile.Education,
			Skills:     u.Profile.Skills,
		}
		out = append(out, a)
	}
	newestFirst(out)
	return out, nil
}

func (r *ApplicationRepository) Decide(_ context.Context, id uuid.UUID, status application.Status, n notification.Notification, at time.Time) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	if a.Status != application.StatusPending {
		return application.Application{}, application.ErrAlreadyDecided
	}
	a.Status = status
	a.UpdatedAt = at.UTC()
	r.s.applications[id] = a
	r.s.notifications = append(r.s.notifications, n)
	return r.withJob(a), nil
}

// withJob attaches the job without poster/applicants; caller holds the lock.
func (r *ApplicationRepository) withJob(a application.Application) application.Application {
	if j, ok := r.s.jobs[a.JobID]; ok {
		j = copyJob(j)
		a.Job = &j
	}
	return a
}

func newestFirst(apps []application.Application) {
	sort.Slice(apps, func(i, k int) bool {
		return newer(apps[i].CreatedAt, apps[k].CreatedAt, apps[i].ID, apps[k].ID)
	})
}
