// Package memory keeps every repository in process memory behind one mutex.
// It backs STORAGE_DRIVER=memory and the HTTP tests; data is lost on restart.
package memory

import (
	"bytes"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
)

type pairKey struct {
	jobID       uuid.UUID
	applicantID uuid.UUID
}

type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]auth.User
	emails        map[string]uuid.UUID
	jobs          map[uuid.UUID]job.Job
	applications  map[uuid.UUID]application.Application
	pairs         map[pairKey]uuid.UUID
	notifications []notification.Notification
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]auth.User),
		emails:       make(map[string]uuid.UUID),
		jobs:         make(map[uuid.UUID]job.Job),
		applications: make(map[uuid.UUID]application.Application),
		pairs:        make(map[pairKey]uuid.UUID),
	}
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s: s} }
func (s *Store) Jobs() *JobRepository                   { return &JobRepository{s: s} }
func (s *Store) Applications() *ApplicationRepository   { return &ApplicationRepository{s: s} }
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s: s} }

func (s *Store) userRef(id uuid.UUID) job.UserRef {
	u := s.users[id]
	return job.UserRef{ID: id, Name: u.Name, Email: u.Email}
}

// populateJob resolves poster and applicants; caller holds the lock.
func (s *Store) populateJob(j job.Job) job.Job {
	poster := s.userRef(j.PostedBy)
	j.Poster = &poster

	apps := make([]application.Application, 0)
	for _, a := range s.applications {
		if a.JobID == j.ID {
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, k int) bool {
		return newer(apps[k].CreatedAt, apps[i].CreatedAt, apps[k].ID, apps[i].ID)
	})
	j.Applicants = make([]job.UserRef, 0, len(apps))
	for _, a := range apps {
		j.Applicants = append(j.Applicants, s.userRef(a.ApplicantID))
	}
	return copyJob(j)
}

// Наружу уходят только копии: изменения в ответе не должны попадать в store.
func copyJob(j job.Job) job.Job {
	j.Skills = append([]string{}, j.Skills...)
	j.Requirements = append([]string{}, j.Requirements...)
	return j
}

func copyProfile(p auth.Profile) auth.Profile {
	p.Education = slices.Clone(p.Education)
	p.Skills = slices.Clone(p.Skills)
	if p.DOB != nil {
		dob := *p.DOB
		p.DOB = &dob
	}
	return p
}

func copyUser(u auth.User) auth.User {
	u.Profile = copyProfile(u.Profile)
	return u
}

// newer сортирует по убыванию created_at; при равном времени порядок задаёт id,
// как ORDER BY created_at DESC, id DESC в postgres.
func newer(at, bt time.Time, a, b uuid.UUID) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return bytes.Compare(a[:], b[:]) > 0
}
