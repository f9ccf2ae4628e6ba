package notification_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/job"
)

func jobFor(id, recruiterID uuid.UUID) job.Job {
	return job.Job{ID: id, Title: "Backend Engineer", Company: "Acme", Location: "Remote", Description: "...", PostedBy: recruiterID, CreatedAt: time.Now()}
}

func applicationFor(jobID, applicantID uuid.UUID) application.Application {
	now := time.Now()
	return application.Application{ID: uuid.New(), JobID: jobID, ApplicantID: applicantID, Status: application.StatusPending, CreatedAt: now, UpdatedAt: now}
}
