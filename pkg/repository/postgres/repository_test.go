package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
	"github.com/artem13815/jobboard/pkg/repository/postgres"
	storage "github.com/artem13815/jobboard/pkg/storage/postgres"
)

// Интеграционные тесты запускаются только при заданном TEST_DATABASE_URL.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()
	pool, err := storage.Connect(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, storage.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE notifications, applications, jobs, users CASCADE`)
	require.NoError(t, err)
	return pool
}

func newUser(t *testing.T, repo *postgres.UserRepository, name string, role auth.Role) auth.User {
	t.Helper()
	u := auth.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@Example.com",
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)

	u := newUser(t, users, "sam", auth.RoleJobSeeker)

	err := users.Create(ctx, auth.User{ID: uuid.New(), Name: "x", Email: "SAM@example.com", PasswordHash: "h", Role: auth.RoleRecruiter, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)

	got, err := users.GetByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, auth.RoleJobSeeker, got.Role)
	assert.Empty(t, got.Profile.Skills)

	dob := time.Date(1995, 4, 1, 0, 0, 0, 0, time.UTC)
	updated, err := users.UpdateProfile(ctx, u.ID, auth.Profile{
		Contact:   "+100",
		DOB:       &dob,
		Education: []auth.Education{{Level: "BSc", InstituteName: "MIT"}},
		Skills:    []string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, updated.Profile.Skills)
	assert.Equal(t, "MIT", updated.Profile.Education[0].InstituteName)
	require.NotNil(t, updated.Profile.DOB)
	assert.True(t, dob.Equal(*updated.Profile.DOB))

	_, err = users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestApplicationLifecycle(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	jobs := postgres.NewJobRepository(pool)
	apps := postgres.NewApplicationRepository(pool)
	notes := postgres.NewNotificationRepository(pool)

	recruiter := newUser(t, users, "rita", auth.RoleRecruiter)
	seeker := newUser(t, users, "sam", auth.RoleJobSeeker)

	now := time.Now().UTC()
	j := job.Job{ID: uuid.New(), Title: "Go dev", Company: "Acme", Location: "Remote", Description: "d", PostedBy: recruiter.ID, CreatedAt: now}
	require.NoError(t, jobs.Create(ctx, j))

	a := application.Application{ID: uuid.New(), JobID: j.ID, ApplicantID: seeker.ID, Status: application.StatusPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, apps.Create(ctx, a, notification.New(recruiter.ID, notification.TypeApplication, "sam applied", now)))

	dup := a
	dup.ID = uuid.New()
	err := apps.Create(ctx, dup, notification.New(recruiter.ID, notification.TypeApplication, "again", now))
	assert.ErrorIs(t, err, application.ErrAlreadyApplied)

	got, err := jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	require.Len(t, got.Applicants, 1)
	assert.Equal(t, seeker.ID, got.Applicants[0].ID)
	assert.Equal(t, "rita", got.Poster.Name)

	pending, err := apps.ListByJob(ctx, j.ID, application.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "sam", pending[0].Applicant.Name)

	decided, err := apps.Decide(ctx, a.ID, application.StatusApproved,
		notification.New(seeker.ID, notification.TypeApproval, "approved", now), now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, application.StatusApproved, decided.Status)
	assert.Equal(t, "Go dev", decided.Job.Title)

	_, err = apps.Decide(ctx, a.ID, application.StatusRejected,
		notification.New(seeker.ID, notification.TypeRejection, "rejected", now), now)
	assert.ErrorIs(t, err, application.ErrAlreadyDecided)

	_, err = apps.Decide(ctx, uuid.New(), application.StatusRejected,
		notification.New(seeker.ID, notification.TypeRejection, "rejected", now), now)
	assert.ErrorIs(t, err, application.ErrNotFound)

	feed, err := notes.ListByUser(ctx, seeker.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, notification.TypeApproval, feed[0].Type)

	unread, err := notes.CountUnread(ctx, recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
	marked, err := notes.MarkAllRead(ctx, recruiter.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, marked)
}
