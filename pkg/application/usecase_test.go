package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
	"github.com/artem13815/jobboard/pkg/repository/memory"
)

type fixture struct {
	store     *memory.Store
	svc       application.UseCase
	notes     notification.UseCase
	recruiter auth.Identity
	seeker    auth.Identity
	job       job.Job
}

func addUser(t *testing.T, store *memory.Store, name string, role auth.Role) auth.Identity {
	t.Helper()
	u := auth.User{ID: uuid.New(), Name: name, Email: name + "@example.com", Role: role, CreatedAt: time.Now()}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return auth.Identity{UserID: u.ID, Role: role}
}

func newFixture(t *testing.T, bus events.Publisher) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		svc:       application.NewService(store.Applications(), store.Jobs(), store.Users(), bus),
		notes:     notification.NewService(store.Notifications()),
		recruiter: addUser(t, store, "rita", auth.RoleRecruiter),
		seeker:    addUser(t, store, "sam", auth.RoleJobSeeker),
	}
	jobs := job.NewService(store.Jobs(), events.Nop())
	j, err := jobs.Create(context.Background(), f.recruiter, job.CreateInput{
		Title: "Backend Engineer", Company: "Acme", Location: "Remote", Description: "...",
	})
	require.NoError(t, err)
	f.job = j
	return f
}

func TestApply_CreatesPendingApplicationAndNotifiesRecruiter(t *testing.T) {
	bus := EventBus.New()
	var submitted events.ApplicationSubmitted
	require.NoError(t, bus.Subscribe(events.TopicApplicationSubmitted, func(e events.ApplicationSubmitted) { submitted = e }))
	f := newFixture(t, bus)
	ctx := context.Background()

	a, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "http://x")
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, a.Status)
	assert.Equal(t, "http://x", a.PortfolioLink)
	assert.Equal(t, a.ID, submitted.ApplicationID)
	assert.Equal(t, f.recruiter.UserID, submitted.RecruiterID)

	notes, err := f.notes.List(ctx, f.recruiter)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, notification.TypeApplication, notes[0].Type)
	assert.Contains(t, notes[0].Message, "sam applied for your job")
	assert.False(t, notes[0].IsRead)

	j, err := f.store.Jobs().GetByID(ctx, f.job.ID)
	require.NoError(t, err)
	require.Len(t, j.Applicants, 1)
	assert.Equal(t, f.seeker.UserID, j.Applicants[0].ID)
}

func TestApply_SecondApplicationIsConflict(t *testing.T) {
	f := newFixture(t, events.Nop())
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "")
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.seeker, f.job.ID, "")
	assert.ErrorIs(t, err, application.ErrAlreadyApplied)

	mine, err := f.svc.ListMine(ctx, f.seeker)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

// racyRepo hides existing applications from the pre-check, as a concurrent
// request would see them before the first insert commits.
type racyRepo struct {
	*memory.ApplicationRepository
}

func (racyRepo) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return false, nil }

func TestApply_StoreConstraintCatchesRace(t *testing.T) {
	f := newFixture(t, events.Nop())
	svc := application.NewService(racyRepo{f.store.Applications()}, f.store.Jobs(), f.store.Users(), events.Nop())
	ctx := context.Background()

	_, err := svc.Apply(ctx, f.seeker, f.job.ID, "")
	require.NoError(t, err)
	_, err = svc.Apply(ctx, f.seeker, f.job.ID, "")
	assert.ErrorIs(t, err, application.ErrAlreadyApplied)

	notes, err := f.notes.List(ctx, f.recruiter)
	require.NoError(t, err)
	assert.Len(t, notes, 1, "failed insert must not leave a notification behind")
}

func TestApply_RecruiterForbidden(t *testing.T) {
	f := newFixture(t, events.Nop())
	_, err := f.svc.Apply(context.Background(), f.recruiter, f.job.ID, "")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.svc.Apply(context.Background(), f.recruiter, uuid.New(), "")
	assert.ErrorIs(t, err, auth.ErrForbidden, "role is checked before the job lookup")
}

func TestApply_UnknownJob(t *testing.T) {
	f := newFixture(t, events.Nop())
	_, err := f.svc.Apply(context.Background(), f.seeker, uuid.New(), "")
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestListForJob_OnlyOwningRecruiter(t *testing.T) {
	f := newFixture(t, events.Nop())
	ctx := context.Background()
	other := addUser(t, f.store, "otto", auth.RoleRecruiter)
	_, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "")
	require.NoError(t, err)

	_, err = f.svc.ListForJob(ctx, other, f.job.ID, "")
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = f.svc.ListForJob(ctx, other, f.job.ID, "bogus")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	apps, err := f.svc.ListForJob(ctx, f.recruiter, f.job.ID, "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.NotNil(t, apps[0].Applicant)
	assert.Equal(t, "sam", apps[0].Applicant.Name)

	approved, err := f.svc.ListForJob(ctx, f.recruiter, f.job.ID, "approved")
	require.NoError(t, err)
	assert.Empty(t, approved)

	_, err = f.svc.ListForJob(ctx, f.recruiter, f.job.ID, "archived")
	var verr application.ErrValidation
	assert.ErrorAs(t, err, &verr)

	_, err = f.svc.ListForJob(ctx, f.recruiter, uuid.New(), "")
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approve notifies applicant", func(t *testing.T) {
		f := newFixture(t, events.Nop())
		a, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "")
		require.NoError(t, err)

		updated, err := f.svc.SetStatus(ctx, f.recruiter, a.ID, "approved")
		require.NoError(t, err)
		assert.Equal(t, application.StatusApproved, updated.Status)

		notes, err := f.notes.List(ctx, f.seeker)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, notification.TypeApproval, notes[0].Type)
		assert.Contains(t, notes[0].Message, "approved")
	})

	t.Run("reject uses rejection type", func(t *testing.T) {
		f := newFixture(t, events.Nop())
		a, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "")
		require.NoError(t, err)

		_, err = f.svc.SetStatus(ctx, f.recruiter, a.ID, "rejected")
		require.NoError(t, err)
		notes, err := f.notes.List(ctx, f.seeker)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, notification.TypeRejection, notes[0].Type)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture(t, events.Nop())
		a, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "")
		require.NoError(t, err)
		for _, st := range []string{"pending", "accepted", ""} {
			_, err = f.svc.SetStatus(ctx, f.recruiter, a.ID, st)
			var verr application.ErrValidation
			assert.ErrorAs(t, err, &verr, st)
		}
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t, events.Nop())
		_, err := f.svc.SetStatus(ctx, f.recruiter, uuid.New(), "approved")
		assert.ErrorIs(t, err, application.ErrNotFound)
	})

	t.Run("other callers forbidden", func(t *testing.T) {
		f := newFixture(t, events.Nop())
		a, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "")
		require.NoError(t, err)
		other := addUser(t, f.store, "otto", auth.RoleRecruiter)

		_, err = f.svc.SetStatus(ctx, other, a.ID, "approved")
		assert.ErrorIs(t, err, auth.ErrForbidden)
		_, err = f.svc.SetStatus(ctx, f.seeker, a.ID, "approved")
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("decision is final", func(t *testing.T) {
		f := newFixture(t, events.Nop())
		a, err := f.svc.Apply(ctx, f.seeker, f.job.ID, "")
		require.NoError(t, err)
		_, err = f.svc.SetStatus(ctx, f.recruiter, a.ID, "approved")
		require.NoError(t, err)

		_, err = f.svc.SetStatus(ctx, f.recruiter, a.ID, "rejected")
		assert.ErrorIs(t, err, application.ErrAlreadyDecided)

		notes, err := f.notes.List(ctx, f.seeker)
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})
}

func TestParseDecision(t *testing.T) {
	st, ok := application.ParseDecision(" Approved ")
	assert.True(t, ok)
	assert.Equal(t, application.StatusApproved, st)
	_, ok = application.ParseDecision("pending")
	assert.False(t, ok)
}
