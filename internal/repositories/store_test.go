package repositories_test

import (
	"context"
	"testing"
	"time"

	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachStore runs fn once per storage driver. The postgres run is skipped
// unless TEST_DATABASE_URL is set.
func forEachStore(t *testing.T, fn func(t *testing.T, repos *repositories.Repositories)) {
	for _, store := range helpers.Stores {
		t.Run(store, func(t *testing.T) {
			fn(t, helpers.OpenTestRepositories(t, store))
		})
	}
}

func newUser(t *testing.T, repos *repositories.Repositories, email string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Name: "User " + email, Email: email, PasswordHash: "hash", Role: role}
	u.ApplyRoleDefaults()
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}

func TestUsers_EmailIsUniqueAndNormalized(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()

		u := newUser(t, repos, "  Alice@Example.com ", models.UserRoleStudent)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.NotEmpty(t, u.ID)

		err := repos.Users.Create(ctx, &models.User{Email: "ALICE@example.com", Role: models.UserRoleInvestor})
		assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

		found, err := repos.Users.FindByEmail(ctx, "alice@EXAMPLE.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)

		_, err = repos.Users.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})
}

func TestUsers_SuspendClearsRefreshToken(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		u := newUser(t, repos, "bob@example.com", models.UserRoleInvestor)

		token := "refresh-1"
		require.NoError(t, repos.Users.SetRefreshToken(ctx, u.ID, &token))

		found, err := repos.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, found.RefreshToken)
		assert.Equal(t, "refresh-1", *found.RefreshToken)

		suspended := models.UserStatusSuspended
		updated, err := repos.Users.UpdateStanding(ctx, u.ID, repositories.UserStandingPatch{Status: &suspended})
		require.NoError(t, err)
		assert.True(t, updated.IsSuspended())
		assert.Nil(t, updated.RefreshToken)
	})
}

func TestUsers_FindWithFilterNewestFirst(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		first := newUser(t, repos, "a@example.com", models.UserRoleInvestor)
		newUser(t, repos, "b@example.com", models.UserRoleStudent)
		third := newUser(t, repos, "c@example.com", models.UserRoleInvestor)

		all, err := repos.Users.FindWithFilter(ctx, repositories.UserFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		investors, err := repos.Users.FindWithFilter(ctx, repositories.UserFilter{Role: models.UserRoleInvestor})
		require.NoError(t, err)
		require.Len(t, investors, 2)
		assert.Equal(t, third.ID, investors[0].ID)
		assert.Equal(t, first.ID, investors[1].ID)
	})
}

func TestIdeas_AccessRequestLifecycle(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		student := newUser(t, repos, "s@example.com", models.UserRoleStudent)
		investor := newUser(t, repos, "i@example.com", models.UserRoleInvestor)

		idea := &models.Idea{Title: "T", PublicSummary: "P", FullDescription: "F", CreatorID: student.ID, Category: "C", Industry: "I"}
		require.NoError(t, repos.Ideas.Create(ctx, idea))
		assert.Equal(t, models.ModerationPending, idea.Status)
		assert.Equal(t, models.IdeaStageConcept, idea.Stage)

		req := &models.AccessRequest{IdeaID: idea.ID, InvestorID: investor.ID}
		require.NoError(t, repos.Ideas.AddAccessRequest(ctx, req))
		err := repos.Ideas.AddAccessRequest(ctx, &models.AccessRequest{IdeaID: idea.ID, InvestorID: investor.ID})
		assert.ErrorIs(t, err, repositories.ErrAccessRequestExists)

		err = repos.Ideas.DecideAccessRequest(ctx, idea.ID, "missing", models.AccessRequestApproved)
		assert.ErrorIs(t, err, repositories.ErrAccessRequestNotFound)

		require.NoError(t, repos.Ideas.DecideAccessRequest(ctx, idea.ID, req.ID, models.AccessRequestApproved))
		err = repos.Ideas.DecideAccessRequest(ctx, idea.ID, req.ID, models.AccessRequestRejected)
		assert.ErrorIs(t, err, repositories.ErrAccessRequestDecided)
		err = repos.Ideas.DecideAccessRequest(ctx, idea.ID, req.ID, models.AccessRequestApproved)
		assert.ErrorIs(t, err, repositories.ErrAccessRequestDecided)

		loaded, err := repos.Ideas.FindByID(ctx, idea.ID)
		require.NoError(t, err)
		require.Len(t, loaded.AccessRequests, 1)
		assert.Equal(t, models.AccessRequestApproved, loaded.AccessRequests[0].Status)
		require.NotNil(t, loaded.AccessRequests[0].Investor)
		assert.Equal(t, investor.Email, loaded.AccessRequests[0].Investor.Email)
		require.Len(t, loaded.ApprovedInvestors, 1)
		assert.True(t, loaded.HasApprovedInvestor(investor.ID))
		require.NotNil(t, loaded.Creator)
		assert.Equal(t, student.ID, loaded.Creator.ID)
	})
}

func TestIdeas_AddViewOnce(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		student := newUser(t, repos, "s@example.com", models.UserRoleStudent)
		viewer := newUser(t, repos, "v@example.com", models.UserRoleStudent)
		idea := &models.Idea{Title: "T", CreatorID: student.ID}
		require.NoError(t, repos.Ideas.Create(ctx, idea))

		added, err := repos.Ideas.AddView(ctx, idea.ID, viewer.ID, time.Now())
		require.NoError(t, err)
		assert.True(t, added)

		added, err = repos.Ideas.AddView(ctx, idea.ID, viewer.ID, time.Now())
		require.NoError(t, err)
		assert.False(t, added)

		loaded, err := repos.Ideas.FindByID(ctx, idea.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Views, 1)
	})
}

func TestIdeas_DeleteRemovesChildren(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		student := newUser(t, repos, "s@example.com", models.UserRoleStudent)
		investor := newUser(t, repos, "i@example.com", models.UserRoleInvestor)
		idea := &models.Idea{Title: "T", CreatorID: student.ID}
		require.NoError(t, repos.Ideas.Create(ctx, idea))
		require.NoError(t, repos.Ideas.AddAccessRequest(ctx, &models.AccessRequest{IdeaID: idea.ID, InvestorID: investor.ID}))

		require.NoError(t, repos.Ideas.Delete(ctx, idea.ID))
		_, err := repos.Ideas.FindByID(ctx, idea.ID)
		assert.ErrorIs(t, err, repositories.ErrIdeaNotFound)
		assert.ErrorIs(t, repos.Ideas.Delete(ctx, idea.ID), repositories.ErrIdeaNotFound)

		// The pair is free again once the idea is gone.
		again := &models.Idea{Title: "T2", CreatorID: student.ID}
		require.NoError(t, repos.Ideas.Create(ctx, again))
		assert.NoError(t, repos.Ideas.AddAccessRequest(ctx, &models.AccessRequest{IdeaID: again.ID, InvestorID: investor.ID}))
	})
}

func TestIdeas_FindByStatusNewestFirst(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		student := newUser(t, repos, "s@example.com", models.UserRoleStudent)

		older := &models.Idea{Title: "old", CreatorID: student.ID}
		newer := &models.Idea{Title: "new", CreatorID: student.ID}
		pending := &models.Idea{Title: "pending", CreatorID: student.ID}
		for _, idea := range []*models.Idea{older, newer, pending} {
			require.NoError(t, repos.Ideas.Create(ctx, idea))
		}
		approved := models.ModerationApproved
		require.NoError(t, repos.Ideas.Update(ctx, older.ID, repositories.IdeaPatch{Status: &approved}))
		require.NoError(t, repos.Ideas.Update(ctx, newer.ID, repositories.IdeaPatch{Status: &approved}))

		list, err := repos.Ideas.FindByStatus(ctx, models.ModerationApproved)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "new", list[0].Title)
		assert.Equal(t, "old", list[1].Title)
	})
}

func TestJobs_DeleteCascadesApplications(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		employer := newUser(t, repos, "e@example.com", models.UserRoleEmployer)
		student := newUser(t, repos, "s@example.com", models.UserRoleStudent)

		job := &models.Job{Title: "Intern", EmployerID: employer.ID, SkillsRequired: []string{"go"}}
		require.NoError(t, repos.Jobs.Create(ctx, job))

		app := &models.Application{JobID: job.ID, ApplicantID: student.ID, Resume: "cv"}
		require.NoError(t, repos.Applications.Create(ctx, app))
		assert.Equal(t, models.ApplicationStatusPending, app.Status)
		assert.ErrorIs(t, repos.Applications.Create(ctx, &models.Application{JobID: job.ID, ApplicantID: student.ID}), repositories.ErrApplicationExists)

		exists, err := repos.Applications.Exists(ctx, job.ID, student.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repos.Jobs.Delete(ctx, job.ID))
		_, err = repos.Applications.FindByID(ctx, app.ID)
		assert.ErrorIs(t, err, repositories.ErrApplicationNotFound)
	})
}

func TestApplications_UpdateStatusRecordsReviewer(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		employer := newUser(t, repos, "e@example.com", models.UserRoleEmployer)
		student := newUser(t, repos, "s@example.com", models.UserRoleStudent)
		job := &models.Job{Title: "Intern", EmployerID: employer.ID}
		require.NoError(t, repos.Jobs.Create(ctx, job))
		app := &models.Application{JobID: job.ID, ApplicantID: student.ID, Resume: "cv"}
		require.NoError(t, repos.Applications.Create(ctx, app))

		require.NoError(t, repos.Applications.UpdateStatus(ctx, app.ID, models.ApplicationStatusAccepted, employer.ID))

		list, err := repos.Applications.FindByJob(ctx, job.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, models.ApplicationStatusAccepted, list[0].Status)
		require.NotNil(t, list[0].ReviewedBy)
		assert.Equal(t, employer.ID, list[0].ReviewedBy.ID)
		require.NotNil(t, list[0].Applicant)
		assert.Equal(t, student.Email, list[0].Applicant.Email)
	})
}

func TestAnalytics_Counts(t *testing.T) {
	forEachStore(t, func(t *testing.T, repos *repositories.Repositories) {
		ctx := context.Background()
		newUser(t, repos, "a@example.com", models.UserRoleStudent)
		newUser(t, repos, "b@example.com", models.UserRoleStudent)
		employer := newUser(t, repos, "c@example.com", models.UserRoleEmployer)
		require.NoError(t, repos.Jobs.Create(ctx, &models.Job{Title: "J", EmployerID: employer.ID}))

		totals, err := repos.Analytics.Totals(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), totals.Users)
		assert.Equal(t, int64(1), totals.Jobs)
		assert.Equal(t, int64(0), totals.Ideas)

		byRole, err := repos.Analytics.UsersByRole(ctx)
		require.NoError(t, err)
		assert.Equal(t, []repositories.GroupCount{{Key: "employer", Count: 1}, {Key: "student", Count: 2}}, byRole)

		byStatus, err := repos.Analytics.JobsByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, []repositories.GroupCount{{Key: "pending", Count: 1}}, byStatus)
	})
}
