package services_test

import (
	"context"
	"testing"
	"time"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/email"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/internal/services"
	"iblaze_backend/internal/services/dto"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	repos    *repositories.Repositories
	mail     *email.RecordingProvider
	tokens   *auth.TokenManager
	services *services.ServiceContainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	templates, err := email.NewDefaultTemplateManager()
	require.NoError(t, err)

	repos := repositories.NewMemoryRepositories()
	mail := email.NewRecordingProvider()
	notifier := services.NewNotificationService(mail, templates)

	return &fixture{
		repos:    repos,
		mail:     mail,
		tokens:   tokens,
		services: services.NewServiceContainer(repos, tokens, notifier),
	}
}

// user stores a user directly, bypassing registration rules.
func (f *fixture) user(t *testing.T, email string, role models.UserRole, mutate ...func(*models.User)) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	u := &models.User{Name: email, Email: email, PasswordHash: hash, Role: role}
	u.ApplyRoleDefaults()
	for _, m := range mutate {
		m(u)
	}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return u
}

func approved(u *models.User) { u.IsApproved = true }
func verified(u *models.User) { u.IsVerified = true }

func (f *fixture) idea(t *testing.T, creator *models.User, status models.ModerationStatus) *models.Idea {
	t.Helper()
	ctx := context.Background()
	resp, err := f.services.IdeaService.Create(ctx, creator, &dto.CreateIdeaRequest{
		Title:           "Solar kiosk",
		PublicSummary:   "Cheap solar charging",
		FullDescription: "Secret sauce",
		Category:        "energy",
		Industry:        "cleantech",
	})
	require.NoError(t, err)
	if status != models.ModerationPending {
		require.NoError(t, f.repos.Ideas.Update(ctx, resp.ID, repositories.IdeaPatch{Status: &status}))
	}
	idea, err := f.repos.Ideas.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	return idea
}

func (f *fixture) job(t *testing.T, employer *models.User, status models.ModerationStatus) *models.Job {
	t.Helper()
	ctx := context.Background()
	resp, err := f.services.JobService.Create(ctx, employer, &dto.CreateJobRequest{
		Title:       "Backend intern",
		Description: "Write Go",
		JobType:     "internship",
		Location:    "Remote",
		WorkMode:    "remote",
		Stipend:     "1000",
	})
	require.NoError(t, err)
	if status != models.ModerationPending {
		require.NoError(t, f.repos.Jobs.Update(ctx, resp.ID, repositories.JobPatch{Status: &status}))
	}
	job, err := f.repos.Jobs.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	return job
}
