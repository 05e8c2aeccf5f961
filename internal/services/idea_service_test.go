package services_test

import (
	"context"
	"testing"

	"iblaze_backend/internal/models"
	"iblaze_backend/internal/services/dto"
	"iblaze_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, "s@example.com", models.UserRoleStudent)
	investor := f.user(t, "i@example.com", models.UserRoleInvestor, approved)

	resp, err := f.services.IdeaService.Create(ctx, student, &dto.CreateIdeaRequest{
		Title: "T", PublicSummary: "P", FullDescription: "F", Category: "C", Industry: "I",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ModerationPending, resp.Status)
	assert.Equal(t, models.IdeaStageConcept, resp.Stage)
	require.NotNil(t, resp.Creator)
	assert.Equal(t, models.UserRoleStudent, resp.Creator.Role)

	_, err = f.services.IdeaService.Create(ctx, investor, &dto.CreateIdeaRequest{Title: "T"})
	assert.ErrorIs(t, err, apperrors.ErrOnlyStudentsCreateIdeas)
}

func TestIdeaListApproved_PublicProjectionOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.user(t, "s@example.com", models.UserRoleStudent)
	f.idea(t, student, models.ModerationPending)
	visible := f.idea(t, student, models.ModerationApproved)
	f.idea(t, student, models.ModerationRejected)

	list, err := f.services.IdeaService.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, visible.ID, list[0].ID)
	assert.Equal(t, visible.PublicSummary, list[0].PublicSummary)
}

func TestIdeaGetByID_Projections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator@example.com", models.UserRoleStudent)
	other := f.user(t, "other@example.com", models.UserRoleStudent)
	admin := f.user(t, "admin@example.com", models.UserRoleAdmin)
	investor := f.user(t, "inv@example.com", models.UserRoleInvestor, approved)

	idea := f.idea(t, creator, models.ModerationApproved)

	got, err := f.services.IdeaService.GetByID(ctx, other, idea.ID)
	require.NoError(t, err)
	public, ok := got.(*dto.IdeaPublicResponse)
	require.True(t, ok, "strangers get the public projection")
	assert.Equal(t, idea.Title, public.Title)

	for _, u := range []*models.User{creator, admin} {
		got, err := f.services.IdeaService.GetByID(ctx, u, idea.ID)
		require.NoError(t, err)
		full, ok := got.(*dto.IdeaResponse)
		require.True(t, ok)
		assert.Equal(t, "Secret sauce", full.FullDescription)
	}

	// An investor sees the summary until the creator approves their request.
	got, err = f.services.IdeaService.GetByID(ctx, investor, idea.ID)
	require.NoError(t, err)
	assert.IsType(t, &dto.IdeaPublicResponse{}, got)

	req, err := f.services.IdeaService.RequestAccess(ctx, investor, idea.ID)
	require.NoError(t, err)
	_, err = f.services.IdeaService.DecideAccessRequest(ctx, creator, idea.ID, req.ID, "approved")
	require.NoError(t, err)

	got, err = f.services.IdeaService.GetByID(ctx, investor, idea.ID)
	require.NoError(t, err)
	full, ok := got.(*dto.IdeaResponse)
	require.True(t, ok)
	assert.Equal(t, "Secret sauce", full.FullDescription)
}

func TestIdeaGetByID_UnapprovedIsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator@example.com", models.UserRoleStudent)
	other := f.user(t, "other@example.com", models.UserRoleStudent)
	admin := f.user(t, "admin@example.com", models.UserRoleAdmin)

	for _, status := range []models.ModerationStatus{models.ModerationPending, models.ModerationRejected} {
		idea := f.idea(t, creator, status)

		_, err := f.services.IdeaService.GetByID(ctx, other, idea.ID)
		assert.ErrorIs(t, err, apperrors.ErrIdeaAccessDenied, string(status))

		_, err = f.services.IdeaService.GetByID(ctx, creator, idea.ID)
		assert.NoError(t, err)

		_, err = f.services.IdeaService.GetByID(ctx, admin, idea.ID)
		assert.NoError(t, err)
	}

	_, err := f.services.IdeaService.GetByID(ctx, other, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrIdeaNotFound)
}

func TestIdeaGetByID_ViewCounting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator@example.com", models.UserRoleStudent)
	a := f.user(t, "a@example.com", models.UserRoleStudent)
	b := f.user(t, "b@example.com", models.UserRoleInvestor)
	idea := f.idea(t, creator, models.ModerationApproved)

	views := func() int {
		got, err := f.services.IdeaService.GetByID(ctx, creator, idea.ID)
		require.NoError(t, err)
		return got.(*dto.IdeaResponse).Views
	}

	assert.Equal(t, 0, views(), "the creator's own visits are not counted")

	for i := 0; i < 3; i++ {
		_, err := f.services.IdeaService.GetByID(ctx, a, idea.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, views())

	got, err := f.services.IdeaService.GetByID(ctx, b, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.(*dto.IdeaPublicResponse).Views, "the first visit is already counted in the response")
	assert.Equal(t, 2, views())
}

func TestIdeaUpdateDelete_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator@example.com", models.UserRoleStudent)
	other := f.user(t, "other@example.com", models.UserRoleStudent)
	admin := f.user(t, "admin@example.com", models.UserRoleAdmin)
	idea := f.idea(t, creator, models.ModerationApproved)

	title := "Renamed"
	_, err := f.services.IdeaService.Update(ctx, other, idea.ID, &dto.UpdateIdeaRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrIdeaUpdateForbidden)

	stage := "mvp"
	resp, err := f.services.IdeaService.Update(ctx, creator, idea.ID, &dto.UpdateIdeaRequest{Title: &title, Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, models.IdeaStageMVP, resp.Stage)
	assert.Equal(t, models.ModerationApproved, resp.Status, "status is never touched by update")
	assert.Equal(t, idea.PublicSummary, resp.PublicSummary)

	assert.ErrorIs(t, f.services.IdeaService.Delete(ctx, other, idea.ID), apperrors.ErrIdeaDeleteForbidden)
	require.NoError(t, f.services.IdeaService.Delete(ctx, admin, idea.ID))
	assert.ErrorIs(t, f.services.IdeaService.Delete(ctx, admin, idea.ID), apperrors.ErrIdeaNotFound)
}

func TestRequestAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator@example.com", models.UserRoleStudent)
	pending := f.user(t, "pending@example.com", models.UserRoleInvestor)
	investor := f.user(t, "inv@example.com", models.UserRoleInvestor, approved)
	idea := f.idea(t, creator, models.ModerationApproved)

	_, err := f.services.IdeaService.RequestAccess(ctx, creator, idea.ID)
	assert.ErrorIs(t, err, apperrors.ErrOnlyInvestorsRequestAccess)

	_, err = f.services.IdeaService.RequestAccess(ctx, pending, idea.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvestorPendingApproval)

	_, err = f.services.IdeaService.RequestAccess(ctx, investor, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrIdeaNotFound)

	req, err := f.services.IdeaService.RequestAccess(ctx, investor, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessRequestPending, req.Status)
	require.NotNil(t, req.Investor)
	assert.Equal(t, investor.ID, req.Investor.ID)

	_, err = f.services.IdeaService.RequestAccess(ctx, investor, idea.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccessRequestExists)

	loaded, err := f.repos.Ideas.FindByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.AccessRequests, 1)
}

func TestDecideAccessRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator@example.com", models.UserRoleStudent)
	stranger := f.user(t, "stranger@example.com", models.UserRoleStudent)
	investor := f.user(t, "inv@example.com", models.UserRoleInvestor, approved)
	idea := f.idea(t, creator, models.ModerationApproved)

	req, err := f.services.IdeaService.RequestAccess(ctx, investor, idea.ID)
	require.NoError(t, err)

	_, err = f.services.IdeaService.DecideAccessRequest(ctx, creator, idea.ID, req.ID, "pending")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAccessRequestStatus)

	_, err = f.services.IdeaService.DecideAccessRequest(ctx, stranger, idea.ID, req.ID, "approved")
	assert.ErrorIs(t, err, apperrors.ErrAccessRequestUpdateForbidden)

	_, err = f.services.IdeaService.DecideAccessRequest(ctx, creator, idea.ID, "missing", "approved")
	assert.ErrorIs(t, err, apperrors.ErrAccessRequestNotFound)

	resp, err := f.services.IdeaService.DecideAccessRequest(ctx, creator, idea.ID, req.ID, "approved")
	require.NoError(t, err)
	require.Len(t, resp.ApprovedInvestors, 1)
	assert.Equal(t, investor.ID, resp.ApprovedInvestors[0].ID)
	require.Len(t, resp.AccessRequests, 1)
	assert.Equal(t, models.AccessRequestApproved, resp.AccessRequests[0].Status)

	mails := f.mail.SentTo(investor.Email)
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].HTMLBody, idea.Title)

	// Already approved investors cannot ask again.
	_, err = f.services.IdeaService.RequestAccess(ctx, investor, idea.ID)
	assert.Error(t, err)
}

func TestDecideAccessRequest_OnlyPendingCanBeDecided(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
	}{
		{name: "approved then rejected", first: "approved", second: "rejected"},
		{name: "approved twice", first: "approved", second: "approved"},
		{name: "rejected then approved", first: "rejected", second: "approved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			creator := f.user(t, "creator@example.com", models.UserRoleStudent)
			investor := f.user(t, "inv@example.com", models.UserRoleInvestor, approved)
			idea := f.idea(t, creator, models.ModerationApproved)

			req, err := f.services.IdeaService.RequestAccess(ctx, investor, idea.ID)
			require.NoError(t, err)

			_, err = f.services.IdeaService.DecideAccessRequest(ctx, creator, idea.ID, req.ID, tt.first)
			require.NoError(t, err)

			_, err = f.services.IdeaService.DecideAccessRequest(ctx, creator, idea.ID, req.ID, tt.second)
			assert.ErrorIs(t, err, apperrors.ErrAccessRequestAlreadyDecided)

			res, err := f.services.IdeaService.GetByID(ctx, creator, idea.ID)
			require.NoError(t, err)
			got, ok := res.(*dto.IdeaResponse)
			require.True(t, ok)
			require.Len(t, got.AccessRequests, 1)
			assert.Equal(t, models.AccessRequestStatus(tt.first), got.AccessRequests[0].Status)
			if tt.first == "approved" {
				assert.Len(t, got.ApprovedInvestors, 1)
			} else {
				assert.Empty(t, got.ApprovedInvestors)
			}
			assert.Len(t, f.mail.SentTo(investor.Email), 1)
		})
	}
}

func TestDecideAccessRequest_NotifierFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creator := f.user(t, "creator@example.com", models.UserRoleStudent)
	investor := f.user(t, "inv@example.com", models.UserRoleInvestor, approved)
	idea := f.idea(t, creator, models.ModerationApproved)

	req, err := f.services.IdeaService.RequestAccess(ctx, investor, idea.ID)
	require.NoError(t, err)

	f.mail.FailWith(assert.AnError)
	_, err = f.services.IdeaService.DecideAccessRequest(ctx, creator, idea.ID, req.ID, "rejected")
	assert.NoError(t, err)
}
