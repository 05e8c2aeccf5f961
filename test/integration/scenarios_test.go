package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/internal/services/dto"
	"iblaze_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_StudentIdeaModeration(t *testing.T) {
	t.Parallel()
	forEachStore(t, func(t *testing.T, ts *helpers.TestServer) {
		adminToken := newAdmin(t, ts)
		studentToken, _ := register(t, ts, "student")
		otherToken, _ := helpers.CreateAndLoginUser(t, ts, models.UserRoleStudent)

		res, body := ts.SendRequest(t, http.MethodPost, "/api/ideas", studentToken, ideaBody())
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		var idea dto.IdeaResponse
		helpers.DecodeData(t, body, &idea)
		assert.Equal(t, models.ModerationPending, idea.Status)
		assert.Equal(t, models.IdeaStageConcept, idea.Stage)

		// Pending ideas are hidden from everyone but the creator and admins.
		res, body = ts.SendRequest(t, http.MethodGet, "/api/ideas/"+idea.ID, otherToken, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		assert.Equal(t, "You do not have access to view this idea", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/ideas", otherToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Equal(t, 0, *helpers.Decode(t, body).Count)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/admin/ideas/pending", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var pending []dto.IdeaResponse
		env := helpers.DecodeData(t, body, &pending)
		assert.Equal(t, 1, *env.Count)
		require.Len(t, pending, 1)
		assert.Equal(t, idea.ID, pending[0].ID)
		require.NotNil(t, pending[0].Creator)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/admin/ideas/"+idea.ID, adminToken, map[string]string{"status": "maybe"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Please provide a valid status (approved or rejected)", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/admin/ideas/"+idea.ID, adminToken, map[string]string{"status": "approved"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/admin/ideas/"+idea.ID, adminToken, map[string]string{"status": "rejected"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Idea has already been moderated", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/ideas", otherToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var listed []map[string]interface{}
		env = helpers.DecodeData(t, body, &listed)
		assert.Equal(t, 1, *env.Count)
		require.Len(t, listed, 1)
		assert.NotContains(t, listed[0], "fullDescription")
		assert.NotContains(t, listed[0], "accessRequests")

		// Strangers get the public projection of an approved idea.
		res, body = ts.SendRequest(t, http.MethodGet, "/api/ideas/"+idea.ID, otherToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var public map[string]interface{}
		helpers.DecodeData(t, body, &public)
		assert.NotContains(t, public, "fullDescription")
		assert.Equal(t, float64(1), public["views"])

		res, _ = ts.SendRequest(t, http.MethodPut, "/api/ideas/"+idea.ID, otherToken, map[string]string{"title": "Mine now"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/ideas/"+idea.ID, studentToken, map[string]string{"stage": "mvp"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		helpers.DecodeData(t, body, &idea)
		assert.Equal(t, models.IdeaStageMVP, idea.Stage)
		assert.Equal(t, 1, idea.Views, "the creator's visits are never counted")

		res, body = ts.SendRequest(t, http.MethodDelete, "/api/ideas/"+idea.ID, studentToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Equal(t, "Idea deleted successfully", helpers.Decode(t, body).Message)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/ideas/"+idea.ID, studentToken, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Idea not found", helpers.Decode(t, body).Error)
	})
}

func TestScenario_InvestorAccess(t *testing.T) {
	t.Parallel()
	forEachStore(t, func(t *testing.T, ts *helpers.TestServer) {
		adminToken := newAdmin(t, ts)
		studentToken, _ := helpers.CreateAndLoginUser(t, ts, models.UserRoleStudent)
		investorToken, investorID := register(t, ts, "investor")

		res, body := ts.SendRequest(t, http.MethodPost, "/api/ideas", studentToken, ideaBody())
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		var idea dto.IdeaResponse
		helpers.DecodeData(t, body, &idea)
		res, body = ts.SendRequest(t, http.MethodPut, "/api/admin/ideas/"+idea.ID, adminToken, map[string]string{"status": "approved"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/ideas/"+idea.ID+"/request-access", investorToken, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		assert.Equal(t, "Your investor account is pending approval", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/admin/users/"+investorID, adminToken, map[string]bool{"isApproved": true})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var updated dto.UserResponse
		helpers.DecodeData(t, body, &updated)
		assert.True(t, updated.IsApproved)
		assert.Len(t, ts.Mail.SentTo(updated.Email), 1)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/ideas/"+idea.ID+"/request-access", investorToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var request dto.AccessRequestResponse
		env := helpers.DecodeData(t, body, &request)
		assert.Equal(t, "Access request submitted successfully", env.Message)
		assert.Equal(t, models.AccessRequestPending, request.Status)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/ideas/"+idea.ID+"/request-access", investorToken, nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Access request already exists", helpers.Decode(t, body).Error)

		// Before approval the investor only sees the summary.
		res, body = ts.SendRequest(t, http.MethodGet, "/api/ideas/"+idea.ID, investorToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.NotContains(t, body, "fullDescription")

		path := "/api/ideas/" + idea.ID + "/access-request/" + request.ID
		res, body = ts.SendRequest(t, http.MethodPut, path, studentToken, map[string]string{"status": "approved"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var decided dto.IdeaResponse
		env = helpers.DecodeData(t, body, &decided)
		assert.Equal(t, "Access request approved successfully", env.Message)
		require.Len(t, decided.AccessRequests, 1)
		require.Len(t, decided.ApprovedInvestors, 1)
		assert.Equal(t, investorID, decided.ApprovedInvestors[0].ID)

		// A decided request stays decided.
		for _, status := range []string{"rejected", "approved"} {
			res, body = ts.SendRequest(t, http.MethodPut, path, studentToken, map[string]string{"status": status})
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
			assert.Equal(t, "Access request has already been decided", helpers.Decode(t, body).Error)
		}
		assert.Len(t, ts.Mail.SentTo(updated.Email), 2, "account approval plus one access decision")

		res, body = ts.SendRequest(t, http.MethodGet, "/api/ideas/"+idea.ID, investorToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var full dto.IdeaResponse
		helpers.DecodeData(t, body, &full)
		assert.Equal(t, "Partnership terms with three canteens", full.FullDescription)

		res, body = ts.SendRequest(t, http.MethodPut, path, investorToken, map[string]string{"status": "rejected"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
	})
}

func TestScenario_EmployerJob(t *testing.T) {
	t.Parallel()
	forEachStore(t, func(t *testing.T, ts *helpers.TestServer) {
		adminToken := newAdmin(t, ts)
		employerToken, employerID := register(t, ts, "employer")
		studentToken, student := helpers.CreateAndLoginUser(t, ts, models.UserRoleStudent)

		res, body := ts.SendRequest(t, http.MethodPost, "/api/jobs", employerToken, jobBody())
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		assert.Equal(t, "Your employer account is pending verification", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/jobs", studentToken, jobBody())
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
		assert.Equal(t, "User role 'student' is not authorized to access this route", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/admin/users/"+employerID, adminToken, map[string]bool{"isVerified": true})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		invalid := jobBody()
		invalid["workMode"] = "moon"
		res, body = ts.SendRequest(t, http.MethodPost, "/api/jobs", employerToken, invalid)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, helpers.Decode(t, body).Error, "workMode")

		res, body = ts.SendRequest(t, http.MethodPost, "/api/jobs", employerToken, jobBody())
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		var job dto.JobResponse
		helpers.DecodeData(t, body, &job)
		assert.Equal(t, models.ModerationPending, job.Status)
		assert.Equal(t, []string{"python", "sql"}, job.SkillsRequired)

		// Any authenticated user can read a job by id, even while it is pending.
		res, _ = ts.SendRequest(t, http.MethodGet, "/api/jobs/"+job.ID, studentToken, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		apply := map[string]string{"resume": "https://cv.example/me.pdf", "coverLetter": "Hello"}
		res, body = ts.SendRequest(t, http.MethodPost, "/api/jobs/"+job.ID+"/apply", studentToken, apply)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "This job is not available for applications", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/admin/jobs/"+job.ID, adminToken, map[string]string{"status": "approved"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/jobs/"+job.ID+"/apply", studentToken, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Please provide a resume", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/jobs/"+job.ID+"/apply", studentToken, apply)
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		var app dto.ApplicationResponse
		helpers.DecodeData(t, body, &app)
		require.NotNil(t, app.Job)
		assert.Equal(t, job.Title, app.Job.Title)
		require.NotNil(t, app.Applicant)
		assert.Equal(t, student.Email, app.Applicant.Email)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/jobs/"+job.ID+"/apply", studentToken, apply)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "You have already applied to this job", helpers.Decode(t, body).Error)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/jobs/"+job.ID+"/applications", employerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var apps []dto.ApplicationResponse
		env := helpers.DecodeData(t, body, &apps)
		assert.Equal(t, 1, *env.Count)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/jobs/"+job.ID+"/applications/"+app.ID, employerToken, map[string]string{"status": "accepted"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		helpers.DecodeData(t, body, &app)
		assert.Equal(t, models.ApplicationStatusAccepted, app.Status)
		require.NotNil(t, app.ReviewedBy)
		assert.Equal(t, employerID, app.ReviewedBy.ID)
		assert.Len(t, ts.Mail.SentTo(student.Email), 1)

		res, body = ts.SendRequest(t, http.MethodDelete, "/api/jobs/"+job.ID, employerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Equal(t, "Job deleted successfully", helpers.Decode(t, body).Message)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/jobs/"+job.ID+"/applications", employerToken, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Job not found", helpers.Decode(t, body).Error)
		_, err := ts.Repos.Applications.FindByID(context.Background(), app.ID)
		assert.ErrorIs(t, err, repositories.ErrApplicationNotFound)
	})
}

func TestAdminAnalytics(t *testing.T) {
	t.Parallel()
	forEachStore(t, func(t *testing.T, ts *helpers.TestServer) {
		adminToken := newAdmin(t, ts)
		helpers.CreateUser(t, ts, models.UserRoleStudent)
		helpers.CreateUser(t, ts, models.UserRoleInvestor)

		res, body := ts.SendRequest(t, http.MethodGet, "/api/admin/analytics", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var raw map[string]json.RawMessage
		helpers.DecodeData(t, body, &raw)
		assert.Contains(t, string(raw["usersByRole"]), `"_id":"admin"`)

		var stats dto.AnalyticsResponse
		helpers.DecodeData(t, body, &stats)
		assert.Equal(t, int64(3), stats.Totals.Users)
		assert.Len(t, stats.UsersByRole, 3)
		assert.Empty(t, stats.IdeasByStatus)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/admin/users?role=investor", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Equal(t, 1, *helpers.Decode(t, body).Count)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/admin/users?role=pirate", adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	})
}
