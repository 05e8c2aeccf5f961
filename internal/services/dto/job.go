package dto

import (
	"time"

	"iblaze_backend/internal/models"

	"github.com/samber/lo"
)

type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	JobType        string   `json:"jobType" validate:"required,is-job-type"`
	Location       string   `json:"location" validate:"required"`
	WorkMode       string   `json:"workMode" validate:"required,is-work-mode"`
	Duration       string   `json:"duration"`
	Stipend        string   `json:"stipend" validate:"required"`
	SkillsRequired []string `json:"skillsRequired" validate:"omitempty,dive,required"`
}

type UpdateJobRequest struct {
	Title          *string   `json:"title" validate:"omitempty,min=1"`
	Description    *string   `json:"description" validate:"omitempty,min=1"`
	JobType        *string   `json:"jobType" validate:"omitempty,is-job-type"`
	Location       *string   `json:"location" validate:"omitempty,min=1"`
	WorkMode       *string   `json:"workMode" validate:"omitempty,is-work-mode"`
	Duration       *string   `json:"duration"`
	Stipend        *string   `json:"stipend" validate:"omitempty,min=1"`
	SkillsRequired *[]string `json:"skillsRequired"`
}

// ApplyRequest leaves resume unchecked so the service can answer with its own message.
type ApplyRequest struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"coverLetter"`
}

type JobResponse struct {
	ID             string                  `json:"id"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	Employer       *UserSummary            `json:"employer"`
	JobType        models.JobType          `json:"jobType"`
	Location       string                  `json:"location"`
	WorkMode       models.WorkMode         `json:"workMode"`
	Duration       string                  `json:"duration,omitempty"`
	Stipend        string                  `json:"stipend"`
	SkillsRequired []string                `json:"skillsRequired"`
	Status         models.ModerationStatus `json:"status"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

type JobSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"jobId"`
	Job         *JobSummary              `json:"job,omitempty"`
	Applicant   *UserSummary             `json:"applicant"`
	Resume      string                   `json:"resume"`
	CoverLetter string                   `json:"coverLetter,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	ReviewedBy  *UserSummary             `json:"reviewedBy"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

func NewJobResponse(job *models.Job) *JobResponse {
	skills := []string(job.SkillsRequired)
	if skills == nil {
		skills = []string{}
	}
	return &JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Description:    job.Description,
		Employer:       NewUserSummary(job.Employer),
		JobType:        job.JobType,
		Location:       job.Location,
		WorkMode:       job.WorkMode,
		Duration:       job.Duration,
		Stipend:        job.Stipend,
		SkillsRequired: skills,
		Status:         job.Status,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

func NewJobResponses(jobs []models.Job) []*JobResponse {
	return lo.Map(jobs, func(j models.Job, _ int) *JobResponse { return NewJobResponse(&j) })
}

func NewApplicationResponse(app *models.Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		Applicant:   NewUserSummary(app.Applicant),
		Resume:      app.Resume,
		CoverLetter: app.CoverLetter,
		Status:      app.Status,
		ReviewedBy:  NewUserSummary(app.ReviewedBy),
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Job != nil {
		resp.Job = &JobSummary{ID: app.Job.ID, Title: app.Job.Title}
	}
	return resp
}

func NewApplicationResponses(apps []models.Application) []*ApplicationResponse {
	return lo.Map(apps, func(a models.Application, _ int) *ApplicationResponse { return NewApplicationResponse(&a) })
}
