package services

import (
	"context"
	"errors"
	"strings"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/internal/services/dto"
	"iblaze_backend/pkg/apperrors"
)

type JobService interface {
	ListApproved(ctx context.Context) ([]*dto.JobResponse, error)
	Create(ctx context.Context, user *models.User, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	// GetByID returns the full job to any authenticated caller, whatever its status.
	GetByID(ctx context.Context, jobID string) (*dto.JobResponse, error)
	Update(ctx context.Context, user *models.User, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(ctx context.Context, user *models.User, jobID string) error
	Apply(ctx context.Context, user *models.User, jobID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	ListApplications(ctx context.Context, user *models.User, jobID string) ([]*dto.ApplicationResponse, error)
	ReviewApplication(ctx context.Context, user *models.User, jobID, applicationID, status string) (*dto.ApplicationResponse, error)
}

type JobServiceImpl struct {
	jobRepo  repositories.JobRepository
	appRepo  repositories.ApplicationRepository
	notifier NotificationService
}

func NewJobService(jobRepo repositories.JobRepository, appRepo repositories.ApplicationRepository, notifier NotificationService) JobService {
	return &JobServiceImpl{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		notifier: notifier,
	}
}

func (s *JobServiceImpl) ListApproved(ctx context.Context) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByStatus(ctx, models.ModerationApproved)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponses(jobs), nil
}

func (s *JobServiceImpl) Create(ctx context.Context, user *models.User, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if user.Role != models.UserRoleEmployer {
		return nil, apperrors.ErrOnlyEmployersCreateJobs
	}
	if !user.IsVerified {
		return nil, apperrors.ErrEmployerPendingVerification
	}

	skills := req.SkillsRequired
	if skills == nil {
		skills = []string{}
	}

	job := &models.Job{
		Title:          req.Title,
		Description:    req.Description,
		EmployerID:     user.ID,
		JobType:        models.JobType(req.JobType),
		Location:       req.Location,
		WorkMode:       models.WorkMode(req.WorkMode),
		Duration:       req.Duration,
		Stipend:        req.Stipend,
		SkillsRequired: skills,
		Status:         models.ModerationPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Job posted", "job_id", job.ID)
	return s.GetByID(ctx, job.ID)
}

func (s *JobServiceImpl) GetByID(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	job, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) Update(ctx context.Context, user *models.User, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(user, job.EmployerID) {
		return nil, apperrors.ErrJobUpdateForbidden
	}

	patch := repositories.JobPatch{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Duration:       req.Duration,
		Stipend:        req.Stipend,
		SkillsRequired: req.SkillsRequired,
	}
	if req.JobType != nil {
		jobType := models.JobType(*req.JobType)
		patch.JobType = &jobType
	}
	if req.WorkMode != nil {
		mode := models.WorkMode(*req.WorkMode)
		patch.WorkMode = &mode
	}

	if err := s.jobRepo.Update(ctx, job.ID, patch); err != nil {
		return nil, s.mapError(err)
	}
	return s.GetByID(ctx, job.ID)
}

func (s *JobServiceImpl) Delete(ctx context.Context, user *models.User, jobID string) error {
	job, err := s.load(ctx, jobID)
	if err != nil {
		return err
	}
	if !auth.CanMutate(user, job.EmployerID) {
		return apperrors.ErrJobDeleteForbidden
	}
	if err := s.jobRepo.Delete(ctx, job.ID); err != nil {
		return s.mapError(err)
	}
	logger.CtxInfo(ctx, "Job deleted", "job_id", job.ID)
	return nil
}

func (s *JobServiceImpl) Apply(ctx context.Context, user *models.User, jobID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	if user.Role != models.UserRoleStudent {
		return nil, apperrors.ErrOnlyStudentsApply
	}

	job, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.ModerationApproved {
		return nil, apperrors.ErrJobNotOpen
	}

	resume := strings.TrimSpace(req.Resume)
	if resume == "" {
		return nil, apperrors.ErrResumeRequired
	}

	exists, err := s.appRepo.Exists(ctx, job.ID, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		Resume:      resume,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, s.mapError(err)
	}

	logger.CtxInfo(ctx, "Application submitted", "job_id", job.ID, "application_id", app.ID)
	return s.loadApplication(ctx, app.ID)
}

func (s *JobServiceImpl) ListApplications(ctx context.Context, user *models.User, jobID string) ([]*dto.ApplicationResponse, error) {
	job, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(user, job.EmployerID) {
		return nil, apperrors.ErrApplicationsViewForbidden
	}

	apps, err := s.appRepo.FindByJob(ctx, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewApplicationResponses(apps), nil
}

func (s *JobServiceImpl) ReviewApplication(ctx context.Context, user *models.User, jobID, applicationID, status string) (*dto.ApplicationResponse, error) {
	outcome := models.ApplicationStatus(status)
	if !outcome.IsReviewOutcome() {
		return nil, apperrors.ErrInvalidApplicationStatus
	}

	job, err := s.load(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(user, job.EmployerID) {
		return nil, apperrors.ErrApplicationReviewForbidden
	}

	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, s.mapError(err)
	}
	if app.JobID != job.ID {
		return nil, apperrors.ErrApplicationNotFound
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, outcome, user.ID); err != nil {
		return nil, s.mapError(err)
	}

	logger.CtxInfo(ctx, "Application reviewed", "application_id", app.ID, "status", outcome)
	s.notifier.ApplicationReviewed(ctx, app.Applicant, job, outcome)

	return s.loadApplication(ctx, app.ID)
}

func (s *JobServiceImpl) load(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, s.mapError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) loadApplication(ctx context.Context, applicationID string) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, s.mapError(err)
	}
	return dto.NewApplicationResponse(app), nil
}

func (s *JobServiceImpl) mapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrJobNotFound):
		return apperrors.ErrJobNotFound
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrApplicationNotFound
	case errors.Is(err, repositories.ErrApplicationExists):
		return apperrors.ErrAlreadyApplied
	default:
		return apperrors.InternalError(err)
	}
}
