package services

import (
	"context"
	"errors"

	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/internal/services/dto"
	"iblaze_backend/pkg/apperrors"

	"github.com/samber/lo"
)

// AdminService covers moderation queues, account standing and analytics.
// Callers are admins, so no ownership checks happen here.
type AdminService interface {
	ListUsers(ctx context.Context, filter *dto.UserFilterQuery) ([]*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	PendingIdeas(ctx context.Context) ([]*dto.IdeaResponse, error)
	ModerateIdea(ctx context.Context, ideaID, status string) (*dto.IdeaResponse, error)
	PendingJobs(ctx context.Context) ([]*dto.JobResponse, error)
	ModerateJob(ctx context.Context, jobID, status string) (*dto.JobResponse, error)
	Analytics(ctx context.Context) (*dto.AnalyticsResponse, error)
}

type AdminServiceImpl struct {
	userRepo      repositories.UserRepository
	ideaRepo      repositories.IdeaRepository
	jobRepo       repositories.JobRepository
	analyticsRepo repositories.AnalyticsRepository
	notifier      NotificationService
}

func NewAdminService(repos *repositories.Repositories, notifier NotificationService) AdminService {
	return &AdminServiceImpl{
		userRepo:      repos.Users,
		ideaRepo:      repos.Ideas,
		jobRepo:       repos.Jobs,
		analyticsRepo: repos.Analytics,
		notifier:      notifier,
	}
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context, filter *dto.UserFilterQuery) ([]*dto.UserResponse, error) {
	var f repositories.UserFilter
	if filter != nil {
		f.Role = models.UserRole(filter.Role)
		f.Status = models.UserStatus(filter.Status)
	}
	users, err := s.userRepo.FindWithFilter(ctx, f)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponses(users), nil
}

func (s *AdminServiceImpl) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	patch := repositories.UserStandingPatch{
		IsApproved: req.IsApproved,
		IsVerified: req.IsVerified,
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		if !status.Valid() {
			return nil, apperrors.ErrInvalidUserStatus
		}
		patch.Status = &status
	}

	before, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	if patch.IsEmpty() {
		return dto.NewUserResponse(before), nil
	}

	after, err := s.userRepo.UpdateStanding(ctx, userID, patch)
	if err != nil {
		return nil, mapUserError(err)
	}

	logger.CtxInfo(ctx, "User standing updated",
		"target_user_id", after.ID,
		"is_approved", after.IsApproved,
		"is_verified", after.IsVerified,
		"status", after.Status,
	)

	if !before.IsApproved && after.IsApproved {
		s.notifier.AccountApproved(ctx, after)
	}
	if !before.IsVerified && after.IsVerified {
		s.notifier.AccountVerified(ctx, after)
	}
	return dto.NewUserResponse(after), nil
}

func (s *AdminServiceImpl) PendingIdeas(ctx context.Context) ([]*dto.IdeaResponse, error) {
	ideas, err := s.ideaRepo.FindByStatus(ctx, models.ModerationPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewIdeaResponses(ideas), nil
}

func (s *AdminServiceImpl) ModerateIdea(ctx context.Context, ideaID, status string) (*dto.IdeaResponse, error) {
	decision, err := parseModeration(status)
	if err != nil {
		return nil, err
	}

	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		return nil, mapIdeaError(err)
	}
	if idea.Status != models.ModerationPending {
		return nil, apperrors.ErrAlreadyModerated("Idea")
	}

	if err := s.ideaRepo.Update(ctx, idea.ID, repositories.IdeaPatch{Status: &decision}); err != nil {
		return nil, mapIdeaError(err)
	}
	logger.CtxInfo(ctx, "Idea moderated", "idea_id", idea.ID, "status", decision)

	idea, err = s.ideaRepo.FindByID(ctx, idea.ID)
	if err != nil {
		return nil, mapIdeaError(err)
	}
	return dto.NewIdeaResponse(idea), nil
}

func (s *AdminServiceImpl) PendingJobs(ctx context.Context) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByStatus(ctx, models.ModerationPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponses(jobs), nil
}

func (s *AdminServiceImpl) ModerateJob(ctx context.Context, jobID, status string) (*dto.JobResponse, error) {
	decision, err := parseModeration(status)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}
	if job.Status != models.ModerationPending {
		return nil, apperrors.ErrAlreadyModerated("Job")
	}

	if err := s.jobRepo.Update(ctx, job.ID, repositories.JobPatch{Status: &decision}); err != nil {
		return nil, mapJobError(err)
	}
	logger.CtxInfo(ctx, "Job moderated", "job_id", job.ID, "status", decision)

	job, err = s.jobRepo.FindByID(ctx, job.ID)
	if err != nil {
		return nil, mapJobError(err)
	}
	return dto.NewJobResponse(job), nil
}

func (s *AdminServiceImpl) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	totals, err := s.analyticsRepo.Totals(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byRole, err := s.analyticsRepo.UsersByRole(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ideasByStatus, err := s.analyticsRepo.IdeasByStatus(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	jobsByStatus, err := s.analyticsRepo.JobsByStatus(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AnalyticsResponse{
		Totals: dto.Totals{
			Users:        totals.Users,
			Ideas:        totals.Ideas,
			Jobs:         totals.Jobs,
			Applications: totals.Applications,
		},
		UsersByRole:   toGroupCounts(byRole),
		IdeasByStatus: toGroupCounts(ideasByStatus),
		JobsByStatus:  toGroupCounts(jobsByStatus),
	}, nil
}

func toGroupCounts(rows []repositories.GroupCount) []dto.GroupCount {
	return lo.Map(rows, func(r repositories.GroupCount, _ int) dto.GroupCount {
		return dto.GroupCount{ID: r.Key, Count: r.Count}
	})
}

func parseModeration(status string) (models.ModerationStatus, error) {
	decision := models.ModerationStatus(status)
	if !decision.IsDecision() {
		return "", apperrors.ErrInvalidModerationStatus
	}
	return decision, nil
}

func mapUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}

func mapIdeaError(err error) error {
	if errors.Is(err, repositories.ErrIdeaNotFound) {
		return apperrors.ErrIdeaNotFound
	}
	return apperrors.InternalError(err)
}

func mapJobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound
	}
	return apperrors.InternalError(err)
}
