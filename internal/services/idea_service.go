package services

import (
	"context"
	"errors"
	"time"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/internal/services/dto"
	"iblaze_backend/pkg/apperrors"
)

type IdeaService interface {
	ListApproved(ctx context.Context) ([]*dto.IdeaPublicResponse, error)
	Create(ctx context.Context, user *models.User, req *dto.CreateIdeaRequest) (*dto.IdeaResponse, error)
	// GetByID returns *dto.IdeaResponse or *dto.IdeaPublicResponse depending on what the caller may see.
	GetByID(ctx context.Context, user *models.User, ideaID string) (interface{}, error)
	Update(ctx context.Context, user *models.User, ideaID string, req *dto.UpdateIdeaRequest) (*dto.IdeaResponse, error)
	Delete(ctx context.Context, user *models.User, ideaID string) error
	RequestAccess(ctx context.Context, user *models.User, ideaID string) (*dto.AccessRequestResponse, error)
	DecideAccessRequest(ctx context.Context, user *models.User, ideaID, requestID, status string) (*dto.IdeaResponse, error)
}

type IdeaServiceImpl struct {
	ideaRepo repositories.IdeaRepository
	notifier NotificationService
	now      func() time.Time
}

func NewIdeaService(ideaRepo repositories.IdeaRepository, notifier NotificationService) IdeaService {
	return &IdeaServiceImpl{
		ideaRepo: ideaRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *IdeaServiceImpl) ListApproved(ctx context.Context) ([]*dto.IdeaPublicResponse, error) {
	ideas, err := s.ideaRepo.FindByStatus(ctx, models.ModerationApproved)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewIdeaPublicResponses(ideas), nil
}

func (s *IdeaServiceImpl) Create(ctx context.Context, user *models.User, req *dto.CreateIdeaRequest) (*dto.IdeaResponse, error) {
	if user.Role != models.UserRoleStudent {
		return nil, apperrors.ErrOnlyStudentsCreateIdeas
	}

	stage := models.IdeaStage(req.Stage)
	if stage == "" {
		stage = models.IdeaStageConcept
	}

	idea := &models.Idea{
		Title:           req.Title,
		PublicSummary:   req.PublicSummary,
		FullDescription: req.FullDescription,
		CreatorID:       user.ID,
		Category:        req.Category,
		Industry:        req.Industry,
		Stage:           stage,
		Status:          models.ModerationPending,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Idea submitted", "idea_id", idea.ID)
	return s.reload(ctx, idea.ID)
}

func (s *IdeaServiceImpl) GetByID(ctx context.Context, user *models.User, ideaID string) (interface{}, error) {
	idea, err := s.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	if !idea.IsCreator(user.ID) && !idea.HasViewFrom(user.ID) {
		viewedAt := s.now().UTC()
		added, err := s.ideaRepo.AddView(ctx, idea.ID, user.ID, viewedAt)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if added {
			idea.Views = append(idea.Views, models.IdeaView{IdeaID: idea.ID, UserID: user.ID, ViewedAt: viewedAt})
		}
	}

	switch {
	case idea.IsCreator(user.ID), auth.IsAdmin(user), idea.HasApprovedInvestor(user.ID):
		return dto.NewIdeaResponse(idea), nil
	case idea.Status == models.ModerationApproved:
		return dto.NewIdeaPublicResponse(idea), nil
	default:
		return nil, apperrors.ErrIdeaAccessDenied
	}
}

func (s *IdeaServiceImpl) Update(ctx context.Context, user *models.User, ideaID string, req *dto.UpdateIdeaRequest) (*dto.IdeaResponse, error) {
	idea, err := s.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(user, idea.CreatorID) {
		return nil, apperrors.ErrIdeaUpdateForbidden
	}

	patch := repositories.IdeaPatch{
		Title:           req.Title,
		PublicSummary:   req.PublicSummary,
		FullDescription: req.FullDescription,
		Category:        req.Category,
		Industry:        req.Industry,
	}
	if req.Stage != nil {
		stage := models.IdeaStage(*req.Stage)
		patch.Stage = &stage
	}

	if err := s.ideaRepo.Update(ctx, idea.ID, patch); err != nil {
		return nil, s.mapError(err)
	}
	return s.reload(ctx, idea.ID)
}

func (s *IdeaServiceImpl) Delete(ctx context.Context, user *models.User, ideaID string) error {
	idea, err := s.load(ctx, ideaID)
	if err != nil {
		return err
	}
	if !auth.CanMutate(user, idea.CreatorID) {
		return apperrors.ErrIdeaDeleteForbidden
	}
	if err := s.ideaRepo.Delete(ctx, idea.ID); err != nil {
		return s.mapError(err)
	}
	logger.CtxInfo(ctx, "Idea deleted", "idea_id", idea.ID)
	return nil
}

func (s *IdeaServiceImpl) RequestAccess(ctx context.Context, user *models.User, ideaID string) (*dto.AccessRequestResponse, error) {
	if user.Role != models.UserRoleInvestor {
		return nil, apperrors.ErrOnlyInvestorsRequestAccess
	}
	if !user.IsApproved {
		return nil, apperrors.ErrInvestorPendingApproval
	}

	idea, err := s.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.HasAccessRequestFrom(user.ID) {
		return nil, apperrors.ErrAccessRequestExists
	}
	if idea.HasApprovedInvestor(user.ID) {
		return nil, apperrors.ErrAlreadyHasAccess
	}

	req := &models.AccessRequest{
		IdeaID:      idea.ID,
		InvestorID:  user.ID,
		Status:      models.AccessRequestPending,
		RequestedAt: s.now().UTC(),
	}
	if err := s.ideaRepo.AddAccessRequest(ctx, req); err != nil {
		return nil, s.mapError(err)
	}
	req.Investor = user

	logger.CtxInfo(ctx, "Access request created", "idea_id", idea.ID, "request_id", req.ID)
	return dto.NewAccessRequestResponse(req), nil
}

func (s *IdeaServiceImpl) DecideAccessRequest(ctx context.Context, user *models.User, ideaID, requestID, status string) (*dto.IdeaResponse, error) {
	decision := models.AccessRequestStatus(status)
	if !decision.IsDecision() {
		return nil, apperrors.ErrInvalidAccessRequestStatus
	}

	idea, err := s.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(user, idea.CreatorID) {
		return nil, apperrors.ErrAccessRequestUpdateForbidden
	}

	req := idea.FindAccessRequest(requestID)
	if req == nil {
		return nil, apperrors.ErrAccessRequestNotFound
	}
	if req.Status != models.AccessRequestPending {
		return nil, apperrors.ErrAccessRequestAlreadyDecided
	}

	if err := s.ideaRepo.DecideAccessRequest(ctx, idea.ID, req.ID, decision); err != nil {
		return nil, s.mapError(err)
	}

	logger.CtxInfo(ctx, "Access request decided", "idea_id", idea.ID, "request_id", req.ID, "status", decision)
	s.notifier.AccessRequestDecided(ctx, req.Investor, idea, decision)

	return s.reload(ctx, idea.ID)
}

func (s *IdeaServiceImpl) load(ctx context.Context, ideaID string) (*models.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, ideaID)
	if err != nil {
		return nil, s.mapError(err)
	}
	return idea, nil
}

func (s *IdeaServiceImpl) reload(ctx context.Context, ideaID string) (*dto.IdeaResponse, error) {
	idea, err := s.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	return dto.NewIdeaResponse(idea), nil
}

func (s *IdeaServiceImpl) mapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrIdeaNotFound):
		return apperrors.ErrIdeaNotFound
	case errors.Is(err, repositories.ErrAccessRequestExists):
		return apperrors.ErrAccessRequestExists
	case errors.Is(err, repositories.ErrAccessRequestNotFound):
		return apperrors.ErrAccessRequestNotFound
	case errors.Is(err, repositories.ErrAccessRequestDecided):
		return apperrors.ErrAccessRequestAlreadyDecided
	default:
		return apperrors.InternalError(err)
	}
}
