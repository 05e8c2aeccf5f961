package services

import (
	"context"
	"errors"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
	"iblaze_backend/internal/services/dto"
	"iblaze_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	Logout(ctx context.Context, userID string) error
	// Authenticate resolves an access token to a live, non-suspended user.
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	role := models.UserRole(req.Role)
	if role == models.UserRoleAdmin {
		return nil, apperrors.ErrAdminSelfRegistration
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	user.ApplyRoleDefaults()

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "role", user.Role)
	return s.issueSession(ctx, user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.IsSuspended() {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueSession(ctx, user)
}

func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	// Only the most recently issued token is accepted.
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if user.IsSuspended() {
		return nil, apperrors.ErrUserSuspended
	}

	access, refresh, err := s.rotate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.SetRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	claims, err := s.tokens.Verify(accessToken, auth.TokenTypeAccess)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrNotAuthenticated
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, apperrors.InternalError(err)
	}

	if user.IsSuspended() {
		return nil, apperrors.ErrUserSuspended
	}
	return user, nil
}

func (s *AuthServiceImpl) issueSession(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	access, refresh, err := s.rotate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// rotate issues a new token pair and stores the refresh token in the user's
// single slot, invalidating whatever was there before.
func (s *AuthServiceImpl) rotate(ctx context.Context, userID string) (string, string, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}
	if err := s.userRepo.SetRefreshToken(ctx, userID, &refresh); err != nil {
		return "", "", apperrors.InternalError(err)
	}
	return access, refresh, nil
}
