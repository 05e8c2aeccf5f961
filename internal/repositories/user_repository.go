package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"iblaze_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// SetRefreshToken overwrites the single refresh-token slot; nil clears it.
	SetRefreshToken(ctx context.Context, userID string, token *string) error
	UpdateStanding(ctx context.Context, userID string, patch UserStandingPatch) (*models.User, error)
	FindWithFilter(ctx context.Context, filter UserFilter) ([]models.User, error)
}

// UserStandingPatch holds the admin-editable flags; nil fields are left untouched.
type UserStandingPatch struct {
	IsApproved *bool
	IsVerified *bool
	Status     *models.UserStatus
}

func (p UserStandingPatch) IsEmpty() bool {
	return p.IsApproved == nil && p.IsVerified == nil && p.Status == nil
}

type UserFilter struct {
	Role   models.UserRole
	Status models.UserStatus
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)

	var existing models.User
	err := r.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !models.IsValidID(id) {
		return nil, ErrUserNotFound
	}
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) SetRefreshToken(ctx context.Context, userID string, token *string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"refresh_token": token,
		"updated_at":    time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStanding(ctx context.Context, userID string, patch UserStandingPatch) (*models.User, error) {
	if !models.IsValidID(userID) {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.IsApproved != nil {
		updates["is_approved"] = *patch.IsApproved
	}
	if patch.IsVerified != nil {
		updates["is_verified"] = *patch.IsVerified
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
		if *patch.Status == models.UserStatusSuspended {
			updates["refresh_token"] = nil
		}
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, userID)
}

func (r *UserRepositoryImpl) FindWithFilter(ctx context.Context, filter UserFilter) ([]models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var users []models.User
	err := query.Order("created_at DESC").Find(&users).Error
	return users, err
}
