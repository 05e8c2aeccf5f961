package repositories

import (
	"context"
	"errors"
	"time"

	"iblaze_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists")
)

type ApplicationRepository interface {
	// Create fails with ErrApplicationExists when (job, applicant) is taken.
	Create(ctx context.Context, app *models.Application) error
	// FindByID loads the job, applicant and reviewer.
	FindByID(ctx context.Context, id string) (*models.Application, error)
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	// FindByJob returns the job's applications newest first with applicant and reviewer loaded.
	FindByJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, reviewerID string) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrApplicationExists
	}
	return err
}

func (r *applicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	if !models.IsValidID(id) {
		return nil, ErrApplicationNotFound
	}
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Applicant").
		Preload("ReviewedBy").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) FindByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("ReviewedBy").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, reviewerID string) error {
	if !models.IsValidID(id) {
		return ErrApplicationNotFound
	}
	result := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         status,
		"reviewed_by_id": reviewerID,
		"updated_at":     time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
