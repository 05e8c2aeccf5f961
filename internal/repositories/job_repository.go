package repositories

import (
	"context"
	"errors"
	"time"

	"iblaze_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	// FindByStatus returns jobs newest first with the employer loaded.
	FindByStatus(ctx context.Context, status models.ModerationStatus) ([]models.Job, error)
	Update(ctx context.Context, id string, patch JobPatch) error
	// Delete removes the job's applications first, then the job, in one transaction.
	Delete(ctx context.Context, id string) error
}

type JobPatch struct {
	Title          *string
	Description    *string
	JobType        *models.JobType
	Location       *string
	WorkMode       *models.WorkMode
	Duration       *string
	Stipend        *string
	SkillsRequired *[]string
	Status         *models.ModerationStatus
}

func (p JobPatch) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.JobType != nil {
		updates["job_type"] = *p.JobType
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.WorkMode != nil {
		updates["work_mode"] = *p.WorkMode
	}
	if p.Duration != nil {
		updates["duration"] = *p.Duration
	}
	if p.Stipend != nil {
		updates["stipend"] = *p.Stipend
	}
	if p.SkillsRequired != nil {
		updates["skills_required"] = datatypes.NewJSONSlice(*p.SkillsRequired)
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	return updates
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	if !models.IsValidID(id) {
		return nil, ErrJobNotFound
	}
	var job models.Job
	err := r.db.WithContext(ctx).Preload("Employer").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindByStatus(ctx context.Context, status models.ModerationStatus) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) Update(ctx context.Context, id string, patch JobPatch) error {
	if !models.IsValidID(id) {
		return ErrJobNotFound
	}
	updates := patch.columns()
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	if !models.IsValidID(id) {
		return ErrJobNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}
