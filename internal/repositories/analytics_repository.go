package repositories

import (
	"context"

	"iblaze_backend/internal/models"

	"gorm.io/gorm"
)

type Totals struct {
	Users        int64
	Ideas        int64
	Jobs         int64
	Applications int64
}

// GroupCount is one bucket of a GROUP BY count.
type GroupCount struct {
	Key   string
	Count int64
}

type AnalyticsRepository interface {
	Totals(ctx context.Context) (*Totals, error)
	UsersByRole(ctx context.Context) ([]GroupCount, error)
	IdeasByStatus(ctx context.Context) ([]GroupCount, error)
	JobsByStatus(ctx context.Context) ([]GroupCount, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Totals(ctx context.Context) (*Totals, error) {
	var t Totals
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&t.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Idea{}).Count(&t.Ideas).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Job{}).Count(&t.Jobs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Application{}).Count(&t.Applications).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *analyticsRepository) UsersByRole(ctx context.Context) ([]GroupCount, error) {
	return r.groupCount(ctx, &models.User{}, "role")
}

func (r *analyticsRepository) IdeasByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.groupCount(ctx, &models.Idea{}, "status")
}

func (r *analyticsRepository) JobsByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.groupCount(ctx, &models.Job{}, "status")
}

func (r *analyticsRepository) groupCount(ctx context.Context, model interface{}, column string) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).Model(model).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order(column).
		Scan(&rows).Error
	return rows, err
}
