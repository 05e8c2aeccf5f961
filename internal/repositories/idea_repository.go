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
	ErrIdeaNotFound          = errors.New("idea not found")
	ErrAccessRequestExists   = errors.New("access request already exists")
	ErrAccessRequestNotFound = errors.New("access request not found")
	ErrAccessRequestDecided  = errors.New("access request already decided")
)

type IdeaRepository interface {
	Create(ctx context.Context, idea *models.Idea) error
	// FindByID loads the idea with its creator, access requests, approved investors and views.
	FindByID(ctx context.Context, id string) (*models.Idea, error)
	// FindByStatus returns ideas newest first with creator and views loaded.
	FindByStatus(ctx context.Context, status models.ModerationStatus) ([]models.Idea, error)
	Update(ctx context.Context, id string, patch IdeaPatch) error
	Delete(ctx context.Context, id string) error

	// AddView records the first visit of userID and reports whether a row was added.
	AddView(ctx context.Context, ideaID, userID string, at time.Time) (bool, error)
	AddAccessRequest(ctx context.Context, req *models.AccessRequest) error
	// DecideAccessRequest sets the request status and, on approval, adds the
	// investor to the approved list. Both writes commit together.
	DecideAccessRequest(ctx context.Context, ideaID, requestID string, status models.AccessRequestStatus) error
}

type IdeaPatch struct {
	Title           *string
	PublicSummary   *string
	FullDescription *string
	Category        *string
	Industry        *string
	Stage           *models.IdeaStage
	Status          *models.ModerationStatus
}

func (p IdeaPatch) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.PublicSummary != nil {
		updates["public_summary"] = *p.PublicSummary
	}
	if p.FullDescription != nil {
		updates["full_description"] = *p.FullDescription
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Industry != nil {
		updates["industry"] = *p.Industry
	}
	if p.Stage != nil {
		updates["stage"] = *p.Stage
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	return updates
}

type ideaRepository struct {
	db *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) Create(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(idea).Error
}

func (r *ideaRepository) FindByID(ctx context.Context, id string) (*models.Idea, error) {
	if !models.IsValidID(id) {
		return nil, ErrIdeaNotFound
	}

	var idea models.Idea
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("AccessRequests", func(db *gorm.DB) *gorm.DB { return db.Order("requested_at ASC") }).
		Preload("AccessRequests.Investor").
		Preload("ApprovedInvestors", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("ApprovedInvestors.Investor").
		Preload("Views").
		First(&idea, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	return &idea, nil
}

func (r *ideaRepository) FindByStatus(ctx context.Context, status models.ModerationStatus) ([]models.Idea, error) {
	var ideas []models.Idea
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Views").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&ideas).Error
	return ideas, err
}

func (r *ideaRepository) Update(ctx context.Context, id string, patch IdeaPatch) error {
	if !models.IsValidID(id) {
		return ErrIdeaNotFound
	}
	updates := patch.columns()
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&models.Idea{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdeaNotFound
	}
	return nil
}

func (r *ideaRepository) Delete(ctx context.Context, id string) error {
	if !models.IsValidID(id) {
		return ErrIdeaNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&models.AccessRequest{}, &models.ApprovedInvestor{}, &models.IdeaView{}} {
			if err := tx.Where("idea_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		result := tx.Where("id = ?", id).Delete(&models.Idea{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrIdeaNotFound
		}
		return nil
	})
}

func (r *ideaRepository) AddView(ctx context.Context, ideaID, userID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.IdeaView{IdeaID: ideaID, UserID: userID, ViewedAt: at})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ideaRepository) AddAccessRequest(ctx context.Context, req *models.AccessRequest) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAccessRequestExists
	}
	return err
}

func (r *ideaRepository) DecideAccessRequest(ctx context.Context, ideaID, requestID string, status models.AccessRequestStatus) error {
	if !models.IsValidID(requestID) {
		return ErrAccessRequestNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.AccessRequest
		err := tx.Where("id = ? AND idea_id = ?", requestID, ideaID).First(&req).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccessRequestNotFound
			}
			return err
		}

		if req.Status != models.AccessRequestPending {
			return ErrAccessRequestDecided
		}

		result := tx.Model(&models.AccessRequest{}).
			Where("id = ? AND status = ?", req.ID, models.AccessRequestPending).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAccessRequestDecided
		}

		if status != models.AccessRequestApproved {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.ApprovedInvestor{IdeaID: ideaID, InvestorID: req.InvestorID}).Error
	})
}
