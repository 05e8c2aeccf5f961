package dto

import (
	"time"

	"iblaze_backend/internal/models"

	"github.com/samber/lo"
)

type CreateIdeaRequest struct {
	Title           string `json:"title" validate:"required"`
	PublicSummary   string `json:"publicSummary" validate:"required"`
	FullDescription string `json:"fullDescription" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Industry        string `json:"industry" validate:"required"`
	Stage           string `json:"stage" validate:"omitempty,is-idea-stage"`
}

type UpdateIdeaRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=1"`
	PublicSummary   *string `json:"publicSummary" validate:"omitempty,min=1"`
	FullDescription *string `json:"fullDescription" validate:"omitempty,min=1"`
	Category        *string `json:"category" validate:"omitempty,min=1"`
	Industry        *string `json:"industry" validate:"omitempty,min=1"`
	Stage           *string `json:"stage" validate:"omitempty,is-idea-stage"`
}

// StatusRequest carries a status transition; allowed values depend on the endpoint.
type StatusRequest struct {
	Status string `json:"status"`
}

// IdeaPublicResponse is what anyone without standing on the idea may see.
type IdeaPublicResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	PublicSummary string           `json:"publicSummary"`
	Category      string           `json:"category"`
	Industry      string           `json:"industry"`
	Stage         models.IdeaStage `json:"stage"`
	Creator       *UserSummary     `json:"creator"`
	CreatedAt     time.Time        `json:"createdAt"`
	Views         int              `json:"views"`
}

type AccessRequestResponse struct {
	ID          string                     `json:"id"`
	IdeaID      string                     `json:"ideaId"`
	Investor    *UserSummary               `json:"investor"`
	Status      models.AccessRequestStatus `json:"status"`
	RequestedAt time.Time                  `json:"requestedAt"`
}

// IdeaResponse is the full record shown to the creator, admins and approved investors.
type IdeaResponse struct {
	ID                string                   `json:"id"`
	Title             string                   `json:"title"`
	PublicSummary     string                   `json:"publicSummary"`
	FullDescription   string                   `json:"fullDescription"`
	Category          string                   `json:"category"`
	Industry          string                   `json:"industry"`
	Stage             models.IdeaStage         `json:"stage"`
	Status            models.ModerationStatus  `json:"status"`
	Creator           *UserSummary             `json:"creator"`
	AccessRequests    []*AccessRequestResponse `json:"accessRequests"`
	ApprovedInvestors []*UserSummary           `json:"approvedInvestors"`
	Views             int                      `json:"views"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

func NewIdeaPublicResponse(idea *models.Idea) *IdeaPublicResponse {
	return &IdeaPublicResponse{
		ID:            idea.ID,
		Title:         idea.Title,
		PublicSummary: idea.PublicSummary,
		Category:      idea.Category,
		Industry:      idea.Industry,
		Stage:         idea.Stage,
		Creator:       NewUserSummaryWithRole(idea.Creator),
		CreatedAt:     idea.CreatedAt,
		Views:         len(idea.Views),
	}
}

func NewIdeaPublicResponses(ideas []models.Idea) []*IdeaPublicResponse {
	return lo.Map(ideas, func(i models.Idea, _ int) *IdeaPublicResponse { return NewIdeaPublicResponse(&i) })
}

func NewAccessRequestResponse(req *models.AccessRequest) *AccessRequestResponse {
	return &AccessRequestResponse{
		ID:          req.ID,
		IdeaID:      req.IdeaID,
		Investor:    NewUserSummary(req.Investor),
		Status:      req.Status,
		RequestedAt: req.RequestedAt,
	}
}

func NewIdeaResponse(idea *models.Idea) *IdeaResponse {
	return &IdeaResponse{
		ID:              idea.ID,
		Title:           idea.Title,
		PublicSummary:   idea.PublicSummary,
		FullDescription: idea.FullDescription,
		Category:        idea.Category,
		Industry:        idea.Industry,
		Stage:           idea.Stage,
		Status:          idea.Status,
		Creator:         NewUserSummaryWithRole(idea.Creator),
		AccessRequests: lo.Map(idea.AccessRequests, func(r models.AccessRequest, _ int) *AccessRequestResponse {
			return NewAccessRequestResponse(&r)
		}),
		ApprovedInvestors: lo.Map(idea.ApprovedInvestors, func(a models.ApprovedInvestor, _ int) *UserSummary {
			if a.Investor == nil {
				return &UserSummary{ID: a.InvestorID}
			}
			return NewUserSummary(a.Investor)
		}),
		Views:     len(idea.Views),
		CreatedAt: idea.CreatedAt,
		UpdatedAt: idea.UpdatedAt,
	}
}

func NewIdeaResponses(ideas []models.Idea) []*IdeaResponse {
	return lo.Map(ideas, func(i models.Idea, _ int) *IdeaResponse { return NewIdeaResponse(&i) })
}
