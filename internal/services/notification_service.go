package services

import (
	"context"
	"fmt"

	"iblaze_backend/internal/email"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/models"
)

// NotificationService emails users about decisions taken on their behalf.
// Delivery failures are logged and never surface to the caller.
type NotificationService interface {
	AccountApproved(ctx context.Context, user *models.User)
	AccountVerified(ctx context.Context, user *models.User)
	AccessRequestDecided(ctx context.Context, investor *models.User, idea *models.Idea, status models.AccessRequestStatus)
	ApplicationReviewed(ctx context.Context, applicant *models.User, job *models.Job, status models.ApplicationStatus)
}

type NotificationServiceImpl struct {
	provider email.Provider
	renderer email.TemplateRenderer
}

func NewNotificationService(provider email.Provider, renderer email.TemplateRenderer) NotificationService {
	return &NotificationServiceImpl{
		provider: provider,
		renderer: renderer,
	}
}

func (s *NotificationServiceImpl) AccountApproved(ctx context.Context, user *models.User) {
	s.send(ctx, user, "Your iBLAZE investor account is approved", email.TemplateAccountApproved, email.TemplateData{
		"Name": user.Name,
	})
}

func (s *NotificationServiceImpl) AccountVerified(ctx context.Context, user *models.User) {
	s.send(ctx, user, "Your iBLAZE employer account is verified", email.TemplateAccountVerified, email.TemplateData{
		"Name": user.Name,
	})
}

func (s *NotificationServiceImpl) AccessRequestDecided(ctx context.Context, investor *models.User, idea *models.Idea, status models.AccessRequestStatus) {
	s.send(ctx, investor, fmt.Sprintf("Access request %s", status), email.TemplateAccessRequestDecided, email.TemplateData{
		"Name":      investor.Name,
		"IdeaTitle": idea.Title,
		"Status":    string(status),
	})
}

func (s *NotificationServiceImpl) ApplicationReviewed(ctx context.Context, applicant *models.User, job *models.Job, status models.ApplicationStatus) {
	s.send(ctx, applicant, fmt.Sprintf("Your application for %s", job.Title), email.TemplateApplicationReviewed, email.TemplateData{
		"Name":     applicant.Name,
		"JobTitle": job.Title,
		"Status":   string(status),
	})
}

func (s *NotificationServiceImpl) send(ctx context.Context, to *models.User, subject, template string, data email.TemplateData) {
	if to == nil || to.Email == "" {
		return
	}
	body, err := s.renderer.Render(template, data)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to render notification", err, "template", template)
		return
	}
	err = s.provider.Send(ctx, &email.Message{
		To:       []string{to.Email},
		Subject:  subject,
		HTMLBody: body,
	})
	if err != nil {
		logger.CtxWithError(ctx, "Failed to send notification", err, "template", template, "user_id", to.ID)
		return
	}
	logger.CtxDebug(ctx, "Notification sent", "template", template, "user_id", to.ID)
}
