package services

import (
	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/repositories"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	IdeaService         IdeaService
	JobService          JobService
	AdminService        AdminService
	NotificationService NotificationService
}

func NewServiceContainer(repos *repositories.Repositories, tokens *auth.TokenManager, notifier NotificationService) *ServiceContainer {
	return &ServiceContainer{
		AuthService:         NewAuthService(repos.Users, tokens),
		IdeaService:         NewIdeaService(repos.Ideas, notifier),
		JobService:          NewJobService(repos.Jobs, repos.Applications, notifier),
		AdminService:        NewAdminService(repos, notifier),
		NotificationService: notifier,
	}
}
