package handlers

// AppHandlers holds every HTTP handler of the API.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	IdeaHandler   *IdeaHandler
	JobHandler    *JobHandler
	AdminHandler  *AdminHandler
	HealthHandler *HealthHandler
}
