package apperrors

import (
	"fmt"
	"net/http"
)

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (400)
func ErrAlreadyExists(domain, field string) *AppError {
	return New(CodeAlreadyExists, domain, fmt.Sprintf("%s already exists", field), http.StatusBadRequest)
}

// ErrRoleNotAuthorized - роль пользователя не допущена к маршруту (403)
func ErrRoleNotAuthorized(role string) *AppError {
	return New(CodeForbidden, "auth", fmt.Sprintf("User role '%s' is not authorized to access this route", role), http.StatusForbidden)
}

// --- Аутентификация ---

var ErrNotAuthenticated = New(
	CodeUnauthorized,
	"auth",
	"Not authorized to access this route",
	http.StatusUnauthorized,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusUnauthorized,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid refresh token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeAccountSuspended,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrInvestorPendingApproval = New(
	CodeStandingRequired,
	"auth",
	"Your investor account is pending approval",
	http.StatusForbidden,
)

var ErrEmployerPendingVerification = New(
	CodeStandingRequired,
	"auth",
	"Your employer account is pending verification",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User already exists",
	http.StatusBadRequest,
)

var ErrAdminSelfRegistration = New(
	CodeForbidden,
	"auth",
	"Admin accounts cannot be self-registered",
	http.StatusForbidden,
)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

// --- Идеи ---

var ErrIdeaNotFound = New(CodeNotFound, "idea", "Idea not found", http.StatusNotFound)

var ErrIdeaAccessDenied = New(
	CodeForbidden,
	"idea",
	"You do not have access to view this idea",
	http.StatusForbidden,
)

var ErrIdeaUpdateForbidden = New(CodeForbidden, "idea", "Not authorized to update this idea", http.StatusForbidden)

var ErrIdeaDeleteForbidden = New(CodeForbidden, "idea", "Not authorized to delete this idea", http.StatusForbidden)

var ErrOnlyStudentsCreateIdeas = New(CodeForbidden, "idea", "Only students can submit ideas", http.StatusForbidden)

var ErrOnlyInvestorsRequestAccess = New(CodeForbidden, "idea", "Only investors can request access", http.StatusForbidden)

var ErrAccessRequestExists = New(CodeAlreadyExists, "idea", "Access request already exists", http.StatusBadRequest)

var ErrAlreadyHasAccess = New(CodeInvalidOperation, "idea", "You already have access to this idea", http.StatusBadRequest)

var ErrAccessRequestNotFound = New(CodeNotFound, "idea", "Access request not found", http.StatusNotFound)

var ErrAccessRequestUpdateForbidden = New(
	CodeForbidden,
	"idea",
	"Not authorized to manage access requests for this idea",
	http.StatusForbidden,
)

var ErrAccessRequestAlreadyDecided = New(
	CodeInvalidStatus,
	"idea",
	"Access request has already been decided",
	http.StatusBadRequest,
)

var ErrInvalidAccessRequestStatus = New(
	CodeInvalidStatus,
	"idea",
	"Please provide a valid status (approved or rejected)",
	http.StatusBadRequest,
)

// --- Вакансии и отклики ---

var ErrJobNotFound = New(CodeNotFound, "job", "Job not found", http.StatusNotFound)

var ErrOnlyEmployersCreateJobs = New(CodeForbidden, "job", "Only employers can create jobs", http.StatusForbidden)

var ErrJobUpdateForbidden = New(CodeForbidden, "job", "Not authorized to update this job", http.StatusForbidden)

var ErrJobDeleteForbidden = New(CodeForbidden, "job", "Not authorized to delete this job", http.StatusForbidden)

var ErrOnlyStudentsApply = New(CodeForbidden, "job", "Only students can apply to jobs", http.StatusForbidden)

var ErrJobNotOpen = New(CodeInvalidOperation, "job", "This job is not available for applications", http.StatusBadRequest)

var ErrResumeRequired = New(CodeValidationFailed, "job", "Please provide a resume", http.StatusBadRequest)

var ErrAlreadyApplied = New(CodeAlreadyExists, "job", "You have already applied to this job", http.StatusBadRequest)

var ErrApplicationsViewForbidden = New(
	CodeForbidden,
	"job",
	"Not authorized to view applications for this job",
	http.StatusForbidden,
)

var ErrApplicationNotFound = New(CodeNotFound, "job", "Application not found", http.StatusNotFound)

var ErrApplicationReviewForbidden = New(
	CodeForbidden,
	"job",
	"Not authorized to review applications for this job",
	http.StatusForbidden,
)

var ErrInvalidApplicationStatus = New(
	CodeInvalidStatus,
	"job",
	"Please provide a valid status (reviewed, accepted or rejected)",
	http.StatusBadRequest,
)

// --- Модерация ---

var ErrInvalidModerationStatus = New(
	CodeInvalidStatus,
	"admin",
	"Please provide a valid status (approved or rejected)",
	http.StatusBadRequest,
)

func ErrAlreadyModerated(kind string) *AppError {
	return New(CodeInvalidStatus, "admin", fmt.Sprintf("%s has already been moderated", kind), http.StatusBadRequest)
}

var ErrInvalidUserStatus = New(
	CodeInvalidStatus,
	"admin",
	"Please provide a valid status (active or suspended)",
	http.StatusBadRequest,
)

// --- Инфраструктура ---

var ErrRouteNotFound = New(CodeNotFound, "request", "Route not found", http.StatusNotFound)

var ErrStorageUnavailable = New(CodeDatabaseError, "system", "Storage unavailable", http.StatusServiceUnavailable)

var ErrTooManyRequests = New(
	CodeRateLimited,
	"request",
	"Too many requests from this IP, please try again later.",
	http.StatusTooManyRequests,
)
