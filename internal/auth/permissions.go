package auth

import (
	"iblaze_backend/internal/models"
	"iblaze_backend/pkg/apperrors"

	"github.com/samber/lo"
)

type Resource string
type Action string

const (
	ResourceIdea          Resource = "idea"
	ResourceAccessRequest Resource = "access_request"
	ResourceJob           Resource = "job"
	ResourceApplication   Resource = "application"
	ResourceUser          Resource = "user"
	ResourceAnalytics     Resource = "analytics"
)

const (
	ActionList     Action = "list"
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionApply    Action = "apply"
	ActionReview   Action = "review"
	ActionModerate Action = "moderate"
)

// Rule is the outcome of the role stage of the gate.
type Rule int

const (
	// Deny is the zero value so anything missing from the table is refused.
	Deny Rule = iota
	Allow
	// AllowWithStanding additionally requires investor approval or employer verification.
	AllowWithStanding
	// AllowOwner lets the request through; the service must confirm ownership.
	AllowOwner
)

type Permission struct {
	Resource Resource
	Action   Action
}

type roleRules map[models.UserRole]Rule

var allRoles = []models.UserRole{
	models.UserRoleStudent, models.UserRoleInvestor, models.UserRoleEmployer, models.UserRoleAdmin,
}

func everyone(rule Rule) roleRules {
	return roleRules{
		models.UserRoleStudent:  rule,
		models.UserRoleInvestor: rule,
		models.UserRoleEmployer: rule,
		models.UserRoleAdmin:    Allow,
	}
}

func adminOnly() roleRules {
	return roleRules{models.UserRoleAdmin: Allow}
}

// Permissions is the role x resource x action table evaluated by the gate.
var Permissions = map[Permission]roleRules{
	{ResourceIdea, ActionList}:   everyone(Allow),
	{ResourceIdea, ActionRead}:   everyone(Allow),
	{ResourceIdea, ActionCreate}: {models.UserRoleStudent: Allow},
	{ResourceIdea, ActionUpdate}: everyone(AllowOwner),
	{ResourceIdea, ActionDelete}: everyone(AllowOwner),

	{ResourceAccessRequest, ActionCreate}: {models.UserRoleInvestor: AllowWithStanding},
	{ResourceAccessRequest, ActionReview}: everyone(AllowOwner),

	{ResourceJob, ActionList}:   everyone(Allow),
	{ResourceJob, ActionRead}:   everyone(Allow),
	{ResourceJob, ActionCreate}: {models.UserRoleEmployer: AllowWithStanding},
	{ResourceJob, ActionUpdate}: everyone(AllowOwner),
	{ResourceJob, ActionDelete}: everyone(AllowOwner),
	{ResourceJob, ActionApply}:  {models.UserRoleStudent: Allow},

	{ResourceApplication, ActionList}:   {models.UserRoleEmployer: AllowOwner, models.UserRoleAdmin: Allow},
	{ResourceApplication, ActionReview}: {models.UserRoleEmployer: AllowOwner, models.UserRoleAdmin: Allow},

	{ResourceUser, ActionList}:      adminOnly(),
	{ResourceUser, ActionUpdate}:    adminOnly(),
	{ResourceIdea, ActionModerate}:  adminOnly(),
	{ResourceJob, ActionModerate}:   adminOnly(),
	{ResourceAnalytics, ActionRead}: adminOnly(),
}

func RuleFor(role models.UserRole, resource Resource, action Action) Rule {
	rules, ok := Permissions[Permission{resource, action}]
	if !ok {
		return Deny
	}
	return rules[role]
}

// RolesFor lists the roles that pass the role stage for the permission.
func RolesFor(resource Resource, action Action) []models.UserRole {
	return lo.Filter(allRoles, func(role models.UserRole, _ int) bool {
		return RuleFor(role, resource, action) != Deny
	})
}

// Authorize runs the standing and role stages for an already authenticated user.
// A suspended account fails before anything else, whatever its role.
func Authorize(user *models.User, resource Resource, action Action) error {
	if user == nil {
		return apperrors.ErrNotAuthenticated
	}
	if user.IsSuspended() {
		return apperrors.ErrUserSuspended
	}

	switch RuleFor(user.Role, resource, action) {
	case Allow, AllowOwner:
		return nil
	case AllowWithStanding:
		return RequireStanding(user)
	default:
		return apperrors.ErrRoleNotAuthorized(string(user.Role))
	}
}

// RequireStanding fails for unapproved investors and unverified employers.
func RequireStanding(user *models.User) error {
	if user.HasStanding() {
		return nil
	}
	if user.Role == models.UserRoleInvestor {
		return apperrors.ErrInvestorPendingApproval
	}
	return apperrors.ErrEmployerPendingVerification
}

// CanMutate is the ownership condition behind AllowOwner.
func CanMutate(user *models.User, ownerID string) bool {
	return user != nil && (user.Role == models.UserRoleAdmin || user.ID == ownerID)
}

func IsAdmin(user *models.User) bool {
	return user != nil && user.Role == models.UserRoleAdmin
}
