package models

type UserStatus string
type UserRole string
type IdeaStage string
type ModerationStatus string
type AccessRequestStatus string
type JobType string
type WorkMode string
type ApplicationStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleStudent  UserRole = "student"
	UserRoleInvestor UserRole = "investor"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	IdeaStageConcept   IdeaStage = "concept"
	IdeaStagePrototype IdeaStage = "prototype"
	IdeaStageMVP       IdeaStage = "mvp"
	IdeaStageScaling   IdeaStage = "scaling"

	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"

	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestRejected AccessRequestStatus = "rejected"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"

	WorkModeRemote WorkMode = "remote"
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleStudent, UserRoleInvestor, UserRoleEmployer, UserRoleAdmin:
		return true
	}
	return false
}

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusSuspended
}

func (s IdeaStage) Valid() bool {
	switch s {
	case IdeaStageConcept, IdeaStagePrototype, IdeaStageMVP, IdeaStageScaling:
		return true
	}
	return false
}

// IsDecision reports whether s is a final moderation outcome.
func (s ModerationStatus) IsDecision() bool {
	return s == ModerationApproved || s == ModerationRejected
}

func (s AccessRequestStatus) IsDecision() bool {
	return s == AccessRequestApproved || s == AccessRequestRejected
}

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract:
		return true
	}
	return false
}

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeRemote, WorkModeOnsite, WorkModeHybrid:
		return true
	}
	return false
}

// IsReviewOutcome reports whether s can be set by a reviewer.
func (s ApplicationStatus) IsReviewOutcome() bool {
	switch s {
	case ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}
