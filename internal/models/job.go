package models

import "gorm.io/datatypes"

type Job struct {
	BaseModel
	Title          string                      `gorm:"not null"`
	Description    string                      `gorm:"type:text;not null"`
	EmployerID     string                      `gorm:"type:uuid;not null;index"`
	JobType        JobType                     `gorm:"type:varchar(20);not null"`
	Location       string                      `gorm:"not null"`
	WorkMode       WorkMode                    `gorm:"type:varchar(20);not null"`
	Duration       string
	Stipend        string                      `gorm:"not null"`
	SkillsRequired datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status         ModerationStatus            `gorm:"type:varchar(20);not null;default:'pending';index"`

	Employer *User `gorm:"foreignKey:EmployerID"`
}

type Application struct {
	BaseModel
	JobID        string            `gorm:"type:uuid;not null;uniqueIndex:idx_application_job_applicant"`
	ApplicantID  string            `gorm:"type:uuid;not null;uniqueIndex:idx_application_job_applicant"`
	Resume       string            `gorm:"not null"`
	CoverLetter  string
	Status       ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ReviewedByID *string           `gorm:"type:uuid"`

	// Relations
	Job        *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	Applicant  *User `gorm:"foreignKey:ApplicantID"`
	ReviewedBy *User `gorm:"foreignKey:ReviewedByID"`
}

func (j *Job) IsCreator(userID string) bool {
	return j.EmployerID == userID
}
