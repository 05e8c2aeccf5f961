package database

import (
	"context"
	"errors"
	"fmt"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/repositories"
)

// DemoUser is a seeded account with its plain password, for printing credentials.
type DemoUser struct {
	Name       string
	Email      string
	Password   string
	Role       models.UserRole
	IsApproved bool
	IsVerified bool
}

var DemoUsers = []DemoUser{
	{"Student User", "student@test.com", "student123", models.UserRoleStudent, true, true},
	{"Investor User", "investor@test.com", "investor123", models.UserRoleInvestor, true, true},
	{"Employer User", "employer@test.com", "employer123", models.UserRoleEmployer, true, true},
	{"Admin User", "admin@test.com", "admin123", models.UserRoleAdmin, true, true},
	{"John Student", "john.student@test.com", "password123", models.UserRoleStudent, true, true},
	// Left pending so the admin queues have something in them.
	{"Sarah Investor", "sarah.investor@test.com", "password123", models.UserRoleInvestor, false, true},
	{"Tech Company", "hr@techcompany.test", "password123", models.UserRoleEmployer, true, false},
}

// ErrAlreadySeeded is returned when the first demo account already exists.
var ErrAlreadySeeded = errors.New("demo data already present")

// Seed inserts the demo accounts, ideas and jobs through the repositories, so it
// works for every storage driver.
func Seed(ctx context.Context, repos *repositories.Repositories) error {
	if _, err := repos.Users.FindByEmail(ctx, DemoUsers[0].Email); err == nil {
		return ErrAlreadySeeded
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("check demo data: %w", err)
	}

	users := make(map[string]*models.User, len(DemoUsers))
	for _, d := range DemoUsers {
		hash, err := auth.HashPassword(d.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", d.Email, err)
		}
		u := &models.User{
			Name:         d.Name,
			Email:        d.Email,
			PasswordHash: hash,
			Role:         d.Role,
			IsApproved:   d.IsApproved,
			IsVerified:   d.IsVerified,
			Status:       models.UserStatusActive,
		}
		if err := repos.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("create %s: %w", d.Email, err)
		}
		users[d.Email] = u
		logger.CtxInfo(ctx, "Seeded user", "email", u.Email, "role", u.Role)
	}

	student := users["student@test.com"]
	for _, idea := range demoIdeas(student.ID) {
		if err := repos.Ideas.Create(ctx, idea); err != nil {
			return fmt.Errorf("create idea %q: %w", idea.Title, err)
		}
		logger.CtxInfo(ctx, "Seeded idea", "title", idea.Title, "status", idea.Status)
	}

	employer := users["employer@test.com"]
	for _, job := range demoJobs(employer.ID) {
		if err := repos.Jobs.Create(ctx, job); err != nil {
			return fmt.Errorf("create job %q: %w", job.Title, err)
		}
		logger.CtxInfo(ctx, "Seeded job", "title", job.Title, "status", job.Status)
	}
	return nil
}

func demoIdeas(creatorID string) []*models.Idea {
	return []*models.Idea{
		{
			Title:           "AI-Powered Study Assistant",
			PublicSummary:   "An intelligent study companion that helps students learn more effectively using AI",
			FullDescription: "Personalized study plans, generated practice questions and instant explanations that adapt to each student's pace.",
			CreatorID:       creatorID,
			Category:        "Education",
			Industry:        "EdTech",
			Stage:           models.IdeaStagePrototype,
			Status:          models.ModerationApproved,
		},
		{
			Title:           "EcoTrack - Carbon Footprint Tracker",
			PublicSummary:   "Mobile app to track and reduce your personal carbon footprint",
			FullDescription: "Daily activity tracking with emission estimates, community challenges and an offset marketplace.",
			CreatorID:       creatorID,
			Category:        "Sustainability",
			Industry:        "GreenTech",
			Stage:           models.IdeaStageMVP,
			Status:          models.ModerationApproved,
		},
		{
			Title:           "HealthBridge - Telemedicine Platform",
			PublicSummary:   "Connecting patients with healthcare providers through secure video consultations",
			FullDescription: "Remote consultations, prescription management and encrypted health records.",
			CreatorID:       creatorID,
			Category:        "Healthcare",
			Industry:        "HealthTech",
			Stage:           models.IdeaStageConcept,
			Status:          models.ModerationPending,
		},
	}
}

func demoJobs(employerID string) []*models.Job {
	return []*models.Job{
		{
			Title:          "Frontend Developer Intern",
			Description:    "Build responsive web applications with React and modern JavaScript.",
			EmployerID:     employerID,
			JobType:        models.JobTypeInternship,
			Location:       "Mumbai, India",
			WorkMode:       models.WorkModeHybrid,
			Duration:       "3 months",
			Stipend:        "15,000 - 20,000 INR/month",
			SkillsRequired: []string{"React", "JavaScript", "HTML", "CSS", "Git"},
			Status:         models.ModerationApproved,
		},
		{
			Title:          "Full Stack Developer",
			Description:    "Build scalable web applications for an early stage startup.",
			EmployerID:     employerID,
			JobType:        models.JobTypeFullTime,
			Location:       "Bangalore, India",
			WorkMode:       models.WorkModeRemote,
			Duration:       "Permanent",
			Stipend:        "6-8 LPA",
			SkillsRequired: []string{"PostgreSQL", "Go", "React", "REST API"},
			Status:         models.ModerationApproved,
		},
		{
			Title:          "UI/UX Design Intern",
			Description:    "Design intuitive interfaces for our mobile and web applications.",
			EmployerID:     employerID,
			JobType:        models.JobTypeInternship,
			Location:       "Delhi, India",
			WorkMode:       models.WorkModeRemote,
			Duration:       "6 months",
			Stipend:        "10,000 - 15,000 INR/month",
			SkillsRequired: []string{"Figma", "User Research", "Prototyping"},
			Status:         models.ModerationPending,
		},
	}
}
