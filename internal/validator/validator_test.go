package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"omitempty,is-user-role"`
	Stage    *string `json:"stage" validate:"omitempty,is-idea-stage"`
	JobType  string  `json:"jobType" validate:"omitempty,is-job-type"`
	WorkMode string  `json:"workMode" validate:"omitempty,is-work-mode"`
	Status   string  `json:"status" validate:"omitempty,is-user-status"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&sample{Role: "wizard"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors["role"], "student")
	assert.Equal(t, []string{
		"email: This field is required",
		"role: Must be one of: student, investor, employer, admin",
	}, vErr.Messages())
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()
	stage := "mvp"
	badStage := "unicorn"

	assert.NoError(t, v.Validate(&sample{
		Email: "a@b.co", Role: "investor", Stage: &stage, JobType: "full-time", WorkMode: "hybrid", Status: "suspended",
	}))

	err := v.Validate(&sample{Email: "a@b.co", Stage: &badStage, JobType: "gig", WorkMode: "space", Status: "banned"})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Len(t, vErr.Errors, 4)
	assert.Contains(t, vErr.Errors, "stage")
	assert.Contains(t, vErr.Errors, "jobType")
	assert.Contains(t, vErr.Errors, "workMode")
	assert.Contains(t, vErr.Errors, "status")
}
