package helpers

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/models"

	"github.com/stretchr/testify/require"
)

const DefaultPassword = "password123"

var emailSeq atomic.Int64

// UniqueEmail returns a fresh address for the given prefix.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, emailSeq.Add(1))
}

func Approved(u *models.User)  { u.IsApproved = true }
func Verified(u *models.User)  { u.IsVerified = true }
func Suspended(u *models.User) { u.Status = models.UserStatusSuspended }

// CreateUser stores a user directly, bypassing registration rules.
func CreateUser(t *testing.T, ts *TestServer, role models.UserRole, mutate ...func(*models.User)) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test " + string(role),
		Email:        UniqueEmail(string(role)),
		PasswordHash: hash,
		Role:         role,
	}
	user.ApplyRoleDefaults()
	for _, m := range mutate {
		m(user)
	}
	require.NoError(t, ts.Repos.Users.Create(context.Background(), user))
	return user
}

func Login(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var session struct {
		AccessToken string `json:"accessToken"`
	}
	DecodeData(t, body, &session)
	require.NotEmpty(t, session.AccessToken)
	return session.AccessToken
}

// CreateAndLoginUser returns an access token for a freshly stored user.
func CreateAndLoginUser(t *testing.T, ts *TestServer, role models.UserRole, mutate ...func(*models.User)) (string, *models.User) {
	t.Helper()
	user := CreateUser(t, ts, role, mutate...)
	return Login(t, ts, user.Email, DefaultPassword), user
}
