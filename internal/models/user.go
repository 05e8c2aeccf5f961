package models

type User struct {
	BaseModel
	Name         string     `gorm:"not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'student';index"`
	IsApproved   bool       `gorm:"not null;default:false"`
	IsVerified   bool       `gorm:"not null;default:false"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`

	// Only one refresh token is valid per user; issuing a new one replaces it.
	RefreshToken *string `gorm:"type:text"`
}

// IsSuspended reports whether the account is blocked from every protected route.
func (u *User) IsSuspended() bool {
	return u.Status == UserStatusSuspended
}

// HasStanding reports whether the role-specific gate flag is set.
// Roles without a flag always have standing.
func (u *User) HasStanding() bool {
	switch u.Role {
	case UserRoleInvestor:
		return u.IsApproved
	case UserRoleEmployer:
		return u.IsVerified
	default:
		return true
	}
}

// ApplyRoleDefaults sets approval flags at registration time.
func (u *User) ApplyRoleDefaults() {
	if u.Role == "" {
		u.Role = UserRoleStudent
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
	autoApproved := u.Role == UserRoleStudent || u.Role == UserRoleAdmin
	u.IsApproved = autoApproved
	u.IsVerified = autoApproved
}
