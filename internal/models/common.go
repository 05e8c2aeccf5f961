package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate assigns the UUID on the client side so every storage backend
// sees the same identifiers.
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	m.EnsureID()
	return nil
}

// EnsureID fills ID and CreatedAt when they are still empty.
func (m *BaseModel) EnsureID() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
}

// IsValidID reports whether id looks like something BaseModel could have produced.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
