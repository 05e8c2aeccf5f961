package models

import "time"

type Idea struct {
	BaseModel
	Title           string           `gorm:"not null"`
	PublicSummary   string           `gorm:"not null"`
	FullDescription string           `gorm:"type:text;not null"`
	CreatorID       string           `gorm:"type:uuid;not null;index"`
	Category        string           `gorm:"not null"`
	Industry        string           `gorm:"not null"`
	Stage           IdeaStage        `gorm:"type:varchar(20);not null;default:'concept'"`
	Status          ModerationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`

	// Relations
	Creator           *User              `gorm:"foreignKey:CreatorID"`
	AccessRequests    []AccessRequest    `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE"`
	ApprovedInvestors []ApprovedInvestor `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE"`
	Views             []IdeaView         `gorm:"foreignKey:IdeaID;constraint:OnDelete:CASCADE"`
}

// AccessRequest is an investor's petition to read an idea's full description.
type AccessRequest struct {
	BaseModel
	IdeaID      string              `gorm:"type:uuid;not null;uniqueIndex:idx_access_request_idea_investor"`
	InvestorID  string              `gorm:"type:uuid;not null;uniqueIndex:idx_access_request_idea_investor"`
	Status      AccessRequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	RequestedAt time.Time           `gorm:"not null"`

	Investor *User `gorm:"foreignKey:InvestorID"`
}

type ApprovedInvestor struct {
	IdeaID     string    `gorm:"type:uuid;primaryKey"`
	InvestorID string    `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Investor *User `gorm:"foreignKey:InvestorID"`
}

// IdeaView records the first visit of a non-creator user.
type IdeaView struct {
	IdeaID   string    `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"type:uuid;primaryKey"`
	ViewedAt time.Time `gorm:"not null"`
}

func (i *Idea) IsCreator(userID string) bool {
	return i.CreatorID == userID
}

func (i *Idea) HasApprovedInvestor(userID string) bool {
	for _, a := range i.ApprovedInvestors {
		if a.InvestorID == userID {
			return true
		}
	}
	return false
}

func (i *Idea) FindAccessRequest(requestID string) *AccessRequest {
	for idx := range i.AccessRequests {
		if i.AccessRequests[idx].ID == requestID {
			return &i.AccessRequests[idx]
		}
	}
	return nil
}

func (i *Idea) HasAccessRequestFrom(investorID string) bool {
	for _, r := range i.AccessRequests {
		if r.InvestorID == investorID {
			return true
		}
	}
	return false
}

func (i *Idea) HasViewFrom(userID string) bool {
	for _, v := range i.Views {
		if v.UserID == userID {
			return true
		}
	}
	return false
}
