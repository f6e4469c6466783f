package model

import (
	"time"

	"github.com/google/uuid"
)

// StageUpdate is the outbound request persisting a lead's new stage.
type StageUpdate struct {
	LeadID int64  `json:"LeadId" binding:"required"`
	Stage  Stage  `json:"LeadsStatus"`
	UserID string `json:"UserID"`
}

// StageTransition is the audit row written for every persisted stage change.
type StageTransition struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	LeadID    int64     `gorm:"not null;index"`
	FromStage Stage     `gorm:"not null"`
	ToStage   Stage     `gorm:"not null"`
	UserID    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Lead Lead `gorm:"foreignKey:LeadID"`
}
