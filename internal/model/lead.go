package model

import "time"

// Lead is a prospective customer card. Everything except ID and Stage is
// display payload that the board carries without looking at it. CreatedTime
// keeps the generator's text as is; feeds disagree on timestamp layouts.
type Lead struct {
	ID          int64     `gorm:"primaryKey" json:"Id"`
	Stage       Stage     `gorm:"column:leads_status;not null;index" json:"LeadsStatus"`
	AdName      string    `json:"AdName"`
	FullName    string    `json:"FullName"`
	PhoneNumber string    `json:"PhoneNumber"`
	Email       string    `json:"Email"`
	City        string    `json:"City"`
	Platform    string    `json:"Platform"`
	CreatedTime string    `gorm:"type:text" json:"CreatedTime"`
	UpdatedAt   time.Time `json:"-"`
}

// Platforms reported by the lead generator
const (
	PlatformInstagram = "ig"
	PlatformFacebook  = "fb"
)
