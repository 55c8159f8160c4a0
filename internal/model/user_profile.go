package model

import "time"

const (
	EmailFrequencyDaily  = "daily"
	EmailFrequencyWeekly = "weekly"
	EmailFrequencyNever  = "never"
)

// UserProfile 用户的显式难度偏好与邮件订阅频率
type UserProfile struct {
	UserID          uint64    `gorm:"primaryKey" json:"user_id"`
	DifficultyLevel IntSlice  `gorm:"type:json" json:"difficulty_level"`
	EmailFrequency  string    `gorm:"type:varchar(16);not null;default:'never'" json:"email_frequency"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
