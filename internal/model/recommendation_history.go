package model

import "time"

const (
	RecommendationContextWeb   = "web"
	RecommendationContextEmail = "email"
)

// RecommendationHistory 推荐发送日志，仅追加，用于邮件去重窗口
type RecommendationHistory struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_sent,priority:1" json:"userId"`
	ProjectID uint64    `gorm:"not null" json:"projectId"`
	SentAt    time.Time `gorm:"not null;index:idx_user_sent,priority:2" json:"sentAt"`
	Context   string    `gorm:"type:varchar(16);not null" json:"context"`
}

func (RecommendationHistory) TableName() string {
	return "recommendation_history"
}
