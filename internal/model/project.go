package model

import (
	"time"
)

type Project struct {
	ID              uint64   `gorm:"primaryKey"`
	UserID          uint64   `gorm:"not null;index:idx_user_id" json:"user_id"`
	RepoName        string   `gorm:"type:varchar(255);not null;uniqueIndex:idx_repo,priority:2" json:"repo_name"`
	RepoOwner       string   `gorm:"type:varchar(255);not null;uniqueIndex:idx_repo,priority:1" json:"repo_owner"`
	Description     string   `gorm:"type:text" json:"description"`
	DifficultyLevel IntSlice `gorm:"type:json" json:"difficulty_level"`
	Stars           int      `gorm:"not null;default:0" json:"stars"`
	Language        string   `gorm:"type:varchar(64)" json:"language"`
	Status          int8     `gorm:"not null;default:1" json:"status"` // 1:正常, 2:下架
	WebhookActive   bool     `gorm:"type:tinyint(1);not null;default:0" json:"webhook_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// 关联关系
	User         User         `gorm:"foreignKey:UserID;references:ID"`
	Tags         []Tag        `gorm:"many2many:project_tags;"`
	Technologies []Technology `gorm:"many2many:project_technologies;"`
}

func (Project) TableName() string {
	return "projects"
}
