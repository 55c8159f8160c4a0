package model

import (
	"time"
)

const (
	InteractionTypeView int8 = 1
	InteractionTypeLike int8 = 2
)

// Interaction 用户与项目的交互记录，(user_id, project_id, interaction_type) 唯一
type Interaction struct {
	UserID          uint64    `gorm:"primaryKey" json:"userId"`
	ProjectID       uint64    `gorm:"primaryKey;index:idx_project_id" json:"projectId"`
	InteractionType int8      `gorm:"primaryKey" json:"interactionType"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// IsLike 是否为点赞行为
func (i *Interaction) IsLike() bool {
	return i.InteractionType == InteractionTypeLike
}
