package model

type ProjectTag struct {
	ProjectID     uint64 `gorm:"primaryKey" json:"projectId"`
	TagID         uint64 `gorm:"primaryKey;index:idx_tag_id" json:"tagId"`
	IsHighlighted bool   `gorm:"type:tinyint(1);not null;default:0" json:"isHighlighted"`
}

func (ProjectTag) TableName() string {
	return "project_tags"
}
