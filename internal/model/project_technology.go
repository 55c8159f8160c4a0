package model

type ProjectTechnology struct {
	ProjectID     uint64 `gorm:"primaryKey" json:"projectId"`
	TechnologyID  uint64 `gorm:"primaryKey;index:idx_technology_id" json:"technologyId"`
	IsHighlighted bool   `gorm:"type:tinyint(1);not null;default:0" json:"isHighlighted"`
}

func (ProjectTechnology) TableName() string {
	return "project_technologies"
}
