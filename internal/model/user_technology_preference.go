package model

type UserTechnologyPreference struct {
	UserID       uint64 `gorm:"primaryKey"`
	TechnologyID uint64 `gorm:"primaryKey;index:idx_technology_id"`
}

func (UserTechnologyPreference) TableName() string {
	return "user_technology_preferences"
}
