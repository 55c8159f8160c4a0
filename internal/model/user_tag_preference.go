package model

type UserTagPreference struct {
	UserID uint64 `gorm:"primaryKey"`
	TagID  uint64 `gorm:"primaryKey;index:idx_tag_id"`
}

func (UserTagPreference) TableName() string {
	return "user_tag_preferences"
}
