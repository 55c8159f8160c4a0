package model

import "time"

type Technology struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_technology_name"`
	CreatedAt time.Time
}

func (Technology) TableName() string {
	return "technologies"
}
