package dto

type TagDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type TechnologyDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// UserPreferencesDTO 用户偏好设置全貌
type UserPreferencesDTO struct {
	Tags            []*TagDTO        `json:"tags"`
	Technologies    []*TechnologyDTO `json:"technologies"`
	DifficultyLevel []int            `json:"difficulty_level"`
	EmailFrequency  string           `json:"email_frequency"`
}

// SaveTagPreferencesDTO 全量替换标签偏好请求
type SaveTagPreferencesDTO struct {
	TagIDs []uint64 `json:"tag_ids" binding:"max=50"`
}

// SaveTechnologyPreferencesDTO 全量替换技术栈偏好请求
type SaveTechnologyPreferencesDTO struct {
	TechnologyIDs []uint64 `json:"technology_ids" binding:"max=50"`
}

// SaveProfileDTO 难度偏好与邮件频率设置请求
type SaveProfileDTO struct {
	DifficultyLevel []int  `json:"difficulty_level" binding:"max=5,dive,min=1,max=5"`
	EmailFrequency  string `json:"email_frequency" binding:"required,oneof=daily weekly never"`
}
