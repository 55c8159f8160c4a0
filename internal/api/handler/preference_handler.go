package handler

import (
	"CodeConnect/internal/api/dto"
	"CodeConnect/internal/pkg/response"
	"CodeConnect/internal/service"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	preferenceSvc service.PreferenceService
}

func NewPreferenceHandler(preferenceSvc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceSvc: preferenceSvc,
	}
}

// GetAllTags 标签词表
func (s *PreferenceHandler) GetAllTags(c *gin.Context) {
	tags, err := s.preferenceSvc.GetAllTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}

// GetAllTechnologies 技术栈词表
func (s *PreferenceHandler) GetAllTechnologies(c *gin.Context) {
	techs, err := s.preferenceSvc.GetAllTechnologies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, techs)
}

// GetPreferences 当前用户的偏好全貌
func (s *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID := c.GetUint64("user_id")
	prefs, err := s.preferenceSvc.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prefs)
}

// SaveTagPreferences 全量替换标签偏好
func (s *PreferenceHandler) SaveTagPreferences(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.SaveTagPreferencesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.preferenceSvc.SaveTagPreferences(c.Request.Context(), userID, req.TagIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SaveTechnologyPreferences 全量替换技术栈偏好
func (s *PreferenceHandler) SaveTechnologyPreferences(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.SaveTechnologyPreferencesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.preferenceSvc.SaveTechnologyPreferences(c.Request.Context(), userID, req.TechnologyIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SaveProfile 保存难度偏好与邮件频率
func (s *PreferenceHandler) SaveProfile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.SaveProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.preferenceSvc.SaveProfile(c.Request.Context(), userID, req.DifficultyLevel, req.EmailFrequency); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
