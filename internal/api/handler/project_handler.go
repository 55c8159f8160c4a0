package handler

import (
	"CodeConnect/internal/api/dto"
	"CodeConnect/internal/pkg/response"
	"CodeConnect/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
	actionSvc  service.ProjectActionService
}

func NewProjectHandler(projectSvc service.ProjectService, actionSvc service.ProjectActionService) *ProjectHandler {
	return &ProjectHandler{
		projectSvc: projectSvc,
		actionSvc:  actionSvc,
	}
}

// CreateProject 发布项目
func (s *ProjectHandler) CreateProject(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.ProjectCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	project, err := s.projectSvc.CreateProject(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// GetProject 项目详情，登录用户的访问记为一次浏览交互
func (s *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	ctx := c.Request.Context()
	detail, err := s.projectSvc.GetProject(ctx, userID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if userID > 0 && detail.UserID != userID {
		_ = s.actionSvc.RecordView(ctx, userID, projectID)
	}
	response.Success(c, detail)
}

// ListProjects 项目列表，支持按标签或技术栈名过滤
func (s *ProjectHandler) ListProjects(c *gin.Context) {
	page, pageSize := parsePage(c)
	list, err := s.projectSvc.ListProjects(c.Request.Context(), c.Query("tag"), c.Query("technology"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// UpdateProject 更新项目描述、难度与关联
func (s *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.ProjectUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.projectSvc.UpdateProject(c.Request.Context(), userID, projectID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteProject 下架项目
func (s *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err := s.projectSvc.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parsePage(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
