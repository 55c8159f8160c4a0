package handler

import (
	"CodeConnect/internal/api/dto"
	"CodeConnect/internal/pkg/response"
	"CodeConnect/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type ProjectActionHandler struct {
	actionSvc service.ProjectActionService
}

func NewProjectActionHandler(actionSvc service.ProjectActionService) *ProjectActionHandler {
	return &ProjectActionHandler{
		actionSvc: actionSvc,
	}
}

// LikeProject 点赞/取消点赞项目
func (s *ProjectActionHandler) LikeProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")
	var req dto.ProjectActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if req.Action == 1 {
		err = s.actionSvc.RecordLike(c.Request.Context(), userID, projectID)
	} else {
		err = s.actionSvc.RemoveLike(c.Request.Context(), userID, projectID)
	}

	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetProjectActionState 获取项目详情页的交互状态
func (s *ProjectActionHandler) GetProjectActionState(c *gin.Context) {
	userID := c.GetUint64("user_id")
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	ctx := c.Request.Context()
	state := &dto.ProjectActionStateDTO{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		state.LikeCount, _ = s.actionSvc.GetLikeCount(gCtx, projectID)
		return nil
	})
	g.Go(func() error {
		state.ViewCount, _ = s.actionSvc.GetViewCount(gCtx, projectID)
		return nil
	})
	g.Go(func() error {
		state.CommentCount, _ = s.actionSvc.GetCommentCount(gCtx, projectID)
		return nil
	})
	g.Go(func() error {
		if userID > 0 {
			state.IsLiked, _ = s.actionSvc.IsLiked(gCtx, userID, projectID)
		}
		return nil
	})

	_ = g.Wait()
	response.Success(c, state)
}

// CreateComment 发表评论
func (s *ProjectActionHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.actionSvc.CreateComment(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteComment 删除自己的评论
func (s *ProjectActionHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err := s.actionSvc.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetComments 分页获取项目评论
func (s *ProjectActionHandler) GetComments(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := parsePage(c)

	list, err := s.actionSvc.GetComments(c.Request.Context(), projectID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
