package service

import (
	"CodeConnect/internal/api/dto"
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/consts"
	"CodeConnect/internal/pkg/redis"
	"CodeConnect/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
)

const cacheExpiration = 7 * 24 * time.Hour

// ProjectActionService 浏览、点赞与评论，浏览和点赞同时作为推荐引擎的交互信号
type ProjectActionService interface {
	RecordView(ctx context.Context, userID, projectID uint64) error
	RecordLike(ctx context.Context, userID, projectID uint64) error
	RemoveLike(ctx context.Context, userID, projectID uint64) error
	IsLiked(ctx context.Context, userID, projectID uint64) (bool, error)
	GetLikeCount(ctx context.Context, projectID uint64) (int64, error)
	GetViewCount(ctx context.Context, projectID uint64) (int64, error)

	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetComments(ctx context.Context, projectID uint64, page, pageSize int) (*dto.CommentListDTO, error)
	GetCommentCount(ctx context.Context, projectID uint64) (int64, error)
}

type projectActionServiceImpl struct {
	interactionRepo repository.InteractionRepo
	projectRepo     repository.ProjectRepo
	commentRepo     repository.CommentRepo
}

func NewProjectActionService(
	interactionRepo repository.InteractionRepo,
	projectRepo repository.ProjectRepo,
	commentRepo repository.CommentRepo,
) ProjectActionService {
	return &projectActionServiceImpl{
		interactionRepo: interactionRepo,
		projectRepo:     projectRepo,
		commentRepo:     commentRepo,
	}
}

// RecordView 幂等记录浏览，重复浏览只刷新时间戳
func (s *projectActionServiceImpl) RecordView(ctx context.Context, userID, projectID uint64) error {
	return s.performAction(ctx, projectID, func() error {
		return s.interactionRepo.Upsert(ctx, &model.Interaction{
			UserID:          userID,
			ProjectID:       projectID,
			InteractionType: model.InteractionTypeView,
			CreatedAt:       time.Now(),
		})
	}, consts.ProjectViewKey)
}

func (s *projectActionServiceImpl) RecordLike(ctx context.Context, userID, projectID uint64) error {
	return s.performAction(ctx, projectID, func() error {
		return s.interactionRepo.Upsert(ctx, &model.Interaction{
			UserID:          userID,
			ProjectID:       projectID,
			InteractionType: model.InteractionTypeLike,
			CreatedAt:       time.Now(),
		})
	}, consts.ProjectLikeKey)
}

// RemoveLike 取消点赞，不存在点赞记录时同样成功
func (s *projectActionServiceImpl) RemoveLike(ctx context.Context, userID, projectID uint64) error {
	return s.performAction(ctx, projectID, func() error {
		return s.interactionRepo.DeleteLike(ctx, userID, projectID)
	}, consts.ProjectLikeKey)
}

func (s *projectActionServiceImpl) IsLiked(ctx context.Context, userID, projectID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.interactionRepo.CheckLikeExists(ctx, userID, projectID)
}

func (s *projectActionServiceImpl) GetLikeCount(ctx context.Context, projectID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.ProjectLikeKey, projectID, func() (int64, error) {
		return s.interactionRepo.GetLikeCountByProjectID(ctx, projectID)
	})
}

func (s *projectActionServiceImpl) GetViewCount(ctx context.Context, projectID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.ProjectViewKey, projectID, func() (int64, error) {
		return s.interactionRepo.GetViewCountByProjectID(ctx, projectID)
	})
}

func (s *projectActionServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil || project == nil || project.Status != consts.ProjectStatusNormal {
		return ErrProjectNotFound
	}
	if err := s.commentRepo.Create(ctx, &model.Comment{
		ProjectID: req.ProjectID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.ProjectCommentKey+strconv.FormatUint(req.ProjectID, 10))
	return nil
}

func (s *projectActionServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil || comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.ProjectCommentKey+strconv.FormatUint(comment.ProjectID, 10))
	return nil
}

func (s *projectActionServiceImpl) GetComments(ctx context.Context, projectID uint64, page, pageSize int) (*dto.CommentListDTO, error) {
	comments, err := s.commentRepo.GetByProjectID(ctx, projectID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.GetCommentCount(ctx, projectID)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		item := &dto.CommentDTO{}
		_ = copier.Copy(item, c)
		if c.User.ID > 0 {
			item.Username = c.User.Username
			item.AvatarURL = c.User.AvatarURL
		}
		item.CreatedAt = c.CreatedAt.Format("2006-01-02 15:04:05")
		list = append(list, item)
	}
	return &dto.CommentListDTO{List: list, Total: total}, nil
}

func (s *projectActionServiceImpl) GetCommentCount(ctx context.Context, projectID uint64) (int64, error) {
	return s.cachedCount(ctx, consts.ProjectCommentKey, projectID, func() (int64, error) {
		return s.commentRepo.CountByProjectID(ctx, projectID)
	})
}

// performAction 校验项目存在后执行写操作，并让对应计数缓存失效
func (s *projectActionServiceImpl) performAction(ctx context.Context, projectID uint64, repoFunc func() error, countKey string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil || project == nil || project.Status != consts.ProjectStatusNormal {
		return ErrProjectNotFound
	}
	if err := repoFunc(); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, countKey+strconv.FormatUint(projectID, 10))
	return nil
}

func (s *projectActionServiceImpl) cachedCount(ctx context.Context, keyPrefix string, projectID uint64, dbFunc func() (int64, error)) (int64, error) {
	key := keyPrefix + strconv.FormatUint(projectID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := dbFunc()
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}
