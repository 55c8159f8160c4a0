package repository

import (
	"CodeConnect/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionRepo interface {
	GetByUser(ctx context.Context, userID uint64) ([]*model.Interaction, error)
	Upsert(ctx context.Context, interaction *model.Interaction) error
	DeleteLike(ctx context.Context, userID, projectID uint64) error
	CheckLikeExists(ctx context.Context, userID, projectID uint64) (bool, error)
	GetLikeCountByProjectID(ctx context.Context, projectID uint64) (int64, error)
	GetViewCountByProjectID(ctx context.Context, projectID uint64) (int64, error)
	GetByProjectIDs(ctx context.Context, projectIDs []uint64, excludeUserID uint64) ([]*model.Interaction, error)
	GetByUserIDs(ctx context.Context, userIDs []uint64) ([]*model.Interaction, error)
	GetSince(ctx context.Context, since time.Time) ([]*model.Interaction, error)
}

type interactionRepoImpl struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepo {
	return &interactionRepoImpl{db: db}
}

func (r *interactionRepoImpl) GetByUser(ctx context.Context, userID uint64) ([]*model.Interaction, error) {
	var interactions []*model.Interaction
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

// Upsert 按 (user_id, project_id, interaction_type) 幂等写入，冲突时仅刷新时间戳
func (r *interactionRepoImpl) Upsert(ctx context.Context, interaction *model.Interaction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "project_id"}, {Name: "interaction_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"created_at"}),
	}).Create(interaction).Error
}

// DeleteLike 取消点赞，记录不存在时不视为错误
func (r *interactionRepoImpl) DeleteLike(ctx context.Context, userID, projectID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ? AND interaction_type = ?", userID, projectID, model.InteractionTypeLike).
		Delete(&model.Interaction{}).Error
}

func (r *interactionRepoImpl) CheckLikeExists(ctx context.Context, userID, projectID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Where("user_id = ? AND project_id = ? AND interaction_type = ?", userID, projectID, model.InteractionTypeLike).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *interactionRepoImpl) GetLikeCountByProjectID(ctx context.Context, projectID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Where("project_id = ? AND interaction_type = ?", projectID, model.InteractionTypeLike).
		Count(&count).Error
	return count, err
}

func (r *interactionRepoImpl) GetViewCountByProjectID(ctx context.Context, projectID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Where("project_id = ? AND interaction_type = ?", projectID, model.InteractionTypeView).
		Count(&count).Error
	return count, err
}

// GetByProjectIDs 获取其他用户在给定项目上的交互，用于寻找相似用户
func (r *interactionRepoImpl) GetByProjectIDs(ctx context.Context, projectIDs []uint64, excludeUserID uint64) ([]*model.Interaction, error) {
	var interactions []*model.Interaction
	err := r.db.WithContext(ctx).
		Where("project_id IN ? AND user_id <> ?", projectIDs, excludeUserID).
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *interactionRepoImpl) GetByUserIDs(ctx context.Context, userIDs []uint64) ([]*model.Interaction, error) {
	var interactions []*model.Interaction
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *interactionRepoImpl) GetSince(ctx context.Context, since time.Time) ([]*model.Interaction, error) {
	var interactions []*model.Interaction
	err := r.db.WithContext(ctx).Where("created_at >= ?", since).Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}
