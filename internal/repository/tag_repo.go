package repository

import (
	"CodeConnect/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	GetAll(ctx context.Context) ([]*model.Tag, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Tag, error)
	GetByNames(ctx context.Context, names []string) ([]*model.Tag, error)
	GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error)
	GetNamesByProjectIDs(ctx context.Context, projectIDs []uint64) ([]string, error)
	GetProjectTagsByTagIDs(ctx context.Context, tagIDs []uint64) ([]*model.ProjectTag, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

func (s *tagRepoImpl) GetAll(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagRepoImpl) GetByNames(ctx context.Context, names []string) ([]*model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagRepoImpl) GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error) {
	// 创建所有标签，使用 OnConflict DoNothing 避免重复创建
	for _, tagName := range tagNames {
		tag := model.Tag{
			Name:      tagName,
			CreatedAt: time.Now(),
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error
		if err != nil {
			return nil, err
		}
	}

	// 查询所有请求的标签
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Where("name IN ?", tagNames).Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// GetNamesByProjectIDs 获取一批项目关联的全部标签名，去重
func (s *tagRepoImpl) GetNamesByProjectIDs(ctx context.Context, projectIDs []uint64) ([]string, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var names []string
	err := s.db.WithContext(ctx).Model(&model.ProjectTag{}).
		Distinct("tags.name").
		Joins("JOIN tags ON tags.id = project_tags.tag_id").
		Where("project_tags.project_id IN ?", projectIDs).
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *tagRepoImpl) GetProjectTagsByTagIDs(ctx context.Context, tagIDs []uint64) ([]*model.ProjectTag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var rows []*model.ProjectTag
	err := s.db.WithContext(ctx).Where("tag_id IN ?", tagIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
