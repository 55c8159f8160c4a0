package repository

import (
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, project *model.Project, tags []*model.ProjectTag, technologies []*model.ProjectTechnology) error
	GetByID(ctx context.Context, id uint64) (*model.Project, error)
	GetActiveByIDs(ctx context.Context, ids []uint64, excludeOwnerID uint64) ([]*model.Project, error)
	List(ctx context.Context, tagName, technologyName string, limit, offset int) ([]*model.Project, error)
	Update(ctx context.Context, project *model.Project, tags []*model.ProjectTag, technologies []*model.ProjectTechnology) error
	Delete(ctx context.Context, id uint64) error
}

type projectRepoImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepo {
	return &projectRepoImpl{
		db: db,
	}
}

func (s *projectRepoImpl) Create(ctx context.Context, project *model.Project, tags []*model.ProjectTag, technologies []*model.ProjectTechnology) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Technologies").Create(project).Error; err != nil {
			return err
		}
		for _, t := range tags {
			t.ProjectID = project.ID
		}
		for _, t := range technologies {
			t.ProjectID = project.ID
		}
		if len(tags) > 0 {
			if err := tx.Create(tags).Error; err != nil {
				return err
			}
		}
		if len(technologies) > 0 {
			if err := tx.Create(technologies).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *projectRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Tags").Preload("Technologies").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// GetActiveByIDs 批量获取可推荐的项目：webhook 激活、状态正常、排除请求者自己发布的
func (s *projectRepoImpl) GetActiveByIDs(ctx context.Context, ids []uint64, excludeOwnerID uint64) ([]*model.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var projects []*model.Project
	query := s.db.WithContext(ctx).
		Preload("Tags").Preload("Technologies").
		Where("id IN ? AND webhook_active = ? AND status = ?", ids, true, consts.ProjectStatusNormal)
	if excludeOwnerID > 0 {
		query = query.Where("user_id <> ?", excludeOwnerID)
	}
	err := query.Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *projectRepoImpl) List(ctx context.Context, tagName, technologyName string, limit, offset int) ([]*model.Project, error) {
	var projects []*model.Project
	query := s.db.WithContext(ctx).
		Preload("Tags").Preload("Technologies").
		Where("projects.webhook_active = ? AND projects.status = ?", true, consts.ProjectStatusNormal)

	if tagName != "" {
		query = query.
			Joins("JOIN project_tags ON project_tags.project_id = projects.id").
			Joins("JOIN tags ON tags.id = project_tags.tag_id").
			Where("tags.name = ?", tagName)
	}
	if technologyName != "" {
		query = query.
			Joins("JOIN project_technologies ON project_technologies.project_id = projects.id").
			Joins("JOIN technologies ON technologies.id = project_technologies.technology_id").
			Where("technologies.name = ?", technologyName)
	}

	err := query.Order("projects.created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *projectRepoImpl) Update(ctx context.Context, project *model.Project, tags []*model.ProjectTag, technologies []*model.ProjectTechnology) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.ProjectTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.ProjectTechnology{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Tags", "Technologies").Updates(project).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Create(tags).Error; err != nil {
				return err
			}
		}
		if len(technologies) > 0 {
			if err := tx.Create(technologies).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *projectRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Update("status", consts.ProjectStatusRemoved).Error
}
