package repository

import (
	"CodeConnect/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TechnologyRepo interface {
	GetAll(ctx context.Context) ([]*model.Technology, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Technology, error)
	GetByNames(ctx context.Context, names []string) ([]*model.Technology, error)
	GetOrCreateTechnologies(ctx context.Context, names []string) ([]*model.Technology, error)
	GetNamesByProjectIDs(ctx context.Context, projectIDs []uint64) ([]string, error)
	GetProjectTechnologiesByTechnologyIDs(ctx context.Context, technologyIDs []uint64) ([]*model.ProjectTechnology, error)
}

type technologyRepoImpl struct {
	db *gorm.DB
}

func NewTechnologyRepository(db *gorm.DB) TechnologyRepo {
	return &technologyRepoImpl{
		db: db,
	}
}

func (s *technologyRepoImpl) GetAll(ctx context.Context) ([]*model.Technology, error) {
	var techs []*model.Technology
	err := s.db.WithContext(ctx).Order("name ASC").Find(&techs).Error
	if err != nil {
		return nil, err
	}
	return techs, nil
}

func (s *technologyRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Technology, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var techs []*model.Technology
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&techs).Error
	if err != nil {
		return nil, err
	}
	return techs, nil
}

func (s *technologyRepoImpl) GetByNames(ctx context.Context, names []string) ([]*model.Technology, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var techs []*model.Technology
	err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&techs).Error
	if err != nil {
		return nil, err
	}
	return techs, nil
}

func (s *technologyRepoImpl) GetOrCreateTechnologies(ctx context.Context, names []string) ([]*model.Technology, error) {
	for _, name := range names {
		tech := model.Technology{
			Name:      name,
			CreatedAt: time.Now(),
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tech).Error
		if err != nil {
			return nil, err
		}
	}

	var techs []*model.Technology
	err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&techs).Error
	if err != nil {
		return nil, err
	}

	return techs, nil
}

// GetNamesByProjectIDs 获取一批项目关联的全部技术名，去重
func (s *technologyRepoImpl) GetNamesByProjectIDs(ctx context.Context, projectIDs []uint64) ([]string, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var names []string
	err := s.db.WithContext(ctx).Model(&model.ProjectTechnology{}).
		Distinct("technologies.name").
		Joins("JOIN technologies ON technologies.id = project_technologies.technology_id").
		Where("project_technologies.project_id IN ?", projectIDs).
		Pluck("technologies.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *technologyRepoImpl) GetProjectTechnologiesByTechnologyIDs(ctx context.Context, technologyIDs []uint64) ([]*model.ProjectTechnology, error) {
	if len(technologyIDs) == 0 {
		return nil, nil
	}
	var rows []*model.ProjectTechnology
	err := s.db.WithContext(ctx).Where("technology_id IN ?", technologyIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
