package service

import (
	"CodeConnect/internal/api/dto"
	"CodeConnect/internal/model"
	"CodeConnect/internal/repository"
	"context"
	"time"
)

// PreferenceService 偏好解析：显式偏好与行为推断偏好分开返回，置信度不同
type PreferenceService interface {
	GetExplicitTagIDs(ctx context.Context, userID uint64) ([]uint64, error)
	GetExplicitTechnologyIDs(ctx context.Context, userID uint64) ([]uint64, error)
	GetInferredTagNames(ctx context.Context, userID uint64) ([]string, error)
	GetInferredTechnologyNames(ctx context.Context, userID uint64) ([]string, error)

	GetPreferences(ctx context.Context, userID uint64) (*dto.UserPreferencesDTO, error)
	SaveTagPreferences(ctx context.Context, userID uint64, tagIDs []uint64) error
	SaveTechnologyPreferences(ctx context.Context, userID uint64, technologyIDs []uint64) error
	SaveProfile(ctx context.Context, userID uint64, difficultyLevel []int, emailFrequency string) error
	GetProfile(ctx context.Context, userID uint64) (*model.UserProfile, error)

	GetAllTags(ctx context.Context) ([]*dto.TagDTO, error)
	GetAllTechnologies(ctx context.Context) ([]*dto.TechnologyDTO, error)
}

type preferenceServiceImpl struct {
	preferenceRepo  repository.PreferenceRepo
	interactionRepo repository.InteractionRepo
	tagRepo         repository.TagRepo
	technologyRepo  repository.TechnologyRepo
}

func NewPreferenceService(
	preferenceRepo repository.PreferenceRepo,
	interactionRepo repository.InteractionRepo,
	tagRepo repository.TagRepo,
	technologyRepo repository.TechnologyRepo,
) PreferenceService {
	return &preferenceServiceImpl{
		preferenceRepo:  preferenceRepo,
		interactionRepo: interactionRepo,
		tagRepo:         tagRepo,
		technologyRepo:  technologyRepo,
	}
}

func (s *preferenceServiceImpl) GetExplicitTagIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return s.preferenceRepo.GetTagIDs(ctx, userID)
}

func (s *preferenceServiceImpl) GetExplicitTechnologyIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return s.preferenceRepo.GetTechnologyIDs(ctx, userID)
}

// GetInferredTagNames 从交互过的项目反推标签兴趣，无交互时返回空，不做热门兜底
func (s *preferenceServiceImpl) GetInferredTagNames(ctx context.Context, userID uint64) ([]string, error) {
	projectIDs, err := s.interactedProjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return nil, nil
	}
	return s.tagRepo.GetNamesByProjectIDs(ctx, projectIDs)
}

func (s *preferenceServiceImpl) GetInferredTechnologyNames(ctx context.Context, userID uint64) ([]string, error) {
	projectIDs, err := s.interactedProjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return nil, nil
	}
	return s.technologyRepo.GetNamesByProjectIDs(ctx, projectIDs)
}

func (s *preferenceServiceImpl) interactedProjectIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	interactions, err := s.interactionRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]struct{}, len(interactions))
	ids := make([]uint64, 0, len(interactions))
	for _, it := range interactions {
		if _, ok := seen[it.ProjectID]; ok {
			continue
		}
		seen[it.ProjectID] = struct{}{}
		ids = append(ids, it.ProjectID)
	}
	return ids, nil
}

func (s *preferenceServiceImpl) GetPreferences(ctx context.Context, userID uint64) (*dto.UserPreferencesDTO, error) {
	tagIDs, err := s.preferenceRepo.GetTagIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	techIDs, err := s.preferenceRepo.GetTechnologyIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &dto.UserPreferencesDTO{
		EmailFrequency: model.EmailFrequencyNever,
	}

	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		res.Tags = append(res.Tags, &dto.TagDTO{ID: t.ID, Name: t.Name})
	}

	techs, err := s.technologyRepo.GetByIDs(ctx, techIDs)
	if err != nil {
		return nil, err
	}
	for _, t := range techs {
		res.Technologies = append(res.Technologies, &dto.TechnologyDTO{ID: t.ID, Name: t.Name})
	}

	profile, err := s.preferenceRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		res.DifficultyLevel = profile.DifficultyLevel
		res.EmailFrequency = profile.EmailFrequency
	}
	return res, nil
}

// SaveTagPreferences 全量替换用户勾选的标签
func (s *preferenceServiceImpl) SaveTagPreferences(ctx context.Context, userID uint64, tagIDs []uint64) error {
	if len(tagIDs) > 0 {
		tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if len(tags) != len(tagIDs) {
			return ErrTagNotFound
		}
	}
	return s.preferenceRepo.ReplaceTagPreferences(ctx, userID, tagIDs)
}

func (s *preferenceServiceImpl) SaveTechnologyPreferences(ctx context.Context, userID uint64, technologyIDs []uint64) error {
	if len(technologyIDs) > 0 {
		techs, err := s.technologyRepo.GetByIDs(ctx, technologyIDs)
		if err != nil {
			return err
		}
		if len(techs) != len(technologyIDs) {
			return ErrTechnologyNotFound
		}
	}
	return s.preferenceRepo.ReplaceTechnologyPreferences(ctx, userID, technologyIDs)
}

func (s *preferenceServiceImpl) SaveProfile(ctx context.Context, userID uint64, difficultyLevel []int, emailFrequency string) error {
	switch emailFrequency {
	case model.EmailFrequencyDaily, model.EmailFrequencyWeekly, model.EmailFrequencyNever:
	default:
		return ErrEmailFrequency
	}
	for _, lv := range difficultyLevel {
		if lv < 1 || lv > 5 {
			return ErrParamInvalid
		}
	}
	return s.preferenceRepo.SaveProfile(ctx, &model.UserProfile{
		UserID:          userID,
		DifficultyLevel: difficultyLevel,
		EmailFrequency:  emailFrequency,
		UpdatedAt:       time.Now(),
	})
}

func (s *preferenceServiceImpl) GetProfile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	return s.preferenceRepo.GetProfile(ctx, userID)
}

func (s *preferenceServiceImpl) GetAllTags(ctx context.Context) ([]*dto.TagDTO, error) {
	tags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		res = append(res, &dto.TagDTO{ID: t.ID, Name: t.Name})
	}
	return res, nil
}

func (s *preferenceServiceImpl) GetAllTechnologies(ctx context.Context) ([]*dto.TechnologyDTO, error) {
	techs, err := s.technologyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.TechnologyDTO, 0, len(techs))
	for _, t := range techs {
		res = append(res, &dto.TechnologyDTO{ID: t.ID, Name: t.Name})
	}
	return res, nil
}
