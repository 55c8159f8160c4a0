package repository

import (
	"CodeConnect/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepo interface {
	GetTagIDs(ctx context.Context, userID uint64) ([]uint64, error)
	GetTechnologyIDs(ctx context.Context, userID uint64) ([]uint64, error)
	ReplaceTagPreferences(ctx context.Context, userID uint64, tagIDs []uint64) error
	ReplaceTechnologyPreferences(ctx context.Context, userID uint64, technologyIDs []uint64) error
	GetProfile(ctx context.Context, userID uint64) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, profile *model.UserProfile) error
}

type preferenceRepoImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepo {
	return &preferenceRepoImpl{db: db}
}

func (r *preferenceRepoImpl) GetTagIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&model.UserTagPreference{}).
		Where("user_id = ?", userID).
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *preferenceRepoImpl) GetTechnologyIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&model.UserTechnologyPreference{}).
		Where("user_id = ?", userID).
		Pluck("technology_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReplaceTagPreferences 全量替换：先删后插，不做局部修补
func (r *preferenceRepoImpl) ReplaceTagPreferences(ctx context.Context, userID uint64, tagIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserTagPreference{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		rows := make([]*model.UserTagPreference, 0, len(tagIDs))
		for _, id := range tagIDs {
			rows = append(rows, &model.UserTagPreference{UserID: userID, TagID: id})
		}
		return tx.Create(rows).Error
	})
}

func (r *preferenceRepoImpl) ReplaceTechnologyPreferences(ctx context.Context, userID uint64, technologyIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserTechnologyPreference{}).Error; err != nil {
			return err
		}
		if len(technologyIDs) == 0 {
			return nil
		}
		rows := make([]*model.UserTechnologyPreference, 0, len(technologyIDs))
		for _, id := range technologyIDs {
			rows = append(rows, &model.UserTechnologyPreference{UserID: userID, TechnologyID: id})
		}
		return tx.Create(rows).Error
	})
}

func (r *preferenceRepoImpl) GetProfile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *preferenceRepoImpl) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"difficulty_level", "email_frequency", "updated_at"}),
	}).Create(profile).Error
}
