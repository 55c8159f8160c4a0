package repository

import (
	"CodeConnect/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type HistoryRepo interface {
	GetRecent(ctx context.Context, userID uint64, since time.Time) ([]*model.RecommendationHistory, error)
	Create(ctx context.Context, entries []*model.RecommendationHistory) error
	HasSentSince(ctx context.Context, userID uint64, since time.Time, context_ string) (bool, error)
}

type historyRepoImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepo {
	return &historyRepoImpl{db: db}
}

func (r *historyRepoImpl) GetRecent(ctx context.Context, userID uint64, since time.Time) ([]*model.RecommendationHistory, error) {
	var entries []*model.RecommendationHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sent_at >= ?", userID, since).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Create 仅追加，从不更新已有记录
func (r *historyRepoImpl) Create(ctx context.Context, entries []*model.RecommendationHistory) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

func (r *historyRepoImpl) HasSentSince(ctx context.Context, userID uint64, since time.Time, context_ string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RecommendationHistory{}).
		Where("user_id = ? AND sent_at >= ? AND context = ?", userID, since, context_).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
