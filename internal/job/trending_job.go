package job

import (
	"CodeConnect/internal/pkg/consts"
	"CodeConnect/internal/pkg/logger"
	"CodeConnect/internal/pkg/redis"
	"CodeConnect/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	trendingLikeWeight = 3.0
	trendingViewWeight = 1.0
)

// TrendingJob 重算近一周热度榜，作为推荐为空时的兜底数据源
type TrendingJob struct {
	interactionRepo repository.InteractionRepo
}

func NewTrendingJob(interactionRepo repository.InteractionRepo) *TrendingJob {
	return &TrendingJob{
		interactionRepo: interactionRepo,
	}
}

func (s *TrendingJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-trending-"+uuid.NewString())

	since := time.Now().AddDate(0, 0, -consts.TrendingWindowDays)
	interactions, err := s.interactionRepo.GetSince(ctx, since)
	if err != nil {
		log.ErrorContext(ctx, "load recent interactions error", "err", err)
		return
	}
	if len(interactions) == 0 {
		log.InfoContext(ctx, "no recent interactions, keep current trending board")
		return
	}

	scores := make(map[uint64]float64)
	for _, it := range interactions {
		if it.IsLike() {
			scores[it.ProjectID] += trendingLikeWeight
		} else {
			scores[it.ProjectID] += trendingViewWeight
		}
	}

	// 先写临时榜再原子替换，读方不会看到半成品
	buildKey := consts.ProjectTrendingKey + ":building"
	_ = redis.DeleteKey(ctx, buildKey)
	for projectID, score := range scores {
		if err := redis.ZAdd(ctx, buildKey, score, strconv.FormatUint(projectID, 10)); err != nil {
			log.ErrorContext(ctx, "build trending board error", "projectID", projectID, "err", err)
			return
		}
	}
	if err := redis.Rename(ctx, buildKey, consts.ProjectTrendingKey); err != nil {
		log.ErrorContext(ctx, "swap trending board error", "err", err)
		return
	}
	_ = redis.Expire(ctx, consts.ProjectTrendingKey, 25*time.Hour)

	log.InfoContext(ctx, "trending board rebuilt", "projects", len(scores))
}
