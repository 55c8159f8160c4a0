package service

import (
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/consts"
	"CodeConnect/internal/pkg/redis"
	"CodeConnect/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// FreshnessWindow 邮件推荐去重的滚动窗口
const FreshnessWindow = 7 * 24 * time.Hour

// RecommendationService 混合编排：合并内容与协同两路结果并套用冷启动、邮件去重策略
type RecommendationService interface {
	GetHybridRecommendations(ctx context.Context, userID uint64, limit int, recommendationContext string) ([]*ScoredProject, error)
	GetTrendingProjects(ctx context.Context, limit int) ([]*ScoredProject, error)
}

type recommendationServiceImpl struct {
	contentScorer   ContentScorer
	collabScorer    CollaborativeScorer
	interactionRepo repository.InteractionRepo
	preferenceSvc   PreferenceService
	historyRepo     repository.HistoryRepo
	projectRepo     repository.ProjectRepo
	weights         RecommendWeights
}

func NewRecommendationService(
	contentScorer ContentScorer,
	collabScorer CollaborativeScorer,
	interactionRepo repository.InteractionRepo,
	preferenceSvc PreferenceService,
	historyRepo repository.HistoryRepo,
	projectRepo repository.ProjectRepo,
	weights RecommendWeights,
) RecommendationService {
	return &recommendationServiceImpl{
		contentScorer:   contentScorer,
		collabScorer:    collabScorer,
		interactionRepo: interactionRepo,
		preferenceSvc:   preferenceSvc,
		historyRepo:     historyRepo,
		projectRepo:     projectRepo,
		weights:         weights,
	}
}

type weightedProject struct {
	scored *ScoredProject
	weight float64
}

// GetHybridRecommendations 返回不超过 limit 条推荐；无任何信号时返回空列表，
// 由调用方决定热门兜底
func (s *recommendationServiceImpl) GetHybridRecommendations(ctx context.Context, userID uint64, limit int, recommendationContext string) ([]*ScoredProject, error) {
	if limit <= 0 {
		return nil, ErrParamInvalid
	}

	interactions, err := s.interactionRepo.GetByUser(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "load interactions failed, degrade to empty", "userID", userID, "err", err)
		return nil, nil
	}
	interactionCount := len(interactions)

	// 冷启动：没有任何交互时只在有显式偏好的情况下跑内容策略
	if interactionCount == 0 {
		return s.coldStart(ctx, userID, limit)
	}

	candidateLimit := limit * 3
	if limit+10 > candidateLimit {
		candidateLimit = limit + 10
	}

	var content, collab []*ScoredProject
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.contentScorer.Score(gctx, userID, candidateLimit)
		if err != nil {
			log.WarnContext(gctx, "content scorer failed, degrade to empty", "userID", userID, "err", err)
			return nil
		}
		content = res
		return nil
	})
	g.Go(func() error {
		res, err := s.collabScorer.Score(gctx, userID, candidateLimit)
		if err != nil {
			log.WarnContext(gctx, "collaborative scorer failed, degrade to empty", "userID", userID, "err", err)
			return nil
		}
		collab = res
		return nil
	})
	_ = g.Wait()

	contentWeight := s.weights.ContentWeight
	collabWeight := s.weights.CollabWeight
	if interactionCount < s.weights.NewUserInteractionCount {
		contentWeight = s.weights.NewUserContentWeight
		collabWeight = s.weights.NewUserCollabWeight
	}

	// 先内容后协同，同一项目只保留首次出现时的权重
	seen := make(map[uint64]struct{})
	merged := make([]*weightedProject, 0, len(content)+len(collab))
	for _, sp := range content {
		if _, ok := seen[sp.Project.ID]; ok {
			continue
		}
		seen[sp.Project.ID] = struct{}{}
		merged = append(merged, &weightedProject{scored: sp, weight: sp.Score * contentWeight})
	}
	for _, sp := range collab {
		if _, ok := seen[sp.Project.ID]; ok {
			continue
		}
		seen[sp.Project.ID] = struct{}{}
		merged = append(merged, &weightedProject{scored: sp, weight: sp.Score * collabWeight})
	}

	if recommendationContext == model.RecommendationContextEmail {
		merged = s.applyFreshness(ctx, userID, merged, limit)
	} else {
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].weight > merged[j].weight
		})
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}
	result := make([]*ScoredProject, 0, len(merged))
	for _, w := range merged {
		result = append(result, w.scored)
	}
	return result, nil
}

func (s *recommendationServiceImpl) coldStart(ctx context.Context, userID uint64, limit int) ([]*ScoredProject, error) {
	tagIDs, err := s.preferenceSvc.GetExplicitTagIDs(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "load explicit tag preferences failed", "userID", userID, "err", err)
	}
	techIDs, err := s.preferenceSvc.GetExplicitTechnologyIDs(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "load explicit technology preferences failed", "userID", userID, "err", err)
	}
	if len(tagIDs) == 0 && len(techIDs) == 0 {
		return nil, nil
	}

	content, err := s.contentScorer.Score(ctx, userID, limit*3)
	if err != nil {
		log.WarnContext(ctx, "content scorer failed, degrade to empty", "userID", userID, "err", err)
		return nil, nil
	}
	if len(content) > limit {
		content = content[:limit]
	}
	return content, nil
}

// applyFreshness 邮件场景下把近期已发过的项目挪到队尾，新鲜候选不足时
// 按最早发送时间回填
func (s *recommendationServiceImpl) applyFreshness(ctx context.Context, userID uint64, merged []*weightedProject, limit int) []*weightedProject {
	history, err := s.historyRepo.GetRecent(ctx, userID, time.Now().Add(-FreshnessWindow))
	if err != nil {
		log.WarnContext(ctx, "load recommendation history failed, skip freshness filter", "userID", userID, "err", err)
		history = nil
	}
	lastSent := make(map[uint64]time.Time, len(history))
	for _, h := range history {
		if t, ok := lastSent[h.ProjectID]; !ok || h.SentAt.After(t) {
			lastSent[h.ProjectID] = h.SentAt
		}
	}

	fresh := make([]*weightedProject, 0, len(merged))
	stale := make([]*weightedProject, 0, len(merged))
	for _, w := range merged {
		if _, ok := lastSent[w.scored.Project.ID]; ok {
			stale = append(stale, w)
		} else {
			fresh = append(fresh, w)
		}
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].weight > fresh[j].weight
	})
	sort.SliceStable(stale, func(i, j int) bool {
		return lastSent[stale[i].scored.Project.ID].Before(lastSent[stale[j].scored.Project.ID])
	})

	result := fresh
	for _, w := range stale {
		if len(result) >= limit {
			break
		}
		result = append(result, w)
	}
	return result
}

// GetTrendingProjects 热门兜底：读取定时任务维护的热度榜
func (s *recommendationServiceImpl) GetTrendingProjects(ctx context.Context, limit int) ([]*ScoredProject, error) {
	if limit <= 0 {
		return nil, ErrParamInvalid
	}
	entries, err := redis.ZRevRangeWithScores(ctx, consts.ProjectTrendingKey, 0, int64(limit)-1)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(entries))
	scores := make(map[uint64]float64, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		id, parseErr := strconv.ParseUint(member, 10, 64)
		if parseErr != nil {
			continue
		}
		ids = append(ids, id)
		scores[id] = e.Score
	}

	projects, err := s.projectRepo.GetActiveByIDs(ctx, ids, 0)
	if err != nil {
		return nil, err
	}
	result := make([]*ScoredProject, 0, len(projects))
	for _, p := range projects {
		result = append(result, &ScoredProject{
			Project: p,
			Score:   scores[p.ID],
			Reasons: []string{"Trending this week"},
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result, nil
}
