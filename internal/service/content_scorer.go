package service

import (
	"CodeConnect/internal/model"
	"CodeConnect/internal/repository"
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ScoredProject 带分值与推荐理由的候选项目，是两个打分策略的统一产出
type ScoredProject struct {
	Project *model.Project
	Score   float64
	Reasons []string
}

// ContentScorer 内容策略：按标签/技术栈偏好的加权重合度为未交互项目打分
type ContentScorer interface {
	Score(ctx context.Context, userID uint64, candidateLimit int) ([]*ScoredProject, error)
}

type contentScorerImpl struct {
	interactionRepo repository.InteractionRepo
	preferenceSvc   PreferenceService
	tagRepo         repository.TagRepo
	technologyRepo  repository.TechnologyRepo
	projectRepo     repository.ProjectRepo
	weights         RecommendWeights
}

func NewContentScorer(
	interactionRepo repository.InteractionRepo,
	preferenceSvc PreferenceService,
	tagRepo repository.TagRepo,
	technologyRepo repository.TechnologyRepo,
	projectRepo repository.ProjectRepo,
	weights RecommendWeights,
) ContentScorer {
	return &contentScorerImpl{
		interactionRepo: interactionRepo,
		preferenceSvc:   preferenceSvc,
		tagRepo:         tagRepo,
		technologyRepo:  technologyRepo,
		projectRepo:     projectRepo,
		weights:         weights,
	}
}

type assocRow struct {
	projectID uint64
	refID     uint64
}

func (s *contentScorerImpl) Score(ctx context.Context, userID uint64, candidateLimit int) ([]*ScoredProject, error) {
	interactions, err := s.interactionRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	interacted := make(map[uint64]struct{}, len(interactions))
	for _, it := range interactions {
		interacted[it.ProjectID] = struct{}{}
	}
	// 交互稀疏的用户更信任偏好信号
	limited := len(interactions) < s.weights.LimitedInteractionCount

	var (
		explicitTagIDs  []uint64
		explicitTechIDs []uint64
		inferredTagNs   []string
		inferredTechNs  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		explicitTagIDs, err = s.preferenceSvc.GetExplicitTagIDs(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		explicitTechIDs, err = s.preferenceSvc.GetExplicitTechnologyIDs(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		inferredTagNs, err = s.preferenceSvc.GetInferredTagNames(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		inferredTechNs, err = s.preferenceSvc.GetInferredTechnologyNames(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 没有任何偏好信号时直接返回空，热门兜底由调用方决定
	if len(explicitTagIDs) == 0 && len(explicitTechIDs) == 0 &&
		len(inferredTagNs) == 0 && len(inferredTechNs) == 0 {
		return nil, nil
	}

	explicitTags, err := s.idNameMap(ctx, explicitTagIDs, nil, true)
	if err != nil {
		return nil, err
	}
	inferredTags, err := s.idNameMap(ctx, nil, inferredTagNs, true)
	if err != nil {
		return nil, err
	}
	explicitTechs, err := s.idNameMap(ctx, explicitTechIDs, nil, false)
	if err != nil {
		return nil, err
	}
	inferredTechs, err := s.idNameMap(ctx, nil, inferredTechNs, false)
	if err != nil {
		return nil, err
	}

	scores := make(map[uint64]float64)
	reasons := make(map[uint64][]string)

	tagRows, err := s.tagRepo.GetProjectTagsByTagIDs(ctx, unionKeys(explicitTags, inferredTags))
	if err != nil {
		return nil, err
	}
	tagAssocs := make([]assocRow, 0, len(tagRows))
	for _, r := range tagRows {
		tagAssocs = append(tagAssocs, assocRow{projectID: r.ProjectID, refID: r.TagID})
	}
	explicitTagWeight := s.weights.ExplicitTagWarm
	inferredTagWeight := s.weights.InferredTagWarm
	if limited {
		explicitTagWeight = s.weights.ExplicitTagLimited
		inferredTagWeight = s.weights.InferredTagLimited
	}
	scoreVocabulary(tagAssocs, interacted, explicitTags, inferredTags,
		explicitTagWeight, inferredTagWeight, s.weights.TagDiversityBonus,
		"matches your selected tag: ", "similar to tags you like: ",
		scores, reasons)

	techRows, err := s.technologyRepo.GetProjectTechnologiesByTechnologyIDs(ctx, unionKeys(explicitTechs, inferredTechs))
	if err != nil {
		return nil, err
	}
	techAssocs := make([]assocRow, 0, len(techRows))
	for _, r := range techRows {
		techAssocs = append(techAssocs, assocRow{projectID: r.ProjectID, refID: r.TechnologyID})
	}
	explicitTechWeight := s.weights.ExplicitTechWarm
	inferredTechWeight := s.weights.InferredTechWarm
	if limited {
		explicitTechWeight = s.weights.ExplicitTechLimited
		inferredTechWeight = s.weights.InferredTechLimited
	}
	scoreVocabulary(techAssocs, interacted, explicitTechs, inferredTechs,
		explicitTechWeight, inferredTechWeight, s.weights.TechDiversityBonus,
		"matches your selected technology: ", "similar to technologies you like: ",
		scores, reasons)

	if len(scores) == 0 {
		return nil, nil
	}

	// 先按关联分取两倍候选，难度加成后再重排截断
	candidateIDs := topIDsByScore(scores, candidateLimit*2)
	projects, err := s.projectRepo.GetActiveByIDs(ctx, candidateIDs, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.preferenceSvc.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*ScoredProject, 0, len(projects))
	for _, p := range projects {
		score := scores[p.ID]
		rs := reasons[p.ID]
		if profile != nil && len(profile.DifficultyLevel) > 0 && p.DifficultyLevel.Intersects(profile.DifficultyLevel) {
			score += s.weights.DifficultyBonus
			rs = append(rs, "matches your preferred difficulty level")
		}
		result = append(result, &ScoredProject{
			Project: p,
			Score:   score,
			Reasons: finalizeReasons(rs),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	if len(result) > candidateLimit {
		result = result[:candidateLimit]
	}
	return result, nil
}

// idNameMap 统一把偏好解析成 id→name 映射，ids 与 names 二选一
func (s *contentScorerImpl) idNameMap(ctx context.Context, ids []uint64, names []string, isTag bool) (map[uint64]string, error) {
	out := make(map[uint64]string)
	if len(ids) == 0 && len(names) == 0 {
		return out, nil
	}
	if isTag {
		var tags []*model.Tag
		var err error
		if len(ids) > 0 {
			tags, err = s.tagRepo.GetByIDs(ctx, ids)
		} else {
			tags, err = s.tagRepo.GetByNames(ctx, names)
		}
		if err != nil {
			return nil, err
		}
		for _, t := range tags {
			out[t.ID] = t.Name
		}
		return out, nil
	}
	var techs []*model.Technology
	var err error
	if len(ids) > 0 {
		techs, err = s.technologyRepo.GetByIDs(ctx, ids)
	} else {
		techs, err = s.technologyRepo.GetByNames(ctx, names)
	}
	if err != nil {
		return nil, err
	}
	for _, t := range techs {
		out[t.ID] = t.Name
	}
	return out, nil
}

// scoreVocabulary 对单个词表（标签或技术栈）累加每个项目的匹配分
func scoreVocabulary(
	rows []assocRow,
	interacted map[uint64]struct{},
	explicit, inferred map[uint64]string,
	explicitWeight, inferredWeight, diversityBonus float64,
	explicitReason, inferredReason string,
	scores map[uint64]float64,
	reasons map[uint64][]string,
) {
	type matchState struct {
		explicitCount int
		inferredCount int
	}
	states := make(map[uint64]*matchState)

	for _, row := range rows {
		if _, ok := interacted[row.projectID]; ok {
			continue
		}
		st := states[row.projectID]
		if st == nil {
			st = &matchState{}
			states[row.projectID] = st
		}
		if name, ok := explicit[row.refID]; ok {
			st.explicitCount++
			reasons[row.projectID] = append(reasons[row.projectID], explicitReason+name)
		}
		if name, ok := inferred[row.refID]; ok {
			st.inferredCount++
			reasons[row.projectID] = append(reasons[row.projectID], inferredReason+name)
		}
	}

	for projectID, st := range states {
		score := float64(st.explicitCount)*explicitWeight + float64(st.inferredCount)*inferredWeight
		// 显式与推断信号同时命中，额外奖励交叉确认
		if st.explicitCount > 0 && st.inferredCount > 0 {
			score += diversityBonus
		}
		scores[projectID] += score
	}
}

func unionKeys(a, b map[uint64]string) []uint64 {
	out := make([]uint64, 0, len(a)+len(b))
	for id := range a {
		out = append(out, id)
	}
	for id := range b {
		if _, ok := a[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func topIDsByScore(scores map[uint64]float64, limit int) []uint64 {
	ids := make([]uint64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] == scores[ids[j]] {
			return ids[i] < ids[j]
		}
		return scores[ids[i]] > scores[ids[j]]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

func finalizeReasons(rs []string) []string {
	out := dedupReasons(rs)
	if len(out) == 0 {
		out = []string{"Recommended based on your preferences"}
	}
	return out
}

func dedupReasons(rs []string) []string {
	seen := make(map[string]struct{}, len(rs))
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
