package service

import (
	"CodeConnect/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingScorer struct{}

func (failingScorer) Score(context.Context, uint64, int) ([]*ScoredProject, error) {
	return nil, errors.New("scorer unavailable")
}

func TestHybridRecommendationsInvalidLimit(t *testing.T) {
	f := newEngineFixture()

	_, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 0, model.RecommendationContextWeb)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestHybridRecommendationsAnonymousUser(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.addProject(101, 2, nil, []uint64{10}, nil)

	// 匿名请求以 userID 0 进入引擎，得到空列表，热门兜底由 handler 负责
	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 0, 10, model.RecommendationContextWeb)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestColdStartWithoutPreferences(t *testing.T) {
	f := newEngineFixture()
	f.addProject(101, 2, nil, []uint64{10}, nil)

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 10, model.RecommendationContextWeb)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestColdStartWithExplicitPreferences(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 2, nil, []uint64{10}, nil)

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 10, model.RecommendationContextWeb)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(101), result[0].Project.ID)
}

func TestHybridNeverRecommendsOwnProject(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 1, nil, []uint64{10}, nil)
	f.addProject(102, 2, nil, []uint64{10}, nil)

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 10, model.RecommendationContextWeb)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(102), result[0].Project.ID)
}

func TestHybridMergesBothStrategiesWithoutDuplicates(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(1, 9, nil, []uint64{10}, nil)
	f.addProject(2, 9, nil, []uint64{10}, nil)
	f.addProject(3, 9, nil, []uint64{10}, nil)
	// 项目 3 会同时被内容策略和协同策略选中
	f.addInteraction(1, 1, model.InteractionTypeLike)
	f.addInteraction(1, 2, model.InteractionTypeLike)
	f.addInteraction(2, 1, model.InteractionTypeLike)
	f.addInteraction(2, 2, model.InteractionTypeLike)
	f.addInteraction(2, 3, model.InteractionTypeLike)

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 10, model.RecommendationContextWeb)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(3), result[0].Project.ID)
}

func TestHybridDegradesWhenScorerFails(t *testing.T) {
	f := newEngineFixture()
	recommendSvc := NewRecommendationService(
		failingScorer{}, f.collabScorer, f.interactions, f.preferenceSvc, f.history, f.projects,
		DefaultRecommendWeights(),
	)
	f.addProject(1, 9, nil, nil, nil)
	f.addProject(2, 9, nil, nil, nil)
	f.addProject(3, 9, nil, nil, nil)
	f.addInteraction(1, 1, model.InteractionTypeLike)
	f.addInteraction(1, 2, model.InteractionTypeLike)
	f.addInteraction(2, 1, model.InteractionTypeLike)
	f.addInteraction(2, 2, model.InteractionTypeLike)
	f.addInteraction(2, 3, model.InteractionTypeLike)

	// 内容策略故障时协同结果仍可返回
	result, err := recommendSvc.GetHybridRecommendations(context.Background(), 1, 10, model.RecommendationContextWeb)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(3), result[0].Project.ID)
}

func TestHybridDegradesWhenBothScorersFail(t *testing.T) {
	f := newEngineFixture()
	recommendSvc := NewRecommendationService(
		failingScorer{}, failingScorer{}, f.interactions, f.preferenceSvc, f.history, f.projects,
		DefaultRecommendWeights(),
	)
	f.addInteraction(1, 1, model.InteractionTypeLike)

	result, err := recommendSvc.GetHybridRecommendations(context.Background(), 1, 10, model.RecommendationContextWeb)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestEmailContextSkipsRecentlySentProjects(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 2, nil, []uint64{10}, nil)
	f.addProject(102, 2, nil, []uint64{10}, nil)
	f.addProject(103, 2, nil, []uint64{10}, nil)
	f.addInteraction(1, 201, model.InteractionTypeView)
	// 101 两天前已发过邮件，剩余候选足够填满时不再重复
	f.history.entries = []*model.RecommendationHistory{
		{UserID: 1, ProjectID: 101, SentAt: time.Now().Add(-48 * time.Hour), Context: model.RecommendationContextEmail},
	}

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 2, model.RecommendationContextEmail)
	require.NoError(t, err)
	require.Len(t, result, 2)
	for _, sp := range result {
		assert.NotEqual(t, uint64(101), sp.Project.ID)
	}
}

func TestEmailContextBackfillsOldestSent(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 2, nil, []uint64{10}, nil)
	f.addProject(102, 2, nil, []uint64{10}, nil)
	f.addProject(103, 2, nil, []uint64{10}, nil)
	f.addInteraction(1, 201, model.InteractionTypeView)
	// 全部候选都发过，按最早发送时间回填
	now := time.Now()
	f.history.entries = []*model.RecommendationHistory{
		{UserID: 1, ProjectID: 101, SentAt: now.Add(-24 * time.Hour), Context: model.RecommendationContextEmail},
		{UserID: 1, ProjectID: 102, SentAt: now.Add(-72 * time.Hour), Context: model.RecommendationContextEmail},
		{UserID: 1, ProjectID: 103, SentAt: now.Add(-48 * time.Hour), Context: model.RecommendationContextEmail},
	}

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 2, model.RecommendationContextEmail)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, uint64(102), result[0].Project.ID)
	assert.Equal(t, uint64(103), result[1].Project.ID)
}

func TestEmailContextIgnoresHistoryOutsideWindow(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 2, nil, []uint64{10}, nil)
	f.addInteraction(1, 201, model.InteractionTypeView)
	// 八天前发过的不算新鲜度约束
	f.history.entries = []*model.RecommendationHistory{
		{UserID: 1, ProjectID: 101, SentAt: time.Now().Add(-8 * 24 * time.Hour), Context: model.RecommendationContextEmail},
	}

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 5, model.RecommendationContextEmail)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(101), result[0].Project.ID)
}

func TestHybridRespectsLimit(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	for id := uint64(101); id <= 120; id++ {
		f.addProject(id, 2, nil, []uint64{10}, nil)
	}
	f.addInteraction(1, 201, model.InteractionTypeView)

	result, err := f.recommendSvc.GetHybridRecommendations(context.Background(), 1, 5, model.RecommendationContextWeb)
	require.NoError(t, err)
	assert.Len(t, result, 5)
}
