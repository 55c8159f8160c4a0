package service

import (
	"CodeConnect/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentScorerNoSignals(t *testing.T) {
	f := newEngineFixture()
	f.addProject(101, 2, nil, []uint64{10}, nil)

	result, err := f.contentScorer.Score(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestContentScorerExplicitTagMatch(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 2, nil, []uint64{10}, nil)

	result, err := f.contentScorer.Score(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(101), result[0].Project.ID)
	// 无交互用户走稀疏权重
	assert.InDelta(t, 1.2, result[0].Score, 1e-9)
	assert.Contains(t, result[0].Reasons, "matches your selected tag: web")
}

func TestContentScorerWarmWeights(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 2, nil, []uint64{10}, nil)
	// 三次交互后进入常规权重
	f.addInteraction(1, 201, model.InteractionTypeView)
	f.addInteraction(1, 202, model.InteractionTypeView)
	f.addInteraction(1, 203, model.InteractionTypeLike)

	result, err := f.contentScorer.Score(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.InDelta(t, 0.9, result[0].Score, 1e-9)
}

func TestContentScorerExcludesInteractedProjects(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.addProject(101, 2, nil, []uint64{10}, nil)
	f.addProject(102, 2, nil, []uint64{10}, nil)
	f.addInteraction(1, 101, model.InteractionTypeView)

	result, err := f.contentScorer.Score(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(102), result[0].Project.ID)
	// 显式勾选 + 行为推断同时命中，稀疏权重 1.2 + 0.8 + 0.3 奖励
	assert.InDelta(t, 2.3, result[0].Score, 1e-9)
	assert.Contains(t, result[0].Reasons, "similar to tags you like: web")
}

func TestContentScorerDifficultyBonusChangesRank(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	f.preferences.profile[1] = &model.UserProfile{UserID: 1, DifficultyLevel: model.IntSlice{3}}
	f.addProject(101, 2, []int{1, 2}, []uint64{10}, nil)
	f.addProject(102, 2, []int{2, 3}, []uint64{10}, nil)

	result, err := f.contentScorer.Score(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 2)
	// 难度命中的项目排到前面，且分差正好是难度加成
	assert.Equal(t, uint64(102), result[0].Project.ID)
	assert.Equal(t, uint64(101), result[1].Project.ID)
	assert.InDelta(t, 1.0, result[0].Score-result[1].Score, 1e-9)
	assert.Contains(t, result[0].Reasons, "matches your preferred difficulty level")
	assert.NotContains(t, result[1].Reasons, "matches your preferred difficulty level")
}

func TestContentScorerSkipsInactiveProjects(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	removed := f.addProject(101, 2, nil, []uint64{10}, nil)
	removed.WebhookActive = false
	f.addProject(102, 2, nil, []uint64{10}, nil)

	result, err := f.contentScorer.Score(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(102), result[0].Project.ID)
}

func TestContentScorerTechnologyMatch(t *testing.T) {
	f := newEngineFixture()
	f.technologies.technologies = []*model.Technology{{ID: 20, Name: "Go"}}
	f.preferences.techIDs[1] = []uint64{20}
	f.addProject(101, 2, nil, nil, []uint64{20})

	result, err := f.contentScorer.Score(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.InDelta(t, 1.1, result[0].Score, 1e-9)
	assert.Contains(t, result[0].Reasons, "matches your selected technology: Go")
}

func TestContentScorerRespectsCandidateLimit(t *testing.T) {
	f := newEngineFixture()
	f.tags.tags = []*model.Tag{{ID: 10, Name: "web"}}
	f.preferences.tagIDs[1] = []uint64{10}
	for id := uint64(101); id <= 110; id++ {
		f.addProject(id, 2, nil, []uint64{10}, nil)
	}

	result, err := f.contentScorer.Score(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, result, 3)
}
