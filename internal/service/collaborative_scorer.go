package service

import (
	"CodeConnect/internal/pkg/util"
	"CodeConnect/internal/repository"
	"context"
	"math"
	"sort"
)

// CollaborativeScorer 协同策略：按交互重合度找到相似用户，再用相似度加权其喜好
type CollaborativeScorer interface {
	Score(ctx context.Context, userID uint64, candidateLimit int) ([]*ScoredProject, error)
}

type collaborativeScorerImpl struct {
	interactionRepo repository.InteractionRepo
	projectRepo     repository.ProjectRepo
	weights         RecommendWeights
}

func NewCollaborativeScorer(
	interactionRepo repository.InteractionRepo,
	projectRepo repository.ProjectRepo,
	weights RecommendWeights,
) CollaborativeScorer {
	return &collaborativeScorerImpl{
		interactionRepo: interactionRepo,
		projectRepo:     projectRepo,
		weights:         weights,
	}
}

type peerState struct {
	userID uint64
	// 共同项目及对方是否点过赞
	common     map[uint64]bool
	similarity float64
}

func (s *collaborativeScorerImpl) Score(ctx context.Context, userID uint64, candidateLimit int) ([]*ScoredProject, error) {
	myInteractions, err := s.interactionRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(myInteractions) == 0 {
		return nil, nil
	}

	// myLiked 按项目聚合：同一项目点赞优先于浏览
	myLiked := make(map[uint64]bool, len(myInteractions))
	for _, it := range myInteractions {
		if it.IsLike() {
			myLiked[it.ProjectID] = true
		} else if _, ok := myLiked[it.ProjectID]; !ok {
			myLiked[it.ProjectID] = false
		}
	}
	myProjectIDs := make([]uint64, 0, len(myLiked))
	for id := range myLiked {
		myProjectIDs = append(myProjectIDs, id)
	}

	overlapping, err := s.interactionRepo.GetByProjectIDs(ctx, myProjectIDs, userID)
	if err != nil {
		return nil, err
	}
	if len(overlapping) == 0 {
		return nil, nil
	}

	peers := make(map[uint64]*peerState)
	for _, it := range overlapping {
		p := peers[it.UserID]
		if p == nil {
			p = &peerState{userID: it.UserID, common: make(map[uint64]bool)}
			peers[it.UserID] = p
		}
		if it.IsLike() {
			p.common[it.ProjectID] = true
		} else if _, ok := p.common[it.ProjectID]; !ok {
			p.common[it.ProjectID] = false
		}
	}

	// 重合项目太少的用户直接丢弃，避免一次偶然共览带来的噪声
	minCommon := s.weights.MinCommonProjects
	if ratio := int(math.Ceil(s.weights.CommonProjectsRatio * float64(len(myProjectIDs)))); ratio > minCommon {
		minCommon = ratio
	}

	qualified := make([]*peerState, 0, len(peers))
	for _, p := range peers {
		if len(p.common) < minCommon {
			continue
		}
		var intersectionWeight float64
		for projectID, peerLiked := range p.common {
			switch {
			case myLiked[projectID] && peerLiked:
				intersectionWeight += s.weights.BothLikedWeight
			case myLiked[projectID] || peerLiked:
				intersectionWeight += s.weights.OneLikedWeight
			default:
				intersectionWeight += s.weights.BothViewedWeight
			}
		}
		commonIDs := make([]uint64, 0, len(p.common))
		for id := range p.common {
			commonIDs = append(commonIDs, id)
		}
		p.similarity = intersectionWeight / float64(len(util.UnionUInt64(myProjectIDs, commonIDs)))
		if p.similarity < s.weights.MinSimilarity {
			continue
		}
		qualified = append(qualified, p)
	}
	if len(qualified) == 0 {
		return nil, nil
	}

	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].similarity == qualified[j].similarity {
			return qualified[i].userID < qualified[j].userID
		}
		return qualified[i].similarity > qualified[j].similarity
	})
	if len(qualified) > s.weights.MaxPeers {
		qualified = qualified[:s.weights.MaxPeers]
	}

	similarity := make(map[uint64]float64, len(qualified))
	peerIDs := make([]uint64, 0, len(qualified))
	for _, p := range qualified {
		similarity[p.userID] = p.similarity
		peerIDs = append(peerIDs, p.userID)
	}

	peerInteractions, err := s.interactionRepo.GetByUserIDs(ctx, peerIDs)
	if err != nil {
		return nil, err
	}

	// 同一相似用户对同一项目既浏览又点赞时只记一次，取较强的点赞权重
	type peerProject struct {
		userID    uint64
		projectID uint64
	}
	contribution := make(map[peerProject]float64)
	for _, it := range peerInteractions {
		if _, ok := myLiked[it.ProjectID]; ok {
			continue
		}
		weight := s.weights.PeerViewWeight
		if it.IsLike() {
			weight = s.weights.PeerLikeWeight
		}
		key := peerProject{userID: it.UserID, projectID: it.ProjectID}
		if weight > contribution[key] {
			contribution[key] = weight
		}
	}

	scores := make(map[uint64]float64)
	for key, weight := range contribution {
		scores[key.projectID] += weight * similarity[key.userID]
	}
	if len(scores) == 0 {
		return nil, nil
	}

	candidateIDs := topIDsByScore(scores, candidateLimit)
	projects, err := s.projectRepo.GetActiveByIDs(ctx, candidateIDs, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*ScoredProject, 0, len(projects))
	for _, p := range projects {
		result = append(result, &ScoredProject{
			Project: p,
			Score:   scores[p.ID],
			Reasons: []string{"People with similar interests liked this project"},
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result, nil
}
