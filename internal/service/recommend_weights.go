package service

// RecommendWeights 推荐引擎的全部打分系数，集中在一处便于按权重单测
type RecommendWeights struct {
	// 内容策略：交互数少于 LimitedInteractionCount 时采用 Limited 权重
	LimitedInteractionCount int
	ExplicitTagLimited      float64
	ExplicitTagWarm         float64
	InferredTagLimited      float64
	InferredTagWarm         float64
	TagDiversityBonus       float64
	ExplicitTechLimited     float64
	ExplicitTechWarm        float64
	InferredTechLimited     float64
	InferredTechWarm        float64
	TechDiversityBonus      float64
	DifficultyBonus         float64

	// 协同策略
	MinCommonProjects   int
	CommonProjectsRatio float64
	BothLikedWeight     float64
	OneLikedWeight      float64
	BothViewedWeight    float64
	MinSimilarity       float64
	MaxPeers            int
	PeerLikeWeight      float64
	PeerViewWeight      float64

	// 混合编排：交互数少于 NewUserInteractionCount 时偏向内容策略
	NewUserInteractionCount int
	NewUserContentWeight    float64
	NewUserCollabWeight     float64
	ContentWeight           float64
	CollabWeight            float64
}

func DefaultRecommendWeights() RecommendWeights {
	return RecommendWeights{
		LimitedInteractionCount: 3,
		ExplicitTagLimited:      1.2,
		ExplicitTagWarm:         0.9,
		InferredTagLimited:      0.8,
		InferredTagWarm:         0.5,
		TagDiversityBonus:       0.3,
		ExplicitTechLimited:     1.1,
		ExplicitTechWarm:        0.8,
		InferredTechLimited:     0.8,
		InferredTechWarm:        0.4,
		TechDiversityBonus:      0.25,
		DifficultyBonus:         1.0,

		MinCommonProjects:   2,
		CommonProjectsRatio: 0.3,
		BothLikedWeight:     2.0,
		OneLikedWeight:      1.0,
		BothViewedWeight:    0.5,
		MinSimilarity:       0.15,
		MaxPeers:            10,
		PeerLikeWeight:      2.0,
		PeerViewWeight:      0.5,

		NewUserInteractionCount: 5,
		NewUserContentWeight:    1.2,
		NewUserCollabWeight:     0.8,
		ContentWeight:           1.0,
		CollabWeight:            1.0,
	}
}
