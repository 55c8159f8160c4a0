package handler

import (
	"CodeConnect/internal/api/dto"
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/response"
	"CodeConnect/internal/service"
	log "log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

const (
	defaultRecommendLimit = 10
	maxRecommendLimit     = 50
)

type RecommendHandler struct {
	recommendSvc service.RecommendationService
}

func NewRecommendHandler(recommendSvc service.RecommendationService) *RecommendHandler {
	return &RecommendHandler{
		recommendSvc: recommendSvc,
	}
}

// GetRecommendations 获取个性化推荐，引擎返回空时降级到热门榜
func (s *RecommendHandler) GetRecommendations(c *gin.Context) {
	userID := c.GetUint64("user_id")
	limit := parseLimit(c.Query("limit"))

	ctx := c.Request.Context()
	recs, err := s.recommendSvc.GetHybridRecommendations(ctx, userID, limit, model.RecommendationContextWeb)
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(recs) == 0 {
		recs, err = s.recommendSvc.GetTrendingProjects(ctx, limit)
		if err != nil {
			log.WarnContext(ctx, "trending fallback failed", "err", err)
			recs = nil
		}
	}

	response.Success(c, toRecommendedDTOs(recs))
}

// GetTrending 获取热门项目榜
func (s *RecommendHandler) GetTrending(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	recs, err := s.recommendSvc.GetTrendingProjects(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toRecommendedDTOs(recs))
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultRecommendLimit
	}
	if limit > maxRecommendLimit {
		return maxRecommendLimit
	}
	return limit
}

func toRecommendedDTOs(recs []*service.ScoredProject) []*dto.RecommendedProjectDTO {
	list := make([]*dto.RecommendedProjectDTO, 0, len(recs))
	for _, r := range recs {
		item := &dto.RecommendedProjectDTO{}
		_ = copier.Copy(&item.ProjectDTO, r.Project)
		item.DifficultyLevel = r.Project.DifficultyLevel
		item.Tags = make([]string, 0, len(r.Project.Tags))
		for _, t := range r.Project.Tags {
			item.Tags = append(item.Tags, t.Name)
		}
		item.Technologies = make([]string, 0, len(r.Project.Technologies))
		for _, t := range r.Project.Technologies {
			item.Technologies = append(item.Technologies, t.Name)
		}
		item.CreatedAt = r.Project.CreatedAt.Format("2006-01-02 15:04:05")
		item.RecommendationReason = r.Reasons
		list = append(list, item)
	}
	return list
}
