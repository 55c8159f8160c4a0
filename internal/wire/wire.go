package wire

import (
	"CodeConnect/internal/api"
	"CodeConnect/internal/api/handler"
	"CodeConnect/internal/job"
	"CodeConnect/internal/pkg/cron"
	"CodeConnect/internal/repository"
	"CodeConnect/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	interactionRepo := repository.NewInteractionRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	tagRepo := repository.NewTagRepository(db)
	technologyRepo := repository.NewTechnologyRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	weights := service.DefaultRecommendWeights()

	preferenceService := service.NewPreferenceService(preferenceRepo, interactionRepo, tagRepo, technologyRepo)
	contentScorer := service.NewContentScorer(interactionRepo, preferenceService, tagRepo, technologyRepo, projectRepo, weights)
	collabScorer := service.NewCollaborativeScorer(interactionRepo, projectRepo, weights)
	recommendService := service.NewRecommendationService(contentScorer, collabScorer, interactionRepo, preferenceService, historyRepo, projectRepo, weights)
	actionService := service.NewProjectActionService(interactionRepo, projectRepo, commentRepo)
	projectService := service.NewProjectService(projectRepo, tagRepo, technologyRepo, actionService)
	digestService := service.NewDigestService(userRepo, historyRepo, recommendService)

	handlers := &api.HandlersGroup{
		RecommendHandler:     handler.NewRecommendHandler(recommendService),
		ProjectHandler:       handler.NewProjectHandler(projectService, actionService),
		ProjectActionHandler: handler.NewProjectActionHandler(actionService),
		PreferenceHandler:    handler.NewPreferenceHandler(preferenceService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewEmailDigestJob(digestService),
		job.NewTrendingJob(interactionRepo),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
