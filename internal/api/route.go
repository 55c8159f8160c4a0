package api

import (
	"CodeConnect/internal/api/middleware"
	"CodeConnect/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		recommendGroup := apiGroup.Group("/recommendations")
		{
			recommendGroup.GET("/trending", group.RecommendHandler.GetTrending)

			// 未登录用户也能访问，引擎对匿名用户返回空后走热门兜底
			authOptGroup := recommendGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.RecommendHandler.GetRecommendations)
			}
		}

		projectGroup := apiGroup.Group("/projects")
		{
			authOptGroup := projectGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.ProjectHandler.ListProjects)
				authOptGroup.GET("/:project_id", group.ProjectHandler.GetProject)
			}

			authGroup := projectGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ProjectHandler.CreateProject)
				authGroup.PUT("/:project_id", group.ProjectHandler.UpdateProject)
				authGroup.DELETE("/:project_id", group.ProjectHandler.DeleteProject)
			}
		}

		actionGroup := apiGroup.Group("/project/action")
		{
			actionGroup.GET("/comments/:project_id", group.ProjectActionHandler.GetComments)

			authOptGroup := actionGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/state/:project_id", group.ProjectActionHandler.GetProjectActionState)
			}

			authGroup := actionGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/likes/:project_id", group.ProjectActionHandler.LikeProject)
				authGroup.POST("/comments", group.ProjectActionHandler.CreateComment)
				authGroup.DELETE("/comments/:comment_id", group.ProjectActionHandler.DeleteComment)
			}
		}

		preferenceGroup := apiGroup.Group("/preferences")
		{
			preferenceGroup.GET("/tags", group.PreferenceHandler.GetAllTags)
			preferenceGroup.GET("/technologies", group.PreferenceHandler.GetAllTechnologies)

			authGroup := preferenceGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("", group.PreferenceHandler.GetPreferences)
				authGroup.PUT("/tags", group.PreferenceHandler.SaveTagPreferences)
				authGroup.PUT("/technologies", group.PreferenceHandler.SaveTechnologyPreferences)
				authGroup.PUT("/profile", group.PreferenceHandler.SaveProfile)
			}
		}
	}

	return r
}
