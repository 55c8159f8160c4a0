package api

import "CodeConnect/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	RecommendHandler     *handler.RecommendHandler
	ProjectHandler       *handler.ProjectHandler
	ProjectActionHandler *handler.ProjectActionHandler
	PreferenceHandler    *handler.PreferenceHandler
}
