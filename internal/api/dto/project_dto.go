package dto

// ProjectCreateDTO 发布项目请求
type ProjectCreateDTO struct {
	RepoOwner       string   `json:"repo_owner" binding:"required,max=255"`
	RepoName        string   `json:"repo_name" binding:"required,max=255"`
	Description     string   `json:"description" binding:"max=2000"`
	DifficultyLevel []int    `json:"difficulty_level" binding:"max=5,dive,min=1,max=5"`
	Tags            []string `json:"tags" binding:"max=10,dive,min=1,max=64"`
	Technologies    []string `json:"technologies" binding:"max=10,dive,min=1,max=64"`
}

// ProjectUpdateDTO 更新项目请求，标签与技术栈为全量替换
type ProjectUpdateDTO struct {
	Description     string   `json:"description" binding:"max=2000"`
	DifficultyLevel []int    `json:"difficulty_level" binding:"max=5,dive,min=1,max=5"`
	Tags            []string `json:"tags" binding:"max=10,dive,min=1,max=64"`
	Technologies    []string `json:"technologies" binding:"max=10,dive,min=1,max=64"`
}

type ProjectDTO struct {
	ID              uint64   `json:"id"`
	UserID          uint64   `json:"user_id"`
	RepoOwner       string   `json:"repo_owner"`
	RepoName        string   `json:"repo_name"`
	Description     string   `json:"description"`
	DifficultyLevel []int    `json:"difficulty_level"`
	Stars           int      `json:"stars"`
	Language        string   `json:"language"`
	Tags            []string `json:"tags"`
	Technologies    []string `json:"technologies"`
	CreatedAt       string   `json:"created_at"`
}

// ProjectDetailDTO 项目详情，附带交互状态
type ProjectDetailDTO struct {
	ProjectDTO
	Username     string `json:"username"`
	AvatarURL    string `json:"avatar_url"`
	LikeCount    int64  `json:"like_count"`
	ViewCount    int64  `json:"view_count"`
	CommentCount int64  `json:"comment_count"`
	IsLiked      bool   `json:"is_liked"`
}

type ProjectListDTO struct {
	List    []*ProjectDTO `json:"list"`
	HasMore bool          `json:"has_more"`
}

// RecommendedProjectDTO 推荐结果项，附带推荐理由
type RecommendedProjectDTO struct {
	ProjectDTO
	RecommendationReason []string `json:"recommendation_reason"`
}
