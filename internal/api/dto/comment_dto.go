package dto

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	ProjectID uint64 `json:"project_id" binding:"required"`
	Content   string `json:"content" binding:"required,max=1000"`
}

type CommentDTO struct {
	ID        uint64 `json:"id"`
	ProjectID uint64 `json:"project_id"`
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type CommentListDTO struct {
	List  []*CommentDTO `json:"list"`
	Total int64         `json:"total"`
}
