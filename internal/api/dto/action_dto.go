package dto

// ProjectActionReq 点赞通用请求
type ProjectActionReq struct {
	Action int `json:"action" binding:"required,oneof=1 2"` // 1:执行, 2:取消
}

// ProjectActionStateDTO 项目详情页的交互状态数据
type ProjectActionStateDTO struct {
	LikeCount    int64 `json:"like_count"`
	ViewCount    int64 `json:"view_count"`
	CommentCount int64 `json:"comment_count"`
	IsLiked      bool  `json:"is_liked"`
}
