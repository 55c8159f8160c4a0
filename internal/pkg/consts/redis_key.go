package consts

const (
	ProjectLikeKey     = "project:like:"
	ProjectViewKey     = "project:view:"
	ProjectCommentKey  = "project:comment:"
	ProjectTrendingKey = "project:trending"
)

const (
	DigestSentLock = "digest:sent:"
)
