package consts

const (
	ProjectStatusNormal  int8 = 1
	ProjectStatusRemoved int8 = 2
)

const (
	// DigestSize 每封摘要邮件包含的推荐数量
	DigestSize = 5

	// TrendingWindowDays 热门榜统计窗口
	TrendingWindowDays = 7
)
