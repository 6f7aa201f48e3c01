package core

import "context"

// EngagementSource 提供由互动历史收敛出的访客偏好排行。
//
// 排行的计算（计数、衰减、窗口）属于外部协作方，本核心只消费结果：
// 最多 5 个类目、10 个标签，按互动热度降序。
type EngagementSource interface {
	// TopCategories 返回访客最常互动的类目（最多 5 个，降序）
	TopCategories(ctx context.Context, viewerID string) ([]string, error)

	// TopTags 返回访客最常互动的标签（最多 10 个，降序）
	TopTags(ctx context.Context, viewerID string) ([]string, error)
}
