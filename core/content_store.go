package core

import "context"

// PoolQuery 是候选池查询条件。
// Scorer 期望的工作池约为页大小的 5 倍，由调用方换算进 Limit。
type PoolQuery struct {
	Category string // 可选：按类目过滤
	Limit    int
	Offset   int
}

// ContentStore 是内容存储协作方的能力契约。
//
// 排序保证：QueryPool 按时间/质量键降序返回，足以产出代表性的候选池。
// 事务语义由实现方负责，本核心不感知。
type ContentStore interface {
	// Insert 写入一条准入通过的内容
	Insert(ctx context.Context, item *Item) error

	// QueryPool 按新近度降序取候选池
	QueryPool(ctx context.Context, q PoolQuery) ([]*Item, error)

	// UpdateCounters 增量更新互动计数（likes/views 的增量，可为 0）
	UpdateCounters(ctx context.Context, id string, likesDelta, viewsDelta int64) error

	// Get 按 ID 读取单条内容
	Get(ctx context.Context, id string) (*Item, error)
}

// AffiliateProvider 提供当前生效的广告位池，只读。
type AffiliateProvider interface {
	ActiveSlots(ctx context.Context) ([]*AffiliateSlot, error)
}
