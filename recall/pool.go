// Package recall 提供 Feed 的召回源与并发 fan-out Node。
package recall

import (
	"context"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pipeline"
	"github.com/venuzlabs/feedkit/pkg/conv"
)

const (
	// DefaultPageSize 是未指定 page_size 时的页大小。
	DefaultPageSize = 20
	// PoolMultiplier 决定工作池相对页大小的倍数：
	// 混排需要足够的各桶余量才能贴近目标配比。
	PoolMultiplier = 5
)

// PoolSource 是主召回源：从内容存储按新近度取工作池。
// 同时实现 Source 与 Node 接口，可直接挂进 Pipeline。
type PoolSource struct {
	Store core.ContentStore

	// Category 可选：只取指定类目
	Category string
	// Limit 可选：显式池大小；0 时按 page_size*PoolMultiplier 计算
	Limit int
}

func (r *PoolSource) Name() string        { return "recall.pool" }
func (r *PoolSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *PoolSource) Process(
	ctx context.Context,
	fctx *core.FeedContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, fctx)
}

// Recall 实现 Source 接口。
func (r *PoolSource) Recall(
	ctx context.Context,
	fctx *core.FeedContext,
) ([]*core.Item, error) {
	if r.Store == nil {
		return nil, nil
	}

	limit := r.Limit
	if limit <= 0 {
		limit = PageSize(fctx) * PoolMultiplier
	}

	return r.Store.QueryPool(ctx, core.PoolQuery{
		Category: r.Category,
		Limit:    limit,
	})
}

// PageSize 从请求参数解析 page_size，未指定时取默认值。
func PageSize(fctx *core.FeedContext) int {
	if fctx == nil || fctx.Params == nil {
		return DefaultPageSize
	}
	if n := conv.ConfigGetInt(fctx.Params, "page_size", DefaultPageSize); n > 0 {
		return n
	}
	return DefaultPageSize
}
