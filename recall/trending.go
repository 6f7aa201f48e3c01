package recall

import (
	"context"

	"github.com/venuzlabs/feedkit/core"
)

// TrendingSource 是趋势召回源：从有序集合读取互动热度榜，再回表取内容。
// 榜单由互动事件侧写入（score = 加权互动量），此处只读。
type TrendingSource struct {
	KV      core.KeyValueStore
	Content core.ContentStore

	// Key 是趋势榜的有序集合 key，默认 "trending:items"
	Key string
	// TopK 取榜单前 K 条，默认 50
	TopK int
}

func (r *TrendingSource) Name() string { return "recall.trending" }

func (r *TrendingSource) Recall(
	ctx context.Context,
	_ *core.FeedContext,
) ([]*core.Item, error) {
	if r.KV == nil || r.Content == nil {
		return nil, nil
	}

	key := r.Key
	if key == "" {
		key = "trending:items"
	}
	topK := r.TopK
	if topK <= 0 {
		topK = 50
	}

	ids, err := r.KV.ZRange(ctx, key, 0, int64(topK-1))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it, err := r.Content.Get(ctx, id)
		if err != nil {
			// 榜单成员可能已下架，跳过即可
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
