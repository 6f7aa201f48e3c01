// Package engage 提供互动信号的存取：喜欢/浏览计数回流，
// 以及由互动历史收敛的访客偏好排行（core.EngagementSource 的实现）。
package engage

import (
	"context"

	"github.com/venuzlabs/feedkit/core"
)

const (
	maxTopCategories = 5
	maxTopTags       = 10

	catKeyPrefix = "engage:cat:" // + viewerID，zset：category -> 互动次数
	tagKeyPrefix = "engage:tag:" // + viewerID，zset：tag -> 互动次数
)

// KVSource 是基于 KeyValueStore 的 EngagementSource 实现。
// 每次喜欢事件经 RecordLike 累积计数，排行即 zset 的降序前缀。
type KVSource struct {
	KV core.KeyValueStore
}

var _ core.EngagementSource = (*KVSource)(nil)

func NewKVSource(kv core.KeyValueStore) *KVSource {
	return &KVSource{KV: kv}
}

// RecordLike 把一次喜欢事件累积进访客的类目/标签计数。
func (s *KVSource) RecordLike(ctx context.Context, viewerID string, item *core.Item) error {
	if viewerID == "" || item == nil {
		return nil
	}

	if item.Category != "" {
		if err := s.incr(ctx, catKeyPrefix+viewerID, item.Category); err != nil {
			return err
		}
	}
	for _, tag := range item.Tags {
		if err := s.incr(ctx, tagKeyPrefix+viewerID, tag); err != nil {
			return err
		}
	}
	return nil
}

func (s *KVSource) incr(ctx context.Context, key, member string) error {
	score, err := s.KV.ZScore(ctx, key, member)
	if err != nil && !core.IsStoreNotFound(err) {
		return err
	}
	return s.KV.ZAdd(ctx, key, score+1, member)
}

// TopCategories 返回访客最常互动的类目（最多 5 个，降序）。
func (s *KVSource) TopCategories(ctx context.Context, viewerID string) ([]string, error) {
	return s.KV.ZRange(ctx, catKeyPrefix+viewerID, 0, maxTopCategories-1)
}

// TopTags 返回访客最常互动的标签（最多 10 个，降序）。
func (s *KVSource) TopTags(ctx context.Context, viewerID string) ([]string, error) {
	return s.KV.ZRange(ctx, tagKeyPrefix+viewerID, 0, maxTopTags-1)
}
