package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/venuzlabs/feedkit/core"
)

const (
	contentHashKey    = "content:items"
	contentTimeline   = "content:timeline"
	contentCategoryTL = "content:timeline:" // + category
)

// ContentKV 是基于 KeyValueStore 的 ContentStore 实现。
//
// 数据布局：
//   - Hash content:items：field=ID，value=Item JSON
//   - ZSet content:timeline：member=ID，score=CreatedAt（秒）
//   - ZSet content:timeline:{category}：同上，按类目分线
//
// QueryPool 经由 ZRevRange 天然按新近度降序。
type ContentKV struct {
	kv core.KeyValueStore

	// UpdateCounters 的 read-modify-write 需要串行化
	mu sync.Mutex
}

func NewContentKV(kv core.KeyValueStore) *ContentKV {
	return &ContentKV{kv: kv}
}

var _ core.ContentStore = (*ContentKV)(nil)

func (s *ContentKV) Insert(ctx context.Context, item *core.Item) error {
	if item == nil || item.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
			"content: insert requires item with id")
	}

	data, err := json.Marshal(item)
	if err != nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError,
			fmt.Sprintf("content: encode %s: %v", item.ID, err))
	}

	if err := s.kv.HSet(ctx, contentHashKey, item.ID, data); err != nil {
		return err
	}

	score := float64(item.CreatedAt.Unix())
	if err := s.kv.ZAdd(ctx, contentTimeline, score, item.ID); err != nil {
		return err
	}
	if item.Category != "" {
		if err := s.kv.ZAdd(ctx, contentCategoryTL+item.Category, score, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ContentKV) QueryPool(ctx context.Context, q core.PoolQuery) ([]*core.Item, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	key := contentTimeline
	if q.Category != "" {
		key = contentCategoryTL + q.Category
	}

	ids, err := s.kv.ZRange(ctx, key, int64(offset), int64(offset+limit-1))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it, err := s.Get(ctx, id)
		if err != nil {
			// 时间线与哈希可能短暂不一致，跳过缺失项
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *ContentKV) UpdateCounters(ctx context.Context, id string, likesDelta, viewsDelta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	it.Likes += likesDelta
	it.Views += viewsDelta
	if it.Likes < 0 {
		it.Likes = 0
	}
	if it.Views < 0 {
		it.Views = 0
	}

	data, err := json.Marshal(it)
	if err != nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError,
			fmt.Sprintf("content: encode %s: %v", id, err))
	}
	return s.kv.HSet(ctx, contentHashKey, id, data)
}

func (s *ContentKV) Get(ctx context.Context, id string) (*core.Item, error) {
	data, err := s.kv.HGet(ctx, contentHashKey, id)
	if err != nil {
		return nil, err
	}

	var it core.Item
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError,
			fmt.Sprintf("content: decode %s: %v", id, err))
	}
	return &it, nil
}
