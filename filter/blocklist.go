package filter

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/venuzlabs/feedkit/core"
)

// BlocklistFilter 是来源/内容屏蔽过滤器。
// 支持内存列表与 Store 两种来源，任一命中即过滤。
type BlocklistFilter struct {
	// ItemIDs 是内存中的屏蔽内容 ID 列表
	ItemIDs []string
	// Sources 是内存中的屏蔽来源站点列表（小写匹配）
	Sources []string

	// Store 用于从存储中读取屏蔽列表（可选），按行存 JSON 数组
	Store core.Store
	// Key 是 Store 中的屏蔽列表 key（可选）
	Key string
}

func (f *BlocklistFilter) Name() string { return "filter.blocklist" }

func (f *BlocklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.FeedContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.ItemIDs {
		if item.ID == id {
			return true, nil
		}
	}

	site := strings.ToLower(item.SourceSite)
	for _, s := range f.Sources {
		if site == strings.ToLower(s) {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		ids, err := loadList(ctx, f.Store, f.Key)
		if err == nil {
			for _, id := range ids {
				if item.ID == id {
					return true, nil
				}
			}
		}
	}

	return false, nil
}

func loadList(ctx context.Context, store core.Store, key string) ([]string, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
