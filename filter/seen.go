package filter

import (
	"context"
	"encoding/json"

	"github.com/venuzlabs/feedkit/core"
)

// SeenFilter 是已读过滤器：剔除访客近期看过的内容，避免翻页重复。
// 已读历史以 JSON 数组存于 {KeyPrefix}:{ViewerID}，由曝光上报侧维护。
type SeenFilter struct {
	Store core.Store

	// KeyPrefix 默认 "viewer:seen"
	KeyPrefix string
}

func (f *SeenFilter) Name() string { return "filter.seen" }

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	fctx *core.FeedContext,
	item *core.Item,
) (bool, error) {
	if item == nil || fctx == nil || fctx.ViewerID == "" || f.Store == nil {
		return false, nil
	}

	prefix := f.KeyPrefix
	if prefix == "" {
		prefix = "viewer:seen"
	}

	data, err := f.Store.Get(ctx, prefix+":"+fctx.ViewerID)
	if err != nil {
		// 历史缺失或读取失败都按未读处理
		return false, nil
	}

	var ids []string
	if json.Unmarshal(data, &ids) != nil {
		return false, nil
	}
	for _, id := range ids {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}
