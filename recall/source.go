package recall

import (
	"context"

	"github.com/venuzlabs/feedkit/core"
)

// Source 表示一个可复用的召回源（近期池/趋势榜/类目亲和/...）。
// 可以把它理解为「可并发 fan-out 的策略单元」。
type Source interface {
	Name() string
	Recall(ctx context.Context, fctx *core.FeedContext) ([]*core.Item, error)
}
