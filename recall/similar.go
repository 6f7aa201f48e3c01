package recall

import (
	"context"

	"github.com/venuzlabs/feedkit/core"
)

// SimilarSource 是类目亲和召回源：按访客 Top 类目分别取池，
// 让个人偏好类目在工作池中有稳定供给。
type SimilarSource struct {
	Store core.ContentStore

	// PerCategory 是每个类目的取数上限，默认 20
	PerCategory int
	// MaxCategories 限制参与召回的 Top 类目个数，默认 3
	MaxCategories int
}

func (r *SimilarSource) Name() string { return "recall.similar" }

func (r *SimilarSource) Recall(
	ctx context.Context,
	fctx *core.FeedContext,
) ([]*core.Item, error) {
	if r.Store == nil || fctx == nil || len(fctx.TopCategories) == 0 {
		return nil, nil
	}

	perCategory := r.PerCategory
	if perCategory <= 0 {
		perCategory = 20
	}
	maxCats := r.MaxCategories
	if maxCats <= 0 {
		maxCats = 3
	}

	cats := fctx.TopCategories
	if len(cats) > maxCats {
		cats = cats[:maxCats]
	}

	var out []*core.Item
	for _, cat := range cats {
		items, err := r.Store.QueryPool(ctx, core.PoolQuery{
			Category: cat,
			Limit:    perCategory,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}
