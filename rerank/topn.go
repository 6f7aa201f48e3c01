package rerank

import (
	"context"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pipeline"
)

// TopNNode 是 Top-N 截断节点，用于在混排后截取一页结果。
//
// 使用场景：
//   - 混排/限流后只返回一页（page_size）内容
//   - 控制下游（外部重排、广告注入）的输入规模
type TopNNode struct {
	// N 要保留的条数；N <= 0 或大于输入长度时不截断
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.FeedContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
