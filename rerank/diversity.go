package rerank

import (
	"context"
	"strings"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pipeline"
)

// Diversity 是微小众限流 Node：防止单一小众题材霸屏。
// 当一个小众关键词命中项的前两个已输出项都命中同一关键词时，丢弃该项。
// 接在 rerank.mixer 之后，对混排结果做最终修剪。
type Diversity struct {
	// NicheKeywords 是按 title+description 匹配的小众关键词（小写），
	// 为空时使用内置列表
	NicheKeywords []string
}

var defaultNicheKeywords = []string{"gay"}

func (n *Diversity) Name() string        { return "rerank.diversity" }
func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	_ *core.FeedContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	keywords := n.NicheKeywords
	if len(keywords) == 0 {
		keywords = defaultNicheKeywords
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if kw := matchNiche(it, keywords); kw != "" && lastTwoMatch(out, kw) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func matchNiche(it *core.Item, keywords []string) string {
	text := strings.ToLower(it.Title + " " + it.Description)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}

// lastTwoMatch 判断已输出序列的最后两项是否都命中同一关键词。
func lastTwoMatch(out []*core.Item, kw string) bool {
	if len(out) < 2 {
		return false
	}
	for _, it := range out[len(out)-2:] {
		if !strings.Contains(strings.ToLower(it.Title+" "+it.Description), kw) {
			return false
		}
	}
	return true
}
