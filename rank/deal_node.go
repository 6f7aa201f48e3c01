package rank

import (
	"context"
	"sort"
	"strings"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pipeline"
	"github.com/venuzlabs/feedkit/pkg/utils"
)

// dealKeywords 是高价值优惠话术（以西语市场为主）。
var dealKeywords = []string{
	"2x1", "3x2", "50%", "descuento", "gratis", "free", "no cover",
	"barra libre", "ladies night", "happy hour", "happy-hour",
	"cubetazo", "promocion", "promo", "oferta", "cumpleañero",
	"botella gratis", "shot gratis", "entrada libre",
}

// genericCategories 是「填充型」泛类目：无优惠时压低排序。
var genericCategories = []string{"restaurant", "hotel", "cafe", "bar_generico"}

// DealNode 在主排序之后对真实优惠做强加权、对无优惠的泛类目内容做降权，
// 让「今晚有什么便宜的」优先浮出。通常接在 rank.engagement 之后。
type DealNode struct {
	// DealBoost 是优惠命中的加分，0 取默认 500
	DealBoost float64
	// FillerPenalty 是泛类目无优惠的减分，0 取默认 200
	FillerPenalty float64
}

func (n *DealNode) Name() string        { return "rank.deal" }
func (n *DealNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *DealNode) Process(
	_ context.Context,
	_ *core.FeedContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	boost := n.DealBoost
	if boost == 0 {
		boost = 500
	}
	penalty := n.FillerPenalty
	if penalty == 0 {
		penalty = 200
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		if hasDeal(it) {
			it.Score += boost
			it.PutLabel("deal", utils.Label{Value: "true", Source: "rank"})
			continue
		}
		if isGeneric(it.Category) {
			it.Score -= penalty
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
	return items, nil
}

func hasDeal(it *core.Item) bool {
	text := strings.ToLower(it.Title + " " + it.Description + " " + strings.Join(it.Tags, " "))
	for _, kw := range dealKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isGeneric(category string) bool {
	c := strings.ToLower(category)
	for _, g := range genericCategories {
		if c == g {
			return true
		}
	}
	return false
}
