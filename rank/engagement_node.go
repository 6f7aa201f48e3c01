// Package rank 提供 Feed 的排序 Node：互动加权打分与优惠内容加权。
package rank

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pipeline"
	"github.com/venuzlabs/feedkit/pkg/utils"
)

// EngagementNode 是主排序 Node：按互动量、个人亲和度、新鲜度与运营标记
// 对候选打分，并按分数降序排序。
//
// 打分构成：
//   - 互动：likes*2 + views*0.5
//   - 类目亲和：命中访客 Top 类目第 k 名（0 起）加 30-5k
//   - 标签亲和：每个命中 Top 标签的 tag 加 10
//   - 新鲜度：<1 天 +25；<7 天线性衰减 20*(1-age/7d)
//   - 运营标记：verified +10、premium +5、可变现 +15
//   - 探索扰动：U[0,15) 的随机抖动，避免 Feed 固化
//
// 扰动从 fctx.Rng() 取样：注入固定 seed 即可得到确定性排序。
type EngagementNode struct {
	// Now 用于测试注入时钟，nil 时取 time.Now
	Now func() time.Time
}

func (n *EngagementNode) Name() string        { return "rank.engagement" }
func (n *EngagementNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *EngagementNode) Process(
	_ context.Context,
	fctx *core.FeedContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	rng := fctx.Rng()

	for _, it := range items {
		if it == nil {
			continue
		}
		score := engagementScore(it) +
			affinityScore(fctx, it) +
			recencyScore(it, now) +
			flagScore(it) +
			rng.Float64()*15

		it.Score = score
		it.PutLabel("rank_score", utils.Label{
			Value:  strconv.FormatFloat(score, 'f', 2, 64),
			Source: "rank",
		})
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

func engagementScore(it *core.Item) float64 {
	return float64(it.Likes)*2 + float64(it.Views)*0.5
}

func affinityScore(fctx *core.FeedContext, it *core.Item) float64 {
	score := 0.0

	if rank := fctx.CategoryRank(it.Category); rank >= 0 {
		if pts := 30 - 5*rank; pts > 0 {
			score += float64(pts)
		}
	}

	if len(fctx.TopTags) > 0 && len(it.Tags) > 0 {
		top := make(map[string]bool, len(fctx.TopTags))
		for _, t := range fctx.TopTags {
			top[t] = true
		}
		for _, t := range it.Tags {
			if top[t] {
				score += 10
			}
		}
	}
	return score
}

func recencyScore(it *core.Item, now time.Time) float64 {
	if it.CreatedAt.IsZero() {
		return 0
	}
	age := now.Sub(it.CreatedAt)
	switch {
	case age < 24*time.Hour:
		return 25
	case age < 7*24*time.Hour:
		days := age.Hours() / 24
		return 20 * (1 - days/7)
	default:
		return 0
	}
}

func flagScore(it *core.Item) float64 {
	score := 0.0
	if it.IsVerified {
		score += 10
	}
	if it.IsPremium {
		score += 5
	}
	if it.AffiliateSource != "" {
		score += 15
	}
	return score
}
