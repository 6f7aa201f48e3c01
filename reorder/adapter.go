package reorder

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/venuzlabs/feedkit/core"
)

const (
	// DefaultTimeout 是一次外部重排调用的超时。
	DefaultTimeout = 8 * time.Second
	// DefaultMinResolved 是采纳外部结果所需的最少可解析条数：
	// 结果过短说明模型丢弃了大部分清单，不如确定性混排。
	DefaultMinResolved = 10
)

// Adapter 把 core.ReorderService 的 best-effort 结果适配为最终 Feed 条目。
//
// 采纳条件（全部满足才采纳）：
//   - 调用在超时内成功返回且可解析
//   - 按 ID 解析回清单后，有效条目数不少于 MinResolved
//
// 任一失败都返回 ok=false，调用方走确定性路径。不可解析的单条 ID 跳过。
type Adapter struct {
	Service core.ReorderService
	Log     zerolog.Logger

	// Timeout 为 0 时取 DefaultTimeout
	Timeout time.Duration
	// MinResolved 为 0 时取 DefaultMinResolved
	MinResolved int
}

// Apply 请求外部重排并解析结果。
// ok=false 表示外部路径不可用，entries 为 nil。
func (a *Adapter) Apply(
	ctx context.Context,
	viewer *core.ViewerContext,
	items []*core.Item,
	ads []*core.AffiliateSlot,
) ([]core.FeedEntry, bool) {
	if a.Service == nil || len(items) == 0 {
		return nil, false
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ordered, err := a.Service.Reorder(rctx, buildManifest(items, ads), viewer)
	if err != nil {
		a.Log.Warn().Err(err).Msg("external reorder failed, falling back")
		return nil, false
	}

	byContent := make(map[string]*core.Item, len(items))
	for _, it := range items {
		if it != nil {
			byContent[it.ID] = it
		}
	}
	byAd := make(map[string]*core.AffiliateSlot, len(ads))
	for _, ad := range ads {
		if ad != nil {
			byAd[ad.ID] = ad
		}
	}

	entries := make([]core.FeedEntry, 0, len(ordered))
	usedContent := make(map[string]bool, len(ordered))
	for _, o := range ordered {
		switch o.Type {
		case core.EntryAd:
			if ad, ok := byAd[o.ID]; ok {
				entries = append(entries, core.FeedEntry{Kind: core.EntryAd, Ad: ad})
			}
		default:
			if it, ok := byContent[o.ID]; ok && !usedContent[o.ID] {
				usedContent[o.ID] = true
				entries = append(entries, core.FeedEntry{Kind: core.EntryContent, Content: it})
			}
		}
	}

	minResolved := a.MinResolved
	if minResolved <= 0 {
		minResolved = DefaultMinResolved
	}
	if len(entries) < minResolved {
		a.Log.Warn().
			Int("resolved", len(entries)).
			Int("min", minResolved).
			Msg("external reorder result too short, falling back")
		return nil, false
	}

	return entries, true
}

func buildManifest(items []*core.Item, ads []*core.AffiliateSlot) *core.Manifest {
	m := &core.Manifest{
		Contents: make([]core.ManifestContent, 0, len(items)),
		Ads:      make([]core.ManifestAd, 0, len(ads)),
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		m.Contents = append(m.Contents, core.ManifestContent{
			ID:       it.ID,
			Title:    it.Title,
			Category: it.Category,
			Score:    it.Score,
		})
	}
	for _, ad := range ads {
		if ad == nil {
			continue
		}
		m.Ads = append(m.Ads, core.ManifestAd{
			ID:     ad.ID,
			Title:  ad.Title,
			Payout: ad.PayoutWeight,
		})
	}
	return m
}
