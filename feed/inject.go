package feed

import "github.com/venuzlabs/feedkit/core"

// injectEvery 是广告注入间隔：每 6 条内容后插入一个广告位。
const injectEvery = 6

// InjectAffiliates 把广告位按固定间隔轮询注入内容序列，产出最终 Feed 条目。
// slots 为空时退化为纯内容 Feed。这是外部重排不可用时的确定性路径。
func InjectAffiliates(items []*core.Item, slots []*core.AffiliateSlot) []core.FeedEntry {
	active := make([]*core.AffiliateSlot, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			active = append(active, s)
		}
	}

	out := make([]core.FeedEntry, 0, len(items)+len(items)/injectEvery)
	adIndex := 0
	emitted := 0

	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, core.FeedEntry{Kind: core.EntryContent, Content: it})
		emitted++
		if len(active) > 0 && emitted%injectEvery == 0 {
			out = append(out, core.FeedEntry{Kind: core.EntryAd, Ad: active[adIndex%len(active)]})
			adIndex++
		}
	}
	return out
}
