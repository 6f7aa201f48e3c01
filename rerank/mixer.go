// Package rerank 提供 Feed 的重排 Node：目标配比混排、微小众限流与 TopN 截断。
package rerank

import (
	"context"

	"github.com/venuzlabs/feedkit/bucket"
	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pipeline"
	"github.com/venuzlabs/feedkit/pkg/utils"
)

// GeoBounds 是一个经纬度包围盒。
type GeoBounds struct {
	North float64 `yaml:"north" json:"north"`
	South float64 `yaml:"south" json:"south"`
	East  float64 `yaml:"east" json:"east"`
	West  float64 `yaml:"west" json:"west"`
}

// Contains 判断坐标是否落在包围盒内。
func (b GeoBounds) Contains(pt *core.GeoPoint) bool {
	return pt != nil &&
		pt.Lat <= b.North && pt.Lat >= b.South &&
		pt.Lng <= b.East && pt.Lng >= b.West
}

// LocaleRule 是地域配比覆盖：访客落在 Bounds 内时，
// MinRatios 中的桶配比被抬升到下限，其余桶按比例压缩。
type LocaleRule struct {
	Name      string
	Bounds    GeoBounds
	MinRatios map[core.Bucket]float64
}

// DefaultLocales 返回内置地域规则。
// 优先市场（Puerto Vallarta）强制本地场所/活动占据 Feed 主体。
func DefaultLocales() []LocaleRule {
	return []LocaleRule{
		{
			Name:   "puerto_vallarta",
			Bounds: GeoBounds{North: 20.75, South: 20.55, East: -105.15, West: -105.35},
			MinRatios: map[core.Bucket]float64{
				core.BucketVenue: 0.4,
				core.BucketEvent: 0.3,
			},
		},
	}
}

// Mixer 按访客画像的目标配比对候选做欠额插排（deficit interleaving）。
//
// 流程：
//  1. 画像归一化为目标配比；命中地域规则时施加配比下限
//  2. 候选按桶分堆，堆内 Fisher-Yates 洗牌（随机源来自 fctx.Rng()）
//  3. 逐位置挑「欠额」最大的非空桶出堆；全部欠额桶为空时按固定桶序兜底
//
// 输出长度恒等于输入长度：配比决定顺序，不丢弃内容。
type Mixer struct {
	// Classifier 为空时使用内置规则表
	Classifier *bucket.Classifier
	// Locales 为 nil 时使用 DefaultLocales；显式传空切片可关闭地域覆盖
	Locales []LocaleRule
}

func (n *Mixer) Name() string        { return "rerank.mixer" }
func (n *Mixer) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Mixer) Process(
	_ context.Context,
	fctx *core.FeedContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	cls := n.Classifier
	if cls == nil {
		cls = bucket.MustClassifier(nil)
	}

	profile := fctx.Profile
	if profile == nil {
		profile = core.NewPreferenceProfile(fctx.Mode)
	}
	ratios := profile.Ratios()
	n.applyLocale(fctx, ratios)

	// 分堆 + 堆内洗牌
	stacks := make(map[core.Bucket][]*core.Item, 4)
	for _, it := range items {
		if it == nil {
			continue
		}
		b := cls.ClassifyItem(it)
		it.PutLabel("bucket", utils.Label{Value: string(b), Source: "rerank"})
		stacks[b] = append(stacks[b], it)
	}
	rng := fctx.Rng()
	for _, stack := range stacks {
		for i := len(stack) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			stack[i], stack[j] = stack[j], stack[i]
		}
	}

	// 欠额插排
	total := 0
	for _, stack := range stacks {
		total += len(stack)
	}
	out := make([]*core.Item, 0, total)
	counts := make(map[core.Bucket]int, 4)

	for i := 0; i < total; i++ {
		picked := n.pickMostOwed(stacks, ratios, counts, i+1)
		if picked == "" {
			picked = firstNonEmpty(stacks)
		}
		if picked == "" {
			break
		}
		out = append(out, stacks[picked][0])
		stacks[picked] = stacks[picked][1:]
		counts[picked]++
	}
	return out, nil
}

// applyLocale 对命中的地域规则施加配比下限并重新归一化其余桶。
func (n *Mixer) applyLocale(fctx *core.FeedContext, ratios map[core.Bucket]float64) {
	locales := n.Locales
	if locales == nil {
		locales = DefaultLocales()
	}

	for _, rule := range locales {
		if !rule.Bounds.Contains(fctx.Location) {
			continue
		}

		forced := 0.0
		for b, min := range rule.MinRatios {
			if ratios[b] < min {
				ratios[b] = min
			}
			forced += ratios[b]
		}

		remaining := 1 - forced
		if remaining < 0 {
			remaining = 0
		}
		otherTotal := 0.0
		for _, b := range core.Buckets() {
			if _, ok := rule.MinRatios[b]; !ok {
				otherTotal += ratios[b]
			}
		}
		if otherTotal > 0 {
			for _, b := range core.Buckets() {
				if _, ok := rule.MinRatios[b]; !ok {
					ratios[b] = ratios[b] / otherTotal * remaining
				}
			}
		}
		return
	}
}

// pickMostOwed 返回当前「欠额」最大的非空桶；全部非空桶欠额相同按固定桶序取先。
func (n *Mixer) pickMostOwed(
	stacks map[core.Bucket][]*core.Item,
	ratios map[core.Bucket]float64,
	counts map[core.Bucket]int,
	position int,
) core.Bucket {
	var best core.Bucket
	bestDeficit := 0.0
	found := false

	for _, b := range core.Buckets() {
		if len(stacks[b]) == 0 {
			continue
		}
		deficit := ratios[b]*float64(position) - float64(counts[b])
		if !found || deficit > bestDeficit {
			best = b
			bestDeficit = deficit
			found = true
		}
	}
	if !found {
		return ""
	}
	return best
}

func firstNonEmpty(stacks map[core.Bucket][]*core.Item) core.Bucket {
	for _, b := range core.Buckets() {
		if len(stacks[b]) > 0 {
			return b
		}
	}
	return ""
}
