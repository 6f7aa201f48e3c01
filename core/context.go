package core

import (
	"math/rand"

	"github.com/venuzlabs/feedkit/pkg/utils"
)

// FeedContext 承载访客/场景/实时信息，贯穿整个 Pipeline 透传。
//
// 随机性说明：排序扰动与桶内洗牌都从 Rand 取随机数。
// 调用方可注入固定 seed 的 Rand 做确定性测试；为 nil 时使用进程级随机源。
type FeedContext struct {
	ViewerID string // 匿名化访客 ID
	DeviceID string
	Mode     SeedMode // 落地提示："adult" / "events" / 空

	// Location 是访客坐标，驱动地域配比覆盖（如优先市场强制 venue/event 占比）
	Location *GeoPoint

	// Profile 是访客的分桶兴趣画像，混排目标配比的来源
	Profile *PreferenceProfile

	// TopCategories / TopTags 由互动历史收敛得出（外部协作方提供）：
	// 最多 5 个类目、10 个标签，按互动热度降序
	TopCategories []string
	TopTags       []string

	// Labels 是访客级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（page_size、filter 等）
	Params map[string]any

	// Rand 是可注入的随机源；见上方随机性说明
	Rand *rand.Rand
}

// Rng 返回请求随机源；未注入时退回进程级随机函数。
func (fctx *FeedContext) Rng() *rand.Rand {
	if fctx != nil && fctx.Rand != nil {
		return fctx.Rand
	}
	// 注意：全局源并发安全，局部 rand.Rand 不是；Pipeline 内单请求串行使用
	return rand.New(rand.NewSource(rand.Int63()))
}

// CategoryRank 返回类目在 TopCategories 中的名次（0 起），不存在时返回 -1。
func (fctx *FeedContext) CategoryRank(category string) int {
	for i, c := range fctx.TopCategories {
		if c == category {
			return i
		}
	}
	return -1
}

// PutLabel 写入访客级 Label。
func (fctx *FeedContext) PutLabel(key string, lbl utils.Label) {
	if fctx.Labels == nil {
		fctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := fctx.Labels[key]; ok {
		fctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	fctx.Labels[key] = lbl
}
