package core

import (
	"time"

	"github.com/venuzlabs/feedkit/pkg/utils"
)

// GeoPoint 表示一个经纬度坐标。
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Item 是已通过准入（Admission）并落库的内容，贯穿整个 Feed Pipeline。
//
// 设计要点：
//   - 准入时写入的字段（QualityScore、CreatedAt 等）不可变
//   - 互动计数（Likes、Views）由互动事件更新
//   - Score 是请求级的排序分数，不持久化
//   - Labels 全链路透传，用于 explain / 观测 / 策略驱动
type Item struct {
	ID          string
	Title       string
	Description string
	Category    string
	Tags        []string
	Coords      *GeoPoint // 可选，部分来源无坐标
	ImageURL    string
	SourceSite  string
	Language    string

	// 准入时写入
	QualityScore int // [0,100]
	CreatedAt    time.Time
	IsPermanent  bool // 常驻场所（不过期）

	// 互动计数（可变）
	Likes int64
	Views int64

	// 运营标记
	IsVerified      bool
	IsPremium       bool
	IsNSFW          bool
	AffiliateSource string // 非空表示可变现内容

	// 请求级排序分数（由 rank 阶段写入，不持久化）
	Score float64

	Labels map[string]utils.Label `json:"labels,omitempty"`
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// AffiliateSlot 是联盟广告位，由外部广告池提供，Feed 只读轮询消费。
type AffiliateSlot struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	PayoutWeight float64 `json:"payout_weight"`
}

// EntryKind 标记 Feed 输出条目的类型。
type EntryKind string

const (
	EntryContent EntryKind = "content"
	EntryAd      EntryKind = "ad"
)

// FeedEntry 是最终 Feed 中的一个位置：内容或广告，二者有且仅有其一。
type FeedEntry struct {
	Kind    EntryKind
	Content *Item
	Ad      *AffiliateSlot
}
