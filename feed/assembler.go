// Package feed 是装配入口：组合召回/过滤/排序/混排 Pipeline、
// 外部重排与广告注入，产出最终 Feed；并承接互动事件的回流。
package feed

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/venuzlabs/feedkit/bucket"
	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pipeline"
	"github.com/venuzlabs/feedkit/profile"
	"github.com/venuzlabs/feedkit/reorder"
)

// LikeRecorder 把喜欢事件累积进互动排行（如 engage.KVSource）。
type LikeRecorder interface {
	RecordLike(ctx context.Context, viewerID string, item *core.Item) error
}

// Request 是一次 Feed 请求。
type Request struct {
	ViewerID string
	DeviceID string
	Mode     core.SeedMode
	Location *core.GeoPoint

	// PageSize 为 0 时取默认页大小
	PageSize int

	// Rand 可注入固定 seed 的随机源做确定性测试
	Rand *rand.Rand
}

// Assembler 装配完整 Feed。除 Pipeline 与 Profiles 外的协作方都可缺省：
// 缺省时相应环节按 best-effort 跳过。
type Assembler struct {
	Pipeline *pipeline.Pipeline
	Profiles *profile.Manager

	Engagement core.EngagementSource
	Affiliates core.AffiliateProvider
	Reorder    *reorder.Adapter

	Content    core.ContentStore
	Liker      LikeRecorder
	Classifier *bucket.Classifier

	Log zerolog.Logger
}

// Assemble 产出一页 Feed 条目。
//
// 外部重排是可选增强：Adapter 判定可用时采纳其顺序，
// 否则落回「Pipeline 混排结果 + 固定间隔广告注入」的确定性路径。
func (a *Assembler) Assemble(ctx context.Context, req *Request) ([]core.FeedEntry, error) {
	if req == nil || req.ViewerID == "" {
		return nil, core.NewDomainError(core.ModuleFeed, core.ErrorCodeInvalidInput,
			"feed: request requires viewer id")
	}

	prof, err := a.Profiles.Load(ctx, req.ViewerID, req.Mode)
	if err != nil {
		return nil, err
	}

	fctx := &core.FeedContext{
		ViewerID: req.ViewerID,
		DeviceID: req.DeviceID,
		Mode:     req.Mode,
		Location: req.Location,
		Profile:  prof,
		Params:   map[string]any{},
		Rand:     req.Rand,
	}
	if req.PageSize > 0 {
		fctx.Params["page_size"] = req.PageSize
	}

	if a.Engagement != nil {
		cats, err := a.Engagement.TopCategories(ctx, req.ViewerID)
		if err != nil {
			a.Log.Warn().Err(err).Msg("load top categories")
		} else {
			fctx.TopCategories = cats
		}
		tags, err := a.Engagement.TopTags(ctx, req.ViewerID)
		if err != nil {
			a.Log.Warn().Err(err).Msg("load top tags")
		} else {
			fctx.TopTags = tags
		}
	}

	items, err := a.Pipeline.Run(ctx, fctx, nil)
	if err != nil {
		return nil, err
	}

	var slots []*core.AffiliateSlot
	if a.Affiliates != nil {
		slots, err = a.Affiliates.ActiveSlots(ctx)
		if err != nil {
			a.Log.Warn().Err(err).Msg("load affiliate slots")
			slots = nil
		}
	}

	if a.Reorder != nil {
		viewer := &core.ViewerContext{ViewerID: req.ViewerID, Location: req.Location}
		if entries, ok := a.Reorder.Apply(ctx, viewer, items, slots); ok {
			return entries, nil
		}
	}

	return InjectAffiliates(items, slots), nil
}

// RecordLike 承接一次喜欢事件：互动计数 +1、画像回流、排行累积。
func (a *Assembler) RecordLike(ctx context.Context, viewerID, itemID string) error {
	if a.Content == nil {
		return core.NewDomainError(core.ModuleFeed, core.ErrorCodeNotSupported,
			"feed: no content store configured")
	}

	it, err := a.Content.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if err := a.Content.UpdateCounters(ctx, itemID, 1, 0); err != nil {
		return err
	}

	cls := a.Classifier
	if cls == nil {
		cls = bucket.MustClassifier(nil)
	}
	if _, err := a.Profiles.ApplyEngagement(ctx, viewerID, cls.ClassifyItem(it)); err != nil {
		return err
	}

	if a.Liker != nil {
		if err := a.Liker.RecordLike(ctx, viewerID, it); err != nil {
			a.Log.Warn().Err(err).Str("item_id", itemID).Msg("record like ranking")
		}
	}
	return nil
}

// RecordView 承接一次浏览事件：仅互动计数 +1，不回流画像。
func (a *Assembler) RecordView(ctx context.Context, viewerID, itemID string) error {
	if a.Content == nil {
		return core.NewDomainError(core.ModuleFeed, core.ErrorCodeNotSupported,
			"feed: no content store configured")
	}
	return a.Content.UpdateCounters(ctx, itemID, 0, 1)
}
