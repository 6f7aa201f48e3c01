package store

import (
	"context"
	"encoding/json"

	"github.com/venuzlabs/feedkit/core"
)

// StaticAffiliateProvider 是内存广告位池，用于测试与小流量场景。
type StaticAffiliateProvider struct {
	Slots []*core.AffiliateSlot
}

var _ core.AffiliateProvider = (*StaticAffiliateProvider)(nil)

func (p *StaticAffiliateProvider) ActiveSlots(_ context.Context) ([]*core.AffiliateSlot, error) {
	return p.Slots, nil
}

// KVAffiliateProvider 从 Store 读取当前生效的广告位池（JSON 数组）。
// 广告位由运营侧写入，Feed 只读。
type KVAffiliateProvider struct {
	Store core.Store

	// Key 默认 "affiliate:slots"
	Key string
}

var _ core.AffiliateProvider = (*KVAffiliateProvider)(nil)

func (p *KVAffiliateProvider) ActiveSlots(ctx context.Context) ([]*core.AffiliateSlot, error) {
	key := p.Key
	if key == "" {
		key = "affiliate:slots"
	}

	data, err := p.Store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var slots []*core.AffiliateSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError,
			"affiliate: decode slots: "+err.Error())
	}
	return slots, nil
}
