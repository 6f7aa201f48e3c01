package core

import "context"

// ManifestContent 是发给外部重排服务的内容条目（JSON 轻量清单）。
type ManifestContent struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// ManifestAd 是清单中的广告条目。
type ManifestAd struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Payout float64 `json:"payout"`
}

// Manifest 是外部重排请求的完整载荷。
type Manifest struct {
	Contents []ManifestContent `json:"contents"`
	Ads      []ManifestAd      `json:"ads"`
}

// ViewerContext 是随清单提交的访客上下文（位置 + 匿名 ID）。
type ViewerContext struct {
	ViewerID string    `json:"viewer_id"`
	Location *GeoPoint `json:"location,omitempty"`
}

// OrderedID 是重排服务返回的一个排序位。
type OrderedID struct {
	ID   string    `json:"id"`
	Type EntryKind `json:"type"`
}

// ReorderService 是生成式重排协作方的能力契约。
//
// 该契约是 best-effort 的：调用可能超时、抛错或返回不可解析内容，
// 一律视为失败，由调用方无条件回退到确定性混排路径。
type ReorderService interface {
	Reorder(ctx context.Context, m *Manifest, viewer *ViewerContext) ([]OrderedID, error)
}
