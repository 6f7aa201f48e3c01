package admission

import (
	"strings"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pkg/similarity"
)

const (
	// 同址去重：标题相似且地理距离在同一地块内。
	dupLocationSim    = 0.9
	dupLocationDistKm = 0.5
	// 纯标题去重：相似度阈值更严，覆盖无坐标来源。
	dupTitleSim = 0.95
)

// findDuplicate 在参照集内查找候选的重复项。
// 返回命中的拒绝原因与参照 Item；未命中返回空原因。
//
// 两条规则独立判定：
//  1. 双方都有坐标且标题相似度 > 0.9、距离 < 0.5km → duplicate_exact_location
//  2. 标题相似度 > 0.95 → duplicate_title_match（不依赖坐标）
func findDuplicate(cand *core.Candidate, refs []*core.Item) (core.RejectReason, *core.Item) {
	title := strings.ToLower(cand.Title)

	for _, ref := range refs {
		if ref == nil || ref.Title == "" {
			continue
		}
		sim := similarity.TextSimilarity(title, strings.ToLower(ref.Title))

		if sim > dupLocationSim && cand.Coords != nil && ref.Coords != nil {
			dist := similarity.HaversineKm(
				cand.Coords.Lat, cand.Coords.Lng,
				ref.Coords.Lat, ref.Coords.Lng,
			)
			if dist < dupLocationDistKm {
				return core.ReasonDuplicateLocation, ref
			}
		}

		if sim > dupTitleSim {
			return core.ReasonDuplicateTitle, ref
		}
	}
	return "", nil
}
