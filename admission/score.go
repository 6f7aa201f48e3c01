package admission

import (
	"strings"
	"time"

	"github.com/venuzlabs/feedkit/core"
)

// MinQualityScore 是准入下限：综合分低于此值直接拒绝。
const MinQualityScore = 25

// trustedSources 是可信接入方（大型票务/活动平台）。
var trustedSources = []string{"ticketmaster", "eventbrite", "seatgeek", "bandsintown"}

// qualityScore 计算候选的综合质量分，区间 [0,100]。
//
// 四个维度：
//   - 完整度（上限 30）：标题、描述长度、图片、坐标
//   - 文本质量（上限 25）：由外部检查的错误率换算
//   - 新鲜度（上限 20）：按抓取时间衰减；常驻场所额外 +10
//   - 来源可信度（上限 10）：可信平台 10 分，其余 5 分
func qualityScore(cand *core.Candidate, textPts int, now time.Time) int {
	score := completenessScore(cand)
	score += textPts
	score += freshnessScore(cand, now)
	score += trustScore(cand.SourceSite)
	if cand.IsPermanent {
		score += 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func completenessScore(cand *core.Candidate) int {
	pts := 0
	if len(cand.Title) > 5 {
		pts += 10
	}
	if len(cand.Description) > 50 {
		pts += 10
	}
	if len(cand.Description) > 200 {
		pts += 5
	}
	if cand.ImageURL != "" {
		pts += 5
	}
	if cand.Coords != nil {
		pts += 5
	}
	if pts > 30 {
		pts = 30
	}
	return pts
}

func freshnessScore(cand *core.Candidate, now time.Time) int {
	at := cand.ScrapedAt
	if at.IsZero() {
		at = now
	}
	age := now.Sub(at)
	switch {
	case age < 24*time.Hour:
		return 20
	case age < 7*24*time.Hour:
		return 15
	case age < 30*24*time.Hour:
		return 10
	default:
		return 5
	}
}

func trustScore(source string) int {
	s := strings.ToLower(source)
	for _, t := range trustedSources {
		if strings.Contains(s, t) {
			return 10
		}
	}
	return 5
}
