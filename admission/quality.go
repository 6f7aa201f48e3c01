package admission

import (
	"context"
	"time"

	"github.com/venuzlabs/feedkit/core"
)

const (
	// DefaultErrorRateLimit 之上判定为劣质文本。
	DefaultErrorRateLimit = 0.3
	// DefaultCheckTimeout 是单次外部文本检查的超时。
	DefaultCheckTimeout = 3 * time.Second
	// DefaultCorrectionTolerance 是纠正文本与原文的最大长度偏差（字符）。
	// 偏差过大说明纠正服务改写了语义而非仅修正拼写，此时丢弃纠正结果。
	DefaultCorrectionTolerance = 20
	// minCheckLen 以下的短文本不值得一次外部调用。
	minCheckLen = 20
)

// textVerdict 是质量门的中间结果。
type textVerdict struct {
	ok        bool
	errorRate float64
	textScore int
	corrected string // 仅在长度偏差可接受时非空
}

// checkText 调用外部质量检查并换算文本得分。
//
// 可用性优先：外部调用失败按 fail-open 处理（ErrorRate=0），
// 候选绝不因协作方故障被拒。
func (f *Filter) checkText(ctx context.Context, cand *core.Candidate) textVerdict {
	full := cand.Title + " " + cand.Description
	v := textVerdict{ok: true, textScore: textScore(0)}

	if f.Checker == nil || len(full) <= minCheckLen {
		return v
	}

	cctx, cancel := context.WithTimeout(ctx, f.checkTimeout())
	defer cancel()

	res, err := f.Checker.CheckQuality(cctx, full, cand.Language)
	if err != nil || res == nil {
		return v
	}

	if res.ErrorRate > f.errorRateLimit() {
		return textVerdict{ok: false, errorRate: res.ErrorRate}
	}

	v.errorRate = res.ErrorRate
	v.textScore = textScore(res.ErrorRate)
	if res.CorrectedText != "" && res.CorrectedText != full {
		if diff := len([]rune(res.CorrectedText)) - len([]rune(full)); abs(diff) <= f.correctionTolerance() {
			v.corrected = res.CorrectedText
		}
	}
	return v
}

// textScore 把错误率换算为文本质量得分（满分 25）。
func textScore(errorRate float64) int {
	switch {
	case errorRate < 0.05:
		return 25
	case errorRate < 0.15:
		return 20
	default:
		return 15
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
