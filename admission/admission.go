// Package admission 实现内容准入链路：候选在落库前依次经过
// 垃圾筛查、文本质量、重复检测、综合质量分四道门，任一拒绝即短路。
//
// 准入判定是无状态纯函数（参照集由调用方提供），
// 批量编排与并发控制见 Ingestor。
package admission

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pkg/utils"
)

// Filter 是准入判定器。零值可用（纯启发式，不做外部文本检查）。
type Filter struct {
	// Checker 为外部文本质量协作方，可为 nil
	Checker core.TextQualityChecker

	// Detect 在候选未携带语言码时做自动检测（如 textcheck.DetectLanguage），可为 nil
	Detect func(text string) string

	// CheckTimeout 是单次外部检查超时，0 取默认值
	CheckTimeout time.Duration

	// ErrorRateLimit 之上判定为劣质文本，0 取默认值
	ErrorRateLimit float64

	// CorrectionTolerance 是纠正文本的最大长度偏差，0 取默认值
	CorrectionTolerance int

	// Now 用于测试注入时钟，nil 时取 time.Now
	Now func() time.Time
}

// Check 对单个候选做完整准入判定。
// refs 是重复检测的参照集（近期已落库内容 + 同批已通过项）。
// 判定自身无副作用，可安全重放。
func (f *Filter) Check(ctx context.Context, cand *core.Candidate, refs []*core.Item) *core.Verdict {
	if cand == nil {
		return &core.Verdict{Approved: false, Reason: core.ReasonLowQualityScore}
	}

	if IsSpam(cand.Title, cand.Description) {
		return &core.Verdict{Approved: false, Reason: core.ReasonSpamDetected}
	}

	if cand.Language == "" && f.Detect != nil {
		c := *cand
		c.Language = f.Detect(cand.Title + " " + cand.Description)
		cand = &c
	}

	tv := f.checkText(ctx, cand)
	if !tv.ok {
		return &core.Verdict{Approved: false, Reason: core.ReasonPoorTextQuality}
	}

	if reason, _ := findDuplicate(cand, refs); reason != "" {
		return &core.Verdict{Approved: false, Reason: reason}
	}

	now := f.now()
	score := qualityScore(cand, tv.textScore, now)
	if score < MinQualityScore {
		return &core.Verdict{Approved: false, Reason: core.ReasonLowQualityScore}
	}

	item := buildItem(cand, score, now)
	item.PutLabel("admission:quality_score", utils.Label{
		Value:  strconv.Itoa(score),
		Source: "admission",
	})

	return &core.Verdict{
		Approved:      true,
		Item:          item,
		CorrectedText: tv.corrected,
	}
}

// buildItem 把通过准入的候选转化为落库 Item。
func buildItem(cand *core.Candidate, score int, now time.Time) *core.Item {
	it := core.NewItem(uuid.NewString())
	it.Title = cand.Title
	it.Description = cand.Description
	it.Category = cand.Category
	it.Tags = cand.Tags
	it.Coords = cand.Coords
	it.ImageURL = cand.ImageURL
	it.SourceSite = cand.SourceSite
	it.Language = cand.Language
	it.QualityScore = score
	it.CreatedAt = now
	it.IsPermanent = cand.IsPermanent
	it.IsNSFW = cand.IsNSFW
	return it
}

func (f *Filter) checkTimeout() time.Duration {
	if f.CheckTimeout > 0 {
		return f.CheckTimeout
	}
	return DefaultCheckTimeout
}

func (f *Filter) errorRateLimit() float64 {
	if f.ErrorRateLimit > 0 {
		return f.ErrorRateLimit
	}
	return DefaultErrorRateLimit
}

func (f *Filter) correctionTolerance() int {
	if f.CorrectionTolerance > 0 {
		return f.CorrectionTolerance
	}
	return DefaultCorrectionTolerance
}

func (f *Filter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
