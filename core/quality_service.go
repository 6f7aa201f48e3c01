package core

import "context"

// QualityResult 是一次文本质量检查的结果。
type QualityResult struct {
	// ErrorRate 是拼写/语法错误数与词数之比
	ErrorRate float64

	// CorrectedText 是应用纠正后的文本；检查失败时等于原文
	CorrectedText string
}

// TextQualityChecker 是外部文本质量检查协作方的能力契约。
//
// 可用性优先：协作方可能失败；调用方按 fail-open 处理——
// 视作 ErrorRate=0、CorrectedText=原文，绝不因此阻塞准入。
type TextQualityChecker interface {
	CheckQuality(ctx context.Context, text, language string) (*QualityResult, error)
}
