package core

import "time"

// Candidate 是待准入的原始候选内容，由爬虫或用户提交产生。
// 仅被 Admission Filter 消费；通过准入后转化为 Item 落库。
type Candidate struct {
	Title       string
	Description string
	Category    string
	Tags        []string
	Coords      *GeoPoint
	ImageURL    string
	SourceSite  string
	ScrapedAt   time.Time
	Language    string // ISO 639-1；为空时由准入链路自动检测
	IsPermanent bool
	IsNSFW      bool
}

// RejectReason 是准入拒绝原因（预期内、非致命，仅记录日志）。
type RejectReason string

const (
	ReasonSpamDetected      RejectReason = "spam_detected"
	ReasonPoorTextQuality   RejectReason = "poor_text_quality"
	ReasonDuplicateLocation RejectReason = "duplicate_exact_location"
	ReasonDuplicateTitle    RejectReason = "duplicate_title_match"
	ReasonLowQualityScore   RejectReason = "low_quality_score"
)

// Verdict 是一次准入判定的结果。每个候选只产生一次，不持久化。
// Approved 为 true 时 Item 为附带质量分的落库对象；
// CorrectedText 是拼写纠正后的展示文本，仅在长度偏差可接受时回填。
type Verdict struct {
	Approved      bool
	Reason        RejectReason
	Item          *Item
	CorrectedText string
}
