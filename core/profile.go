package core

// PreferenceProfile 是单个访客的分桶兴趣向量，驱动 Feed 混排的目标配比。
//
// 约束：
//   - 每个字段在每次更新后都独立钳制到 [1,200]
//   - 首次请求时创建（默认均匀 25，或按 mode 提示播种）
//   - 只会被互动事件修改；不删除，仅在用户显式操作时重置为默认
type PreferenceProfile struct {
	Adult  int `json:"adult"`
	Event  int `json:"event"`
	Venue  int `json:"venue"`
	Sports int `json:"sports"`
}

// SeedMode 是访客落地时携带的倾向提示。
type SeedMode string

const (
	SeedDefault SeedMode = ""
	SeedAdult   SeedMode = "adult"
	SeedEvents  SeedMode = "events"
)

// NewPreferenceProfile 按 seedMode 创建初始画像。
func NewPreferenceProfile(mode SeedMode) *PreferenceProfile {
	switch mode {
	case SeedAdult:
		return &PreferenceProfile{Adult: 85, Event: 5, Venue: 5, Sports: 5}
	case SeedEvents:
		return &PreferenceProfile{Adult: 5, Event: 50, Venue: 40, Sports: 5}
	default:
		return &PreferenceProfile{Adult: 25, Event: 25, Venue: 25, Sports: 25}
	}
}

// ApplyEngagement 对某个桶的互动施加固定的增量矩阵，随后钳制所有字段。
// 增量矩阵刻画了桶之间的行为相关性（如互动 event 会轻微带动 venue）。
func (p *PreferenceProfile) ApplyEngagement(b Bucket) {
	switch b {
	case BucketAdult:
		p.Adult += 10
		p.Event -= 3
	case BucketEvent:
		p.Event += 10
		p.Adult -= 5
		p.Venue += 3
	case BucketVenue:
		p.Venue += 10
		p.Event += 3
	case BucketSports:
		p.Sports += 10
		p.Event += 2
		p.Venue += 2
	}
	p.Clamp()
}

// Clamp 将所有字段独立钳制到 [1,200]。每次变更后必须调用。
func (p *PreferenceProfile) Clamp() {
	p.Adult = clampScore(p.Adult)
	p.Event = clampScore(p.Event)
	p.Venue = clampScore(p.Venue)
	p.Sports = clampScore(p.Sports)
}

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 200 {
		return 200
	}
	return v
}

// Get 按桶读取字段值。
func (p *PreferenceProfile) Get(b Bucket) int {
	switch b {
	case BucketAdult:
		return p.Adult
	case BucketEvent:
		return p.Event
	case BucketVenue:
		return p.Venue
	case BucketSports:
		return p.Sports
	}
	return 0
}

// Ratios 将画像归一化为和为 1 的目标配比，供混排使用。
func (p *PreferenceProfile) Ratios() map[Bucket]float64 {
	total := p.Adult + p.Event + p.Venue + p.Sports
	if total <= 0 {
		total = 1
	}
	return map[Bucket]float64{
		BucketAdult:  float64(p.Adult) / float64(total),
		BucketEvent:  float64(p.Event) / float64(total),
		BucketVenue:  float64(p.Venue) / float64(total),
		BucketSports: float64(p.Sports) / float64(total),
	}
}
