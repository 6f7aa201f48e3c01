package core

// Bucket 是四个固定的兴趣桶，同时用于偏好追踪与 Feed 混排。
type Bucket string

const (
	BucketAdult  Bucket = "adult"
	BucketEvent  Bucket = "event"
	BucketVenue  Bucket = "venue"
	BucketSports Bucket = "sports"
)

// Buckets 返回固定枚举顺序的桶列表。
// 混排阶段在最高欠额桶为空时按此顺序兜底取桶，顺序必须稳定。
func Buckets() []Bucket {
	return []Bucket{BucketAdult, BucketEvent, BucketVenue, BucketSports}
}
