// Package feedkit 是一套夜生活内容发现 Feed 的装配工具箱：
// 内容准入（admission）、偏好画像（profile）、召回/过滤/排序/混排
// Pipeline，以及外部重排适配（reorder）与广告注入（feed）。
//
// 核心抽象是 pipeline.Node：召回、过滤、排序、混排都是统一形态的
// 可组合单元，既可在代码中组装，也可由 YAML/JSON 配置驱动（config 包）。
//
// 快速上手见 examples/feed_demo。
package feedkit

import (
	"github.com/venuzlabs/feedkit/pipeline"
)

// 常用类型别名，便于调用方少导一个包。
type (
	Pipeline = pipeline.Pipeline
	Node     = pipeline.Node
	Kind     = pipeline.Kind
)

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
