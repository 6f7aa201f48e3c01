package config

import (
	"fmt"

	"github.com/venuzlabs/feedkit/bucket"
	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/filter"
	"github.com/venuzlabs/feedkit/pipeline"
	"github.com/venuzlabs/feedkit/pkg/conv"
	"github.com/venuzlabs/feedkit/rank"
	"github.com/venuzlabs/feedkit/rerank"
)

// 内置 Node 注册。
// 带外部依赖（存储、召回源）的 Node 无法从纯配置构建，需在代码中组装；
// 此处只覆盖配置可完整表达的 Node。
func init() {
	Register("rank.engagement", buildEngagementNode)
	Register("rank.deal", buildDealNode)
	Register("rerank.mixer", buildMixerNode)
	Register("rerank.diversity", buildDiversityNode)
	Register("rerank.topn", buildTopNNode)
	Register("filter.expr", buildExprFilterNode)
}

func buildEngagementNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rank.EngagementNode{}, nil
}

func buildDealNode(config map[string]interface{}) (pipeline.Node, error) {
	return &rank.DealNode{
		DealBoost:     conv.ConfigGetFloat(config, "deal_boost", 0),
		FillerPenalty: conv.ConfigGetFloat(config, "filler_penalty", 0),
	}, nil
}

func buildMixerNode(config map[string]interface{}) (pipeline.Node, error) {
	mixer := &rerank.Mixer{}

	if raw, ok := config["bucket_rules"].([]interface{}); ok {
		rules := make([]bucket.Rule, 0, len(raw))
		for _, r := range raw {
			rm, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			rules = append(rules, bucket.Rule{
				Expr:   conv.ConfigGet[string](rm, "expr", ""),
				Bucket: core.Bucket(conv.ConfigGet[string](rm, "bucket", "")),
			})
		}
		cls, err := bucket.NewClassifier(rules)
		if err != nil {
			return nil, fmt.Errorf("mixer bucket rules: %w", err)
		}
		mixer.Classifier = cls
	}

	if conv.ConfigGet[bool](config, "disable_locales", false) {
		mixer.Locales = []rerank.LocaleRule{}
	}
	return mixer, nil
}

func buildDiversityNode(config map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{
		NicheKeywords: conv.SliceAnyToString(config["niche_keywords"]),
	}, nil
}

func buildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: conv.ConfigGetInt(config, "n", 0),
	}, nil
}

func buildExprFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet[string](config, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("filter.expr requires expr")
	}
	f, err := filter.NewExprFilter(expr)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}
