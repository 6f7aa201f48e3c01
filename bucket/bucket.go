// Package bucket 把内容归入四个固定兴趣桶（adult/event/venue/sports）。
//
// 分桶规则是一张有序的「谓词 → 桶」规则表（CEL 表达式），而非散落的条件分支：
// 新增类目只需加规则，不触碰混排逻辑。规则按序求值，首个命中生效；
// 全部未命中时落入默认桶 venue。
package bucket

import (
	"fmt"
	"strings"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pkg/dsl"
)

// Rule 是一条分桶规则：CEL 谓词命中时归入 Bucket。
// 谓词可见变量：category、source（均已转小写）、nsfw。
type Rule struct {
	Expr   string      `yaml:"expr" json:"expr"`
	Bucket core.Bucket `yaml:"bucket" json:"bucket"`
}

// DefaultRules 返回内置规则表。
// 显式的类目/来源信号优先；来源串匹配覆盖了各接入渠道的命名习惯。
func DefaultRules() []Rule {
	return []Rule{
		{Expr: `category == "escort" || category == "webcam" || source == "reddit" || nsfw`, Bucket: core.BucketAdult},
		{Expr: `category == "event" || source.contains("ticketmaster") || source.contains("eventbrite")`, Bucket: core.BucketEvent},
		{Expr: `category == "club" || category == "bar" || category == "restaurant" || source == "googleplaces"`, Bucket: core.BucketVenue},
		{Expr: `category == "sports" || source.contains("thesportsdb")`, Bucket: core.BucketSports},
	}
}

// Classifier 是纯分类函数的载体：规则在构造时编译一次，之后并发安全。
type Classifier struct {
	rules []compiledRule
}

type compiledRule struct {
	prg    *dsl.Program
	bucket core.Bucket
}

// NewClassifier 编译规则表。rules 为空时使用 DefaultRules。
func NewClassifier(rules []Rule) (*Classifier, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		prg, err := dsl.NewProgram(r.Expr, "category", "source", "nsfw")
		if err != nil {
			return nil, fmt.Errorf("bucket rule: %w", err)
		}
		compiled = append(compiled, compiledRule{prg: prg, bucket: r.Bucket})
	}
	return &Classifier{rules: compiled}, nil
}

// MustClassifier 是 NewClassifier 的 panic 版本，供内置规则表使用。
func MustClassifier(rules []Rule) *Classifier {
	c, err := NewClassifier(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify 按规则表对 (category, source, nsfw) 分桶。
// 单条规则求值失败时跳过该规则继续（规则表在编译期已校验，运行期失败只可能来自类型问题）。
func (c *Classifier) Classify(category, source string, nsfw bool) core.Bucket {
	input := map[string]any{
		"category": strings.ToLower(category),
		"source":   strings.ToLower(source),
		"nsfw":     nsfw,
	}

	for _, r := range c.rules {
		ok, err := r.prg.Eval(input)
		if err != nil {
			continue
		}
		if ok {
			return r.bucket
		}
	}
	return core.BucketVenue
}

// ClassifyItem 对落库内容分桶。
func (c *Classifier) ClassifyItem(it *core.Item) core.Bucket {
	if it == nil {
		return core.BucketVenue
	}
	return c.Classify(it.Category, it.SourceSite, it.IsNSFW)
}

// ClassifyCandidate 对准入候选分桶（用于互动回流前的预判与观测）。
func (c *Classifier) ClassifyCandidate(cand *core.Candidate) core.Bucket {
	if cand == nil {
		return core.BucketVenue
	}
	return c.Classify(cand.Category, cand.SourceSite, cand.IsNSFW)
}
