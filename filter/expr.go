package filter

import (
	"context"

	"github.com/venuzlabs/feedkit/core"
	"github.com/venuzlabs/feedkit/pkg/dsl"
)

// ExprFilter 是表达式过滤器：CEL 谓词为 true 时过滤该内容。
// 可见变量：category、source、nsfw、quality_score、likes、views。
//
// 典型用法：运营侧临时下线某类内容而不改代码，
// 如 `nsfw && quality_score < 50`。
type ExprFilter struct {
	prg *dsl.Program
}

// NewExprFilter 编译过滤表达式。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.NewProgram(expr,
		"category", "source", "nsfw", "quality_score", "likes", "views")
	if err != nil {
		return nil, err
	}
	return &ExprFilter{prg: prg}, nil
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	_ *core.FeedContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	return f.prg.Eval(map[string]any{
		"category":      item.Category,
		"source":        item.SourceSite,
		"nsfw":          item.IsNSFW,
		"quality_score": item.QualityScore,
		"likes":         item.Likes,
		"views":         item.Views,
	})
}
