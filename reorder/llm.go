// Package reorder 对接生成式重排协作方，并提供严格的回退语义：
// 外部结果只在完全可用时采纳，任何失败都回到确定性混排路径。
package reorder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/venuzlabs/feedkit/core"
)

// Completer 是底层文本生成客户端的最小契约（LLM 路由/网关）。
type Completer interface {
	GenerateContent(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// LLMService 用生成式模型对 Feed 清单重排，实现 core.ReorderService。
//
// 模型输出被严格校验：剥离代码围栏后必须是合法的
// [{"id":..,"type":"content"|"ad"}] JSON 数组，否则整体判为失败。
type LLMService struct {
	Client Completer

	// MaxTokens 默认 2000
	MaxTokens int
	// Temperature 默认 0.4
	Temperature float64
}

var _ core.ReorderService = (*LLMService)(nil)

func (s *LLMService) Reorder(ctx context.Context, m *core.Manifest, viewer *core.ViewerContext) ([]core.OrderedID, error) {
	if s.Client == nil {
		return nil, core.NewDomainError(core.ModuleReorder, core.ErrorCodeUnavailable,
			"reorder: no completion client configured")
	}

	prompt, err := buildPrompt(m, viewer)
	if err != nil {
		return nil, err
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	temperature := s.Temperature
	if temperature == 0 {
		temperature = 0.4
	}

	raw, err := s.Client.GenerateContent(ctx, prompt, maxTokens, temperature)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleReorder, core.ErrorCodeUnavailable,
			fmt.Sprintf("reorder: generate: %v", err))
	}

	return parseOrdered(raw)
}

func buildPrompt(m *core.Manifest, viewer *core.ViewerContext) (string, error) {
	contents, err := json.Marshal(m.Contents)
	if err != nil {
		return "", err
	}
	ads, err := json.Marshal(m.Ads)
	if err != nil {
		return "", err
	}

	locationDesc := "unknown"
	viewerID := "anonymous"
	if viewer != nil {
		if viewer.Location != nil {
			locationDesc = fmt.Sprintf("%.4f, %.4f", viewer.Location.Lat, viewer.Location.Lng)
		}
		if viewer.ViewerID != "" {
			viewerID = viewer.ViewerID
		}
	}

	var b strings.Builder
	b.WriteString("You are the feed curator for a nightlife discovery app.\n")
	b.WriteString("Produce an engaging vertical feed order for this viewer.\n\n")
	fmt.Fprintf(&b, "Viewer context:\n- Location: %s\n- Viewer ID: %s\n\n", locationDesc, viewerID)
	b.WriteString("Rules:\n")
	b.WriteString("- Balanced mix across adult/party, local events (prefer nearby), venues and ads.\n")
	b.WriteString("- Interleave ads (type \"ad\") every 5-7 content items.\n")
	b.WriteString("- Never place more than 3 consecutive items of the same category.\n\n")
	fmt.Fprintf(&b, "Contents (JSON):\n%s\n\nAds (JSON):\n%s\n\n", contents, ads)
	b.WriteString("Return ONLY a valid JSON array with the final ID order.\n")
	b.WriteString(`Expected format: [{"id":"...","type":"content"},{"id":"...","type":"ad"}]`)
	return b.String(), nil
}

// parseOrdered 剥离围栏并解析模型输出。
func parseOrdered(raw string) ([]core.OrderedID, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var out []core.OrderedID
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, core.NewDomainError(core.ModuleReorder, core.ErrorCodeInternalError,
			fmt.Sprintf("reorder: parse response: %v", err))
	}
	return out, nil
}
