// Package textcheck 对接外部文本质量服务（LanguageTool 协议），
// 并提供基于 lingua 的本地语言检测。
package textcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/venuzlabs/feedkit/core"
)

// HTTPChecker 通过 LanguageTool 兼容的 HTTP API 做拼写/语法检查。
// 实现 core.TextQualityChecker。
type HTTPChecker struct {
	// Endpoint 形如 http://localhost:8010/v2/check
	Endpoint string
	Client   *http.Client
}

// NewHTTPChecker 构造 HTTPChecker，默认超时 5s。
func NewHTTPChecker(endpoint string) *HTTPChecker {
	return &HTTPChecker{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// ltMatch 是 LanguageTool 响应中的单个问题。
type ltMatch struct {
	Offset       int `json:"offset"`
	Length       int `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
}

type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

// CheckQuality 提交文本并换算错误率；language 为空时交由服务端自动检测。
func (c *HTTPChecker) CheckQuality(ctx context.Context, text, language string) (*core.QualityResult, error) {
	form := url.Values{}
	form.Set("text", text)
	if language == "" {
		form.Set("language", "auto")
	} else {
		form.Set("language", language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleAdmission, core.ErrorCodeUnavailable,
			fmt.Sprintf("text quality service: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleAdmission, core.ErrorCodeUnavailable,
			fmt.Sprintf("text quality service: status %d", resp.StatusCode))
	}

	var lt ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&lt); err != nil {
		return nil, err
	}

	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}

	return &core.QualityResult{
		ErrorRate:     float64(len(lt.Matches)) / float64(words),
		CorrectedText: applyCorrections(text, lt.Matches),
	}, nil
}

func (c *HTTPChecker) client() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

// applyCorrections 应用每个问题的首选替换。
// offset/length 是字符偏移而非字节偏移，按 rune 切分后拼接；
// 从后往前替换，避免前面的替换使后续 offset 失效。
func applyCorrections(text string, matches []ltMatch) string {
	runes := []rune(text)

	fixable := make([]ltMatch, 0, len(matches))
	for _, m := range matches {
		if len(m.Replacements) > 0 && m.Offset >= 0 && m.Offset+m.Length <= len(runes) {
			fixable = append(fixable, m)
		}
	}
	sort.Slice(fixable, func(i, j int) bool { return fixable[i].Offset > fixable[j].Offset })

	for _, m := range fixable {
		patched := append([]rune{}, runes[:m.Offset]...)
		patched = append(patched, []rune(m.Replacements[0].Value)...)
		patched = append(patched, runes[m.Offset+m.Length:]...)
		runes = patched
	}
	return string(runes)
}
