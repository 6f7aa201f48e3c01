package textcheck

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// DefaultLanguage 是检测失败时的兜底语言（内容主要来自西语市场）。
const DefaultLanguage = "es"

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage 返回文本的 ISO 639-1 语言码（小写）。
// 候选语言限定为内容池实际出现的语种，检测不确定时返回 DefaultLanguage。
func DetectLanguage(text string) string {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Spanish, lingua.English, lingua.Portuguese).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return DefaultLanguage
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
