package admission

import (
	"regexp"
	"strings"
)

// spamPatterns 覆盖已知垃圾内容形态：赚钱骗局话术、短链接、加密货币推广、
// 表情符号刷屏、内嵌电话号码引流、点击引导话术。
// 匹配前文本统一转大写，模式按大写书写。
var spamPatterns = []*regexp.Regexp{
	regexp.MustCompile(`GRATIS.*DINERO`),
	regexp.MustCompile(`GANA.*(PESOS|DINERO)`),
	regexp.MustCompile(`BIT\.LY|TLGR\.PH|TINYURL`),
	regexp.MustCompile(`CRYPTOCURRENCY|CRIPTOMONEDA`),
	regexp.MustCompile(`[\x{1F300}-\x{1FAFF}]{4,}`),
	regexp.MustCompile(`WHATSAPP.*\d{8,}`),
	regexp.MustCompile(`CLIC AQU[IÍ]|CLICK HERE NOW`),
}

// maxTokenLen 之上的「词」视为乱码/混淆文本的信号。
const maxTokenLen = 30

// IsSpam 对 title+description 做垃圾内容筛查。
// 命中任一模式，或超长 token 超过两个（乱码启发式）即判定为垃圾。
func IsSpam(title, description string) bool {
	text := strings.ToUpper(title + " " + description)

	for _, p := range spamPatterns {
		if p.MatchString(text) {
			return true
		}
	}

	long := 0
	for _, tok := range strings.Fields(text) {
		if len([]rune(tok)) > maxTokenLen {
			long++
		}
	}
	return long > 2
}
