// Package share 生成所有者粘贴到提案和私信中的纯文本摘要。
package share

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxBioLength   = 140
	maxQuoteLength = 160
	maxMetrics     = 2
	ellipsis       = "…"
)

var (
	emailLike  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	quoteRuns  = regexp.MustCompile(`["'“”‘’]{2,}`)
	quoteMarks = "\"'“”‘’"
)

// Testimonial 是摘要中唯一展示的推荐语。
type Testimonial struct {
	Quote       string
	Name        string
	RoleCompany string
}

// SummaryInput 携带 BuildSummary 所需的全部数据。
// 只使用前两个非空指标。
type SummaryInput struct {
	Title       string
	Headline    string
	Bio         string
	Metrics     []string
	Testimonial *Testimonial
	ShareURL    string
}

// LooksLikeEmail 判断 value 是否形如 local@domain.tld。
func LooksLikeEmail(value string) bool {
	return emailLike.MatchString(value)
}

// BuildSummary 返回以换行拼接的摘要文本。
// 输出总是以 "View full proof:\n<ShareURL>" 结尾。
func BuildSummary(in SummaryInput) string {
	var lines []string
	section := func(block ...string) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}

	displayName := strings.TrimSpace(in.Title)
	if LooksLikeEmail(displayName) {
		displayName = ""
	}
	headline := strings.TrimSpace(in.Headline)

	switch {
	case displayName != "" && headline != "":
		section(displayName + " — " + headline)
	case displayName != "":
		section(displayName)
	case headline != "":
		section(headline)
	}

	if bio := strings.TrimSpace(in.Bio); bio != "" && utf8.RuneCountInString(bio) <= maxBioLength {
		section(bio)
	}

	if metrics := pickMetrics(in.Metrics); len(metrics) > 0 {
		block := []string{"Proof:"}
		for _, metric := range metrics {
			block = append(block, "• "+metric)
		}
		section(block...)
	}

	if t := in.Testimonial; t != nil {
		name := strings.TrimSpace(t.Name)
		quote := NormalizeQuote(t.Quote)
		if name != "" && strings.TrimSpace(t.Quote) != "" {
			byline := name
			if role := strings.TrimSpace(t.RoleCompany); role != "" {
				byline = name + ", " + role
			}
			section("Featured testimonial:", `"`+quote+`"`, "— "+byline)
		}
	}

	section("View full proof:", in.ShareURL)

	return strings.Join(lines, "\n")
}

// NormalizeQuote 合并空白和重复的引号，去掉首尾包裹的引号，
// 并将结果截断到 160 个字符。
func NormalizeQuote(raw string) string {
	quote := strings.Join(strings.Fields(raw), " ")
	quote = quoteRuns.ReplaceAllString(quote, `"`)
	quote = strings.TrimFunc(quote, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(quoteMarks, r)
	})
	return shorten(quote, maxQuoteLength)
}

func shorten(value string, max int) string {
	if utf8.RuneCountInString(value) <= max {
		return value
	}
	runes := []rune(value)
	return strings.TrimRightFunc(string(runes[:max-1]), unicode.IsSpace) + ellipsis
}

func pickMetrics(metrics []string) []string {
	picked := make([]string, 0, maxMetrics)
	for _, metric := range metrics {
		metric = strings.TrimSpace(metric)
		if metric == "" {
			continue
		}
		picked = append(picked, metric)
		if len(picked) == maxMetrics {
			break
		}
	}
	return picked
}
