package service

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	ctaEmailLike = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ctaScheme    = regexp.MustCompile(`(?i)^(https?:|mailto:|tel:)`)
)

// NormalizeCTATarget 将所有者输入的内容转为链接目标：
// 显式的 http(s)/mailto/tel 链接原样保留，形似邮箱的值加上 mailto:，
// 其余按裸域名处理。
func NormalizeCTATarget(raw string) string {
	value := strings.TrimSpace(raw)
	switch {
	case value == "":
		return ""
	case ctaScheme.MatchString(value):
		return value
	case ctaEmailLike.MatchString(value):
		return "mailto:" + value
	default:
		return "https://" + value
	}
}

// validateCTATarget 检查规范化后的目标是否为可用链接。
func validateCTATarget(raw string) error {
	target := NormalizeCTATarget(raw)
	lower := strings.ToLower(target)

	var err error
	switch {
	case strings.HasPrefix(lower, "mailto:"):
		err = validation.Validate(target[len("mailto:"):], is.EmailFormat)
	case strings.HasPrefix(lower, "tel:"):
		err = validation.Validate(target[len("tel:"):], validation.Required, validation.Match(regexp.MustCompile(`^\+?[0-9 ()-]{3,}$`)))
	default:
		err = validation.Validate(target, validation.Required, is.URL)
	}
	if err != nil {
		return invalid("cta_url", "CTA link must be a valid URL, email address or phone number.")
	}
	return nil
}
