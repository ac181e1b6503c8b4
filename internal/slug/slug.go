// Package slug 生成 URL 安全且唯一的页面标识。
package slug

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const (
	// Fallback 用于规范化后为空的种子。
	Fallback = "my-proof"

	maxLength   = 50
	maxAttempts = 20
	suffixRange = 10000
)

var (
	// 空白字符除 ASCII 外还包括 Unicode 空格分隔符和 BOM。
	invalidChars = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}\x{FEFF}-]`)
	whitespace   = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	hyphens      = regexp.MustCompile(`-+`)
)

// Checker 判断 slug 是否已被占用。
type Checker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// CheckerFunc 将普通函数适配为 Checker。
type CheckerFunc func(ctx context.Context, slug string) (bool, error)

// SlugExists 实现 Checker。
func (f CheckerFunc) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f(ctx, slug)
}

// Slugify 将输入转为小写并只保留 [a-z0-9-]，最多 50 个字符。
func Slugify(input string) string {
	s := strings.TrimSpace(strings.ToLower(input))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSuffix(s, "-")
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	return s
}

// Generator 生成唯一的 slug。Rand 与 Now 供测试固定取值。
type Generator struct {
	Checker Checker
	Rand    func(n int) int
	Now     func() time.Time
}

// NewGenerator 返回基于 math/rand 和系统时钟的 Generator。
func NewGenerator(checker Checker) *Generator {
	return &Generator{Checker: checker, Rand: rand.Intn, Now: time.Now}
}

// Generate 在 seed 的原始 slug 未被占用时直接返回，否则追加随机数字后缀重试。
// 冲突 20 次后追加当前 Unix 毫秒数，不再检查。
//
// 检查与之后的插入不是原子的，罕见的竞争由唯一索引拒绝。
func (g *Generator) Generate(ctx context.Context, seed string) (string, error) {
	base := Slugify(seed)
	if base == "" {
		base = Fallback
	}

	for i := 0; i < maxAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, g.Rand(suffixRange))
		}

		taken, err := g.Checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return fmt.Sprintf("%s-%d", base, g.Now().UnixMilli()), nil
}
