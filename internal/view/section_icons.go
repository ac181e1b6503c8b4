package view

import (
	"html/template"
	"strings"

	"github.com/proofpage/internal/db"
)

// SectionTypeOption 描述控制台中可选择的分区类型。
type SectionTypeOption struct {
	Key   string
	Label string
}

type sectionIconAsset struct {
	Key   string
	SVG   string
	Label string
}

var (
	sectionIconDefinitions = []sectionIconAsset{
		{Key: db.SectionTypeTestimonial, Label: "Testimonials", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M7.5 8.25h9m-9 3H12m-9.75 1.51c0 1.6 1.123 2.994 2.707 3.227 1.129.166 2.27.293 3.423.379.35.026.67.21.865.501L12 21l2.755-4.133a1.14 1.14 0 0 1 .865-.501 48.172 48.172 0 0 0 3.423-.379c1.584-.233 2.707-1.626 2.707-3.228V6.741c0-1.602-1.123-2.995-2.707-3.228A48.394 48.394 0 0 0 12 3c-2.392 0-4.744.175-7.043.513C3.373 3.746 2.25 5.14 2.25 6.741v6.018Z"/></svg>`},
		{Key: db.SectionTypeWorkExample, Label: "Work examples", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M20.25 14.15v4.25c0 1.094-.787 2.036-1.872 2.18-2.087.277-4.216.42-6.378.42s-4.291-.143-6.378-.42c-1.085-.144-1.872-1.086-1.872-2.18v-4.25m16.5 0a2.18 2.18 0 0 0 .75-1.661V8.706c0-1.081-.768-2.015-1.837-2.175a48.114 48.114 0 0 0-3.413-.387m4.5 8.006c-.194.165-.42.295-.673.38A23.978 23.978 0 0 1 12 15.75c-2.648 0-5.195-.429-7.577-1.22a2.016 2.016 0 0 1-.673-.38m0 0A2.18 2.18 0 0 1 3 12.489V8.706c0-1.081.768-2.015 1.837-2.175a48.111 48.111 0 0 1 3.413-.387m7.5 0V5.25A2.25 2.25 0 0 0 13.5 3h-3a2.25 2.25 0 0 0-2.25 2.25v.894m7.5 0a48.667 48.667 0 0 0-7.5 0"/></svg>`},
		{Key: db.SectionTypeMetric, Label: "Metrics", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M3 13.125C3 12.504 3.504 12 4.125 12h2.25c.621 0 1.125.504 1.125 1.125v6.75C7.5 20.496 6.996 21 6.375 21h-2.25A1.125 1.125 0 0 1 3 19.875v-6.75ZM9.75 8.625c0-.621.504-1.125 1.125-1.125h2.25c.621 0 1.125.504 1.125 1.125v11.25c0 .621-.504 1.125-1.125 1.125h-2.25a1.125 1.125 0 0 1-1.125-1.125V8.625ZM16.5 4.125c0-.621.504-1.125 1.125-1.125h2.25C20.496 3 21 3.504 21 4.125v15.75c0 .621-.504 1.125-1.125 1.125h-2.25a1.125 1.125 0 0 1-1.125-1.125V4.125Z"/></svg>`},
	}
	defaultSectionIcon = sectionIconAsset{Key: "default", Label: "Section", SVG: `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"><path d="M3.75 6A2.25 2.25 0 0 1 6 3.75h12A2.25 2.25 0 0 1 20.25 6v12A2.25 2.25 0 0 1 18 20.25H6A2.25 2.25 0 0 1 3.75 18V6Z"/></svg>`}
	sectionIconLookup  = func() map[string]sectionIconAsset {
		lookup := make(map[string]sectionIconAsset, len(sectionIconDefinitions))
		for _, icon := range sectionIconDefinitions {
			lookup[icon.Key] = icon
		}
		return lookup
	}()
)

// SectionTypeOptions 按控制台展示顺序列出分区类型。
func SectionTypeOptions() []SectionTypeOption {
	options := make([]SectionTypeOption, 0, len(sectionIconDefinitions))
	for _, icon := range sectionIconDefinitions {
		options = append(options, SectionTypeOption{Key: icon.Key, Label: icon.Label})
	}
	return options
}

func lookupSectionIcon(key string) sectionIconAsset {
	if icon, ok := sectionIconLookup[strings.ToLower(strings.TrimSpace(key))]; ok {
		return icon
	}
	return defaultSectionIcon
}

// SectionIconSVG 返回分区类型的内联 SVG，未知类型使用通用图标。
func SectionIconSVG(key string) template.HTML {
	return template.HTML(lookupSectionIcon(key).SVG)
}

// SectionLabel 返回分区类型的展示标题。
func SectionLabel(key string) string {
	return lookupSectionIcon(key).Label
}
